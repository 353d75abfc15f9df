package play

import (
	"log"
	"sync"
	"time"

	"github.com/matt-g-everett/motiontx/motion"
	"github.com/matt-g-everett/motiontx/scene"
)

// State is the driver's playback state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "idle"
}

// An Adapter consumes one evaluated node snapshot list per time sample
// and paints it somewhere. Nodes arrive in paint order.
type Adapter interface {
	Paint(nodes []*scene.Node, background string)
}

// A Driver advances a virtual clock over one transition, evaluating the
// motion model at each tick and forwarding the result to its adapter.
// It may run unsupervised inside an arbitrary host; no failure mode
// escapes it, unresolvable transitions just paint nothing.
type Driver struct {
	mu           sync.Mutex
	scene        *scene.Scene
	model        *motion.Model
	transitionID string
	adapter      Adapter
	scheduler    Scheduler
	now          func() time.Time

	state   State
	start   time.Time
	elapsed float64
	loop    bool
	speed   float64
	cancel  CancelFunc
}

// NewDriver creates a Driver for one transition of a scene.
func NewDriver(s *scene.Scene, m *motion.Model, transitionID string, adapter Adapter, scheduler Scheduler) *Driver {
	d := new(Driver)
	d.scene = s
	d.model = m
	d.transitionID = transitionID
	d.adapter = adapter
	d.scheduler = scheduler
	d.now = time.Now
	d.state = StateIdle
	d.speed = 1
	return d
}

// SetLoop makes playback restart from 0 when the transition completes.
func (d *Driver) SetLoop(loop bool) {
	d.mu.Lock()
	d.loop = loop
	d.mu.Unlock()
}

// SetSpeed sets the playback speed multiplier. Non-positive values are
// ignored.
func (d *Driver) SetSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	d.mu.Lock()
	d.speed = speed
	d.mu.Unlock()
}

// SetClock replaces the driver's time source.
func (d *Driver) SetClock(now func() time.Time) {
	d.mu.Lock()
	d.now = now
	d.mu.Unlock()
}

// State returns the current playback state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Elapsed returns the current virtual playback time in milliseconds.
func (d *Driver) Elapsed() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elapsed
}

// Play starts playback, or resumes it from the retained elapsed time
// when paused. Calling Play while already playing is a no-op.
func (d *Driver) Play() {
	d.mu.Lock()
	if d.state == StatePlaying {
		d.mu.Unlock()
		return
	}
	if d.state == StateIdle {
		d.elapsed = 0
	}
	// Anchor the start reference so (now - start) * speed == elapsed.
	d.start = d.now().Add(-time.Duration(d.elapsed / d.speed * float64(time.Millisecond)))
	d.state = StatePlaying
	d.cancel = d.scheduler.Schedule(d.tick)
	d.mu.Unlock()
}

// Pause cancels the pending tick and retains the elapsed time. No
// re-evaluation happens.
func (d *Driver) Pause() {
	d.mu.Lock()
	if d.state != StatePlaying {
		d.mu.Unlock()
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.elapsed = float64(d.now().Sub(d.start)) / float64(time.Millisecond) * d.speed
	d.state = StatePaused
	d.mu.Unlock()
}

// Seek evaluates and paints at an arbitrary time without touching the
// play/pause state.
func (d *Driver) Seek(timeMs float64) {
	d.paint(timeMs)
}

// tick is one scheduled playback step.
func (d *Driver) tick() {
	d.mu.Lock()
	if d.state != StatePlaying {
		// A stale tick fired after a state change; drop it.
		d.mu.Unlock()
		return
	}
	elapsed := float64(d.now().Sub(d.start)) / float64(time.Millisecond) * d.speed
	total := d.model.Duration(d.transitionID)
	if elapsed >= total {
		if d.loop {
			d.start = d.now()
			elapsed = 0
		} else {
			elapsed = total
			d.state = StateIdle
			d.cancel = nil
		}
	}
	d.elapsed = elapsed
	d.mu.Unlock()

	d.paint(elapsed)

	d.mu.Lock()
	if d.state == StatePlaying {
		d.cancel = d.scheduler.Schedule(d.tick)
	}
	d.mu.Unlock()
}

// paint evaluates the transition at a time and hands the snapshots to
// the adapter. Panics from the adapter are contained; a broken paint
// target must never take playback down with it.
func (d *Driver) paint(timeMs float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("paint recovered: %v", r)
		}
	}()

	nodes := motion.Evaluate(d.scene, d.model, d.transitionID, timeMs)
	background := ""
	if t := d.scene.TransitionByID(d.transitionID); t != nil {
		if to := d.scene.FrameByID(t.To); to != nil {
			background = to.Background
		}
	}
	d.adapter.Paint(nodes, background)
}
