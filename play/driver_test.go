package play

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/motiontx/motion"
	"github.com/matt-g-everett/motiontx/scene"
)

// manualScheduler hands control of tick timing to the test.
type manualScheduler struct {
	pending func()
	cancels int
}

func (s *manualScheduler) Schedule(fn func()) CancelFunc {
	s.pending = fn
	return func() {
		s.cancels++
		s.pending = nil
	}
}

func (s *manualScheduler) fire() {
	fn := s.pending
	s.pending = nil
	if fn != nil {
		fn()
	}
}

// recorder captures every painted sample.
type recorder struct {
	paints      [][]*scene.Node
	backgrounds []string
}

func (r *recorder) Paint(nodes []*scene.Node, background string) {
	r.paints = append(r.paints, nodes)
	r.backgrounds = append(r.backgrounds, background)
}

// panicAdapter always fails; the driver must contain it.
type panicAdapter struct{}

func (panicAdapter) Paint(nodes []*scene.Node, background string) {
	panic("broken paint target")
}

type fixture struct {
	driver    *Driver
	scheduler *manualScheduler
	adapter   *recorder
	now       time.Time
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
	f.driver.SetClock(func() time.Time { return f.now })
}

func newFixture(t *testing.T, transitionID string) *fixture {
	from := &scene.Node{ID: "box", Name: "Box", Type: scene.NodeRectangle, Visible: true, Opacity: 1, ScaleX: 1, ScaleY: 1}
	to := from.Clone()
	to.X = 200

	s := &scene.Scene{
		Frames: []*scene.Frame{
			{ID: "a", Width: 512, Height: 512, Background: "#000000", Nodes: []*scene.Node{from}},
			{ID: "b", Width: 512, Height: 512, Background: "#ffffff", Nodes: []*scene.Node{to}},
		},
		Transitions: []*scene.Transition{{
			ID: "t", From: "a", To: "b", Duration: 300, Easing: "linear", Animation: scene.AnimationAuto,
		}},
	}
	m := motion.Build(s)
	require.Len(t, m.Transitions[0].Tracks, 1)

	f := &fixture{
		scheduler: &manualScheduler{},
		adapter:   &recorder{},
		now:       time.Unix(1000, 0),
	}
	f.driver = NewDriver(s, m, transitionID, f.adapter, f.scheduler)
	f.advance(0)
	return f
}

func TestDriverPlayTicksAndPaints(t *testing.T) {
	f := newFixture(t, "t")

	assert.Equal(t, StateIdle, f.driver.State())
	f.driver.Play()
	assert.Equal(t, StatePlaying, f.driver.State())
	require.NotNil(t, f.scheduler.pending)

	f.advance(150 * time.Millisecond)
	f.scheduler.fire()

	require.Len(t, f.adapter.paints, 1)
	assert.Equal(t, "#ffffff", f.adapter.backgrounds[0])
	assert.InDelta(t, 100, f.adapter.paints[0][0].X, 1e-6)
	assert.InDelta(t, 150, f.driver.Elapsed(), 1e-6)
	assert.NotNil(t, f.scheduler.pending, "still playing, next tick scheduled")
}

func TestDriverPlayWhilePlayingIsNoop(t *testing.T) {
	f := newFixture(t, "t")
	f.driver.Play()
	first := f.scheduler.pending
	f.driver.Play()
	assert.Equal(t, StatePlaying, f.driver.State())
	// No cancel happened and the pending tick is untouched.
	assert.Equal(t, 0, f.scheduler.cancels)
	assert.NotNil(t, first)
}

func TestDriverCompletionClampsAndStops(t *testing.T) {
	f := newFixture(t, "t")
	f.driver.Play()

	f.advance(500 * time.Millisecond)
	f.scheduler.fire()

	assert.Equal(t, StateIdle, f.driver.State())
	assert.Equal(t, 300.0, f.driver.Elapsed())
	assert.Nil(t, f.scheduler.pending, "no tick scheduled after completion")
	require.Len(t, f.adapter.paints, 1)
	assert.Equal(t, 200.0, f.adapter.paints[0][0].X)
}

func TestDriverLoopRestarts(t *testing.T) {
	f := newFixture(t, "t")
	f.driver.SetLoop(true)
	f.driver.Play()

	f.advance(500 * time.Millisecond)
	f.scheduler.fire()

	assert.Equal(t, StatePlaying, f.driver.State())
	assert.Equal(t, 0.0, f.driver.Elapsed())
	assert.NotNil(t, f.scheduler.pending)
}

func TestDriverPauseCancelsPendingTick(t *testing.T) {
	f := newFixture(t, "t")
	f.driver.Play()
	f.advance(100 * time.Millisecond)
	f.driver.Pause()

	assert.Equal(t, StatePaused, f.driver.State())
	assert.Equal(t, 1, f.scheduler.cancels)
	assert.Nil(t, f.scheduler.pending)
	assert.InDelta(t, 100, f.driver.Elapsed(), 1e-6)
	assert.Empty(t, f.adapter.paints, "pause does not re-evaluate")
}

func TestDriverResumeKeepsElapsed(t *testing.T) {
	f := newFixture(t, "t")
	f.driver.Play()
	f.advance(100 * time.Millisecond)
	f.driver.Pause()

	f.advance(10 * time.Second) // paused time must not count
	f.driver.Play()
	assert.Equal(t, StatePlaying, f.driver.State())

	f.advance(50 * time.Millisecond)
	f.scheduler.fire()
	assert.InDelta(t, 150, f.driver.Elapsed(), 1e-6)
}

func TestDriverSpeedMultiplier(t *testing.T) {
	f := newFixture(t, "t")
	f.driver.SetSpeed(2)
	f.driver.Play()

	f.advance(75 * time.Millisecond)
	f.scheduler.fire()
	assert.InDelta(t, 150, f.driver.Elapsed(), 1e-6)
}

func TestDriverSeekPaintsWithoutStateChange(t *testing.T) {
	f := newFixture(t, "t")

	f.driver.Seek(150)
	assert.Equal(t, StateIdle, f.driver.State())
	require.Len(t, f.adapter.paints, 1)
	assert.InDelta(t, 100, f.adapter.paints[0][0].X, 1e-6)

	f.driver.Play()
	f.driver.Seek(0)
	assert.Equal(t, StatePlaying, f.driver.State())
}

func TestDriverUnknownTransitionPaintsNothing(t *testing.T) {
	f := newFixture(t, "missing")
	assert.NotPanics(t, func() {
		f.driver.Play()
		f.scheduler.fire()
		f.driver.Seek(50)
	})
	require.Len(t, f.adapter.paints, 2)
	assert.Empty(t, f.adapter.paints[0])
	assert.Empty(t, f.adapter.backgrounds[0])
}

func TestDriverStaleTickAfterPauseIsDropped(t *testing.T) {
	f := newFixture(t, "t")
	f.driver.Play()
	stale := f.scheduler.pending
	f.driver.Pause()

	// Fire the tick the scheduler had already handed out.
	stale()
	assert.Empty(t, f.adapter.paints)
	assert.Equal(t, StatePaused, f.driver.State())
}

func TestDriverContainsAdapterPanic(t *testing.T) {
	f := newFixture(t, "t")
	f.driver = NewDriver(f.driver.scene, f.driver.model, "t", panicAdapter{}, f.scheduler)
	f.advance(0)

	assert.NotPanics(t, func() {
		f.driver.Play()
		f.scheduler.fire()
	})
	assert.Equal(t, StatePlaying, f.driver.State())
}
