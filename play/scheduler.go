// Package play drives a motion model along a virtual clock and forwards
// each evaluated sample to a paint adapter.
package play

import "time"

// CancelFunc cancels a pending tick.
type CancelFunc func()

// A Scheduler provides the "schedule next tick" capability the driver
// runs on. Injecting it keeps the driver independent of any host timer
// API and makes playback testable with a manual scheduler.
type Scheduler interface {
	Schedule(fn func()) CancelFunc
}

// frameInterval is the cadence real playback ticks at, roughly 30
// frames per second.
const frameInterval = 33 * time.Millisecond

// A TimerScheduler schedules ticks on the process clock at a fixed
// frame interval.
type TimerScheduler struct {
	Interval time.Duration
}

// NewTimerScheduler creates a TimerScheduler at the default cadence.
func NewTimerScheduler() *TimerScheduler {
	s := new(TimerScheduler)
	s.Interval = frameInterval
	return s
}

// Schedule runs fn once after the frame interval.
func (s *TimerScheduler) Schedule(fn func()) CancelFunc {
	timer := time.AfterFunc(s.Interval, fn)
	return func() { timer.Stop() }
}
