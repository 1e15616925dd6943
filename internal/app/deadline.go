package app

import "time"

// Timer is a cancellable handle for an armed deadline. Stop must be safe to
// call after the timer fired or was already stopped.
type Timer interface {
	Stop() bool
}

// Scheduler arms single-shot deadlines.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// WallScheduler schedules on the runtime timer wheel.
type WallScheduler struct{}

func (WallScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
