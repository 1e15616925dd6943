package app

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is returned when a task is offered to a loop that has stopped.
var ErrLoopStopped = errors.New("event loop stopped")

// Loop runs tasks one at a time in the order they were posted. Every read or
// write of quiz state happens inside a task, so the state needs no locks and
// arrival order at the loop is the order answers are ranked in.
type Loop struct {
	tasks    chan func()
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewLoop(buffer int) *Loop {
	return &Loop{
		tasks:   make(chan func(), buffer),
		stopped: make(chan struct{}),
	}
}

// Run processes tasks until ctx is canceled.
func (l *Loop) Run(ctx context.Context) {
	defer l.stopOnce.Do(func() { close(l.stopped) })
	for {
		select {
		case task := <-l.tasks:
			task()
		case <-ctx.Done():
			return
		}
	}
}

// Post enqueues task without waiting for it to run. It reports false if the
// loop has stopped.
func (l *Loop) Post(task func()) bool {
	select {
	case <-l.stopped:
		return false
	default:
	}
	select {
	case l.tasks <- task:
		return true
	case <-l.stopped:
		return false
	}
}

// Do enqueues task and waits for it to complete.
func (l *Loop) Do(ctx context.Context, task func()) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		task()
	}

	select {
	case <-l.stopped:
		return ErrLoopStopped
	default:
	}
	select {
	case l.tasks <- wrapped:
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// A queued task is waited for even if ctx is canceled.
	select {
	case <-done:
		return nil
	case <-l.stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrLoopStopped
		}
	}
}
