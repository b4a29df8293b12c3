// Package timer provides the scheduling capability used by the board engine.
//
// The engine never talks to the time package directly. It schedules one-shot
// and repeating callbacks through the [Scheduler] interface, which has two
// implementations:
//   - [System]: wall-clock scheduling backed by time.AfterFunc and time.Ticker
//   - [Manual]: a deterministic scheduler for tests, advanced explicitly
//
// Separating the capability keeps every timer-chained animation phase
// independently testable without sleeping in tests.
package timer

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled one-shot callback.
type Timer interface {
	// Stop cancels the callback if it has not fired yet.
	// It reports whether the cancellation took effect.
	Stop() bool
}

// Scheduler schedules callbacks for future execution.
//
// Callbacks may run on a different goroutine than the caller's. Consumers
// that share state with their callbacks must synchronize access themselves.
type Scheduler interface {
	// AfterFunc runs fn once after delay d. The returned Timer can cancel
	// the callback before it fires.
	AfterFunc(d time.Duration, fn func()) Timer

	// Every runs fn repeatedly with period d until the returned stop
	// function is called. Stop is idempotent.
	Every(d time.Duration, fn func()) (stop func())
}

// System is a Scheduler backed by the wall clock.
type System struct{}

// NewSystem creates a wall-clock scheduler.
func NewSystem() Scheduler {
	return System{}
}

type systemTimer struct {
	t *time.Timer
}

func (t systemTimer) Stop() bool { return t.t.Stop() }

// AfterFunc schedules fn via time.AfterFunc.
func (System) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{t: time.AfterFunc(d, fn)}
}

// Every runs fn on a time.Ticker until stopped.
func (System) Every(d time.Duration, fn func()) (stop func()) {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// Ensure System implements Scheduler.
var _ Scheduler = System{}
