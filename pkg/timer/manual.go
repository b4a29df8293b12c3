package timer

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler for tests. Time only moves when
// Advance is called; due callbacks fire synchronously on the advancing
// goroutine, in deadline order. Callbacks scheduled from inside other
// callbacks (the board engine chains animation phases this way) become
// eligible within the same Advance call if their deadline falls inside
// the advanced window.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	timers []*manualTimer
}

type manualTimer struct {
	m        *Manual
	id       int
	deadline time.Duration
	period   time.Duration // 0 for one-shot
	fn       func()
	stopped  bool
}

// NewManual creates a manual scheduler starting at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the scheduler's current virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers a one-shot callback due after d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{m: m, id: m.nextID, deadline: m.now + d, fn: fn}
	m.nextID++
	m.timers = append(m.timers, t)
	return t
}

// Every registers a repeating callback with period d, first due after d.
func (m *Manual) Every(d time.Duration, fn func()) (stop func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{m: m, id: m.nextID, deadline: m.now + d, period: d, fn: fn}
	m.nextID++
	m.timers = append(m.timers, t)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		t.stopped = true
	}
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// Advance moves virtual time forward by d, firing every callback whose
// deadline falls within the window, in deadline order. Ties fire in
// registration order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d

	for {
		next := m.nextDueLocked(target)
		if next == nil {
			break
		}
		m.now = next.deadline
		if next.period > 0 {
			next.deadline += next.period
		} else {
			next.stopped = true
		}
		fn := next.fn
		// Release the lock while firing so callbacks can schedule
		// new timers or stop existing ones.
		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}

	m.now = target
	m.compactLocked()
	m.mu.Unlock()
}

func (m *Manual) nextDueLocked(target time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.stopped || t.deadline > target {
			continue
		}
		if best == nil || t.deadline < best.deadline || (t.deadline == best.deadline && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (m *Manual) compactLocked() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.timers = live
	sort.SliceStable(m.timers, func(i, j int) bool {
		return m.timers[i].deadline < m.timers[j].deadline
	})
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Ensure Manual implements Scheduler.
var _ Scheduler = (*Manual)(nil)
