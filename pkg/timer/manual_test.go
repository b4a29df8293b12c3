package timer

import (
	"testing"
	"time"
)

func TestManualAfterFunc(t *testing.T) {
	m := NewManual()
	fired := 0
	m.AfterFunc(100*time.Millisecond, func() { fired++ })

	m.Advance(50 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("callback fired early: fired = %d", fired)
	}

	m.Advance(50 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}

	// One-shot: never fires again.
	m.Advance(time.Second)
	if fired != 1 {
		t.Fatalf("fired = %d after extra advance, want 1", fired)
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	fired := false
	timer := m.AfterFunc(100*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop() = false for pending timer")
	}
	m.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if timer.Stop() {
		t.Error("Stop() = true for already-stopped timer")
	}
}

func TestManualEvery(t *testing.T) {
	m := NewManual()
	fired := 0
	stop := m.Every(100*time.Millisecond, func() { fired++ })

	m.Advance(350 * time.Millisecond)
	if fired != 3 {
		t.Fatalf("fired = %d, want 3", fired)
	}

	stop()
	m.Advance(time.Second)
	if fired != 3 {
		t.Fatalf("fired = %d after stop, want 3", fired)
	}

	// Stop is idempotent.
	stop()
}

func TestManualFiringOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })

	m.Advance(time.Second)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestManualChainedCallbacks(t *testing.T) {
	// Phase chains schedule the next phase from inside the previous
	// callback; a single Advance must walk the whole chain.
	m := NewManual()
	var phases []int
	m.AfterFunc(100*time.Millisecond, func() {
		phases = append(phases, 1)
		m.AfterFunc(100*time.Millisecond, func() {
			phases = append(phases, 2)
			m.AfterFunc(100*time.Millisecond, func() {
				phases = append(phases, 3)
			})
		})
	})

	m.Advance(250 * time.Millisecond)
	if len(phases) != 2 {
		t.Fatalf("phases = %v, want [1 2]", phases)
	}

	m.Advance(50 * time.Millisecond)
	if len(phases) != 3 {
		t.Fatalf("phases = %v, want [1 2 3]", phases)
	}
}

func TestManualPending(t *testing.T) {
	m := NewManual()
	m.AfterFunc(time.Second, func() {})
	stop := m.Every(time.Second, func() {})

	if got := m.Pending(); got != 2 {
		t.Fatalf("Pending() = %d, want 2", got)
	}
	stop()
	m.Advance(time.Second)
	if got := m.Pending(); got != 0 {
		t.Fatalf("Pending() = %d, want 0", got)
	}
}
