package board

import (
	"time"

	"github.com/skillboard/skillboard/pkg/observability"
)

// swapCandidate is a proposed replacement of a contiguous run on one line.
// It lives for a single scheduling tick: validated, then either executed or
// discarded.
type swapCandidate struct {
	line        int
	start       int
	count       int
	removed     []Element
	replacement []Label
}

// tick is one swap cycle, run by the repeating scheduler. It searches for a
// candidate up to CandidateRetries times; a tick with no valid candidate is
// an expected no-op, not an error.
func (e *Engine) tick() {
	e.mu.Lock()
	if !e.running || !e.visible {
		e.mu.Unlock()
		return
	}
	if !e.anims() {
		e.mu.Unlock()
		return
	}

	for i := 0; i < e.cfg.CandidateRetries; i++ {
		if c, ok := e.findCandidateLocked(); ok {
			e.beginSwapLocked(c)
			e.mu.Unlock()
			return
		}
	}
	e.mu.Unlock()
	observability.Board().OnIdleTick()
}

// findCandidateLocked makes one attempt at proposing a swap. Any failure
// (locked line, empty line, no freed width, no replacement fits) rejects
// the whole attempt.
func (e *Engine) findCandidateLocked() (swapCandidate, bool) {
	li := e.rng.Intn(len(e.lines))
	if e.locks[li] {
		return swapCandidate{}, false
	}
	line := e.lines[li]
	n := len(line)
	if n == 0 {
		return swapCandidate{}, false
	}

	count := 1 + e.rng.Intn(e.cfg.MaxRun)
	if count > n {
		count = n
	}
	start := e.rng.Intn(n - count + 1)

	// Width still committed to the labels that stay. The kept labels keep
	// their own internal gaps and need boundary gaps toward the inserted
	// run (two when the run is interior, one at an edge, none when the run
	// is the whole line), which works out to exactly (n-count) gaps.
	remain := 0
	for i, el := range line {
		if i < start || i >= start+count {
			remain += el.Label.Width
		}
	}
	freed := e.budget - remain - e.cfg.Gap*(n-count)
	if freed <= 0 {
		return swapCandidate{}, false
	}

	replacement := FillLine(e.rng, e.availableLocked(), freed, e.cfg)
	if len(replacement) == 0 {
		return swapCandidate{}, false
	}

	removed := make([]Element, count)
	copy(removed, line[start:start+count])

	return swapCandidate{
		line:        li,
		start:       start,
		count:       count,
		removed:     removed,
		replacement: replacement,
	}, true
}

// beginSwapLocked starts the animation sequence for a validated candidate.
// The line lock is taken here and released only at completion, abort, or a
// board rebuild.
func (e *Engine) beginSwapLocked(c swapCandidate) {
	e.locks[c.line] = true
	for _, l := range c.replacement {
		e.reserved[l.Text] = true
	}

	// Phase 1 check: when animations are off the replacement applies
	// immediately, plain visible, and the lock releases.
	if !e.anims() {
		e.abortSwapLocked(c)
		return
	}

	observability.Board().OnSwapStart(c.line, labelTexts(c.removed), texts(c.replacement))

	gen := e.gen
	started := time.Now()
	for _, el := range c.removed {
		e.renderer.SetState(el.ID, State{Visible: true, Highlighted: true})
	}
	e.sched.AfterFunc(e.cfg.Highlight, func() {
		e.phaseFadeOut(gen, c, started)
	})
}

// phaseFadeOut marks the outgoing run as fading and holds for the fade-out
// duration. Checked here too: disabling animations mid-highlight aborts the
// remaining phases.
func (e *Engine) phaseFadeOut(gen uint64, c swapCandidate, started time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return // board rebuilt while this timer was pending
	}

	if !e.anims() {
		e.abortSwapLocked(c)
		return
	}

	for _, el := range c.removed {
		e.renderer.SetState(el.ID, State{Visible: true, FadingOut: true})
	}
	e.sched.AfterFunc(e.cfg.FadeOut, func() {
		e.phaseSwap(gen, c, started)
	})
}

// phaseSwap atomically replaces the run in both the logical line and the
// rendered order, then starts the fade-in-plus-highlight hold on the new
// elements.
func (e *Engine) phaseSwap(gen uint64, c swapCandidate, started time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}

	inserted := e.applySwapLocked(c, true)
	for _, el := range inserted {
		e.renderer.SetState(el.ID, State{Visible: true, Highlighted: true, FadingIn: true})
	}
	e.sched.AfterFunc(e.cfg.FadeIn, func() {
		e.phaseFinish(gen, c, inserted, started)
	})
}

// phaseFinish clears the highlight from the inserted elements and releases
// the line lock.
func (e *Engine) phaseFinish(gen uint64, c swapCandidate, inserted []Element, started time.Time) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}

	for _, el := range inserted {
		e.renderer.SetState(el.ID, State{Visible: true})
	}
	e.locks[c.line] = false
	e.mu.Unlock()
	observability.Board().OnSwapComplete(c.line, time.Since(started))
}

// abortSwapLocked applies the replacement without animation: new elements
// go straight to visible, no highlight or fade, and the lock releases.
func (e *Engine) abortSwapLocked(c swapCandidate) {
	e.applySwapLocked(c, false)
	e.locks[c.line] = false
	observability.Board().OnSwapAbort(c.line)
}

// applySwapLocked performs the swap itself: new elements are created before
// the first removed element, old elements are removed, and the logical line
// is updated in the same step. When hidden is true the new elements stay in
// their initial hidden state for the caller to animate; otherwise they are
// marked visible immediately.
func (e *Engine) applySwapLocked(c swapCandidate, hidden bool) []Element {
	line := e.lines[c.line]
	before := line[c.start].ID

	inserted := make([]Element, len(c.replacement))
	for i, l := range c.replacement {
		el := e.newElementLocked(l)
		inserted[i] = el
		e.renderer.Create(c.line, el.ID, l, before)
		if !hidden {
			e.renderer.SetState(el.ID, State{Visible: true})
		}
		delete(e.reserved, l.Text)
	}
	for _, el := range line[c.start : c.start+c.count] {
		e.renderer.Remove(el.ID)
	}

	updated := make([]Element, 0, len(line)-c.count+len(inserted))
	updated = append(updated, line[:c.start]...)
	updated = append(updated, inserted...)
	updated = append(updated, line[c.start+c.count:]...)
	e.lines[c.line] = updated

	return inserted
}

func labelTexts(els []Element) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.Label.Text
	}
	return out
}

func texts(labels []Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.Text
	}
	return out
}
