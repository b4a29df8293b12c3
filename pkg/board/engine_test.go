package board

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/skillboard/skillboard/pkg/measure"
	"github.com/skillboard/skillboard/pkg/timer"
)

// fakeRenderer records the engine's render instructions so tests can assert
// on the visual state the way a real front end would display it.
type fakeRenderer struct {
	boxes map[ElementID]*fakeBox
	lines [][]ElementID // visual order per line
}

type fakeBox struct {
	line  int
	label Label
	state State
}

func newFakeRenderer(lines int) *fakeRenderer {
	return &fakeRenderer{
		boxes: make(map[ElementID]*fakeBox),
		lines: make([][]ElementID, lines),
	}
}

func (r *fakeRenderer) Create(line int, id ElementID, label Label, before ElementID) {
	r.boxes[id] = &fakeBox{line: line, label: label}
	row := r.lines[line]
	if before == NoElement {
		r.lines[line] = append(row, id)
		return
	}
	for i, existing := range row {
		if existing == before {
			row = append(row[:i], append([]ElementID{id}, row[i:]...)...)
			r.lines[line] = row
			return
		}
	}
	r.lines[line] = append(row, id)
}

func (r *fakeRenderer) SetState(id ElementID, state State) {
	if b, ok := r.boxes[id]; ok {
		b.state = state
	}
}

func (r *fakeRenderer) Remove(id ElementID) {
	b, ok := r.boxes[id]
	if !ok {
		return
	}
	delete(r.boxes, id)
	row := r.lines[b.line]
	for i, existing := range row {
		if existing == id {
			r.lines[b.line] = append(row[:i], row[i+1:]...)
			break
		}
	}
}

func (r *fakeRenderer) transitional() int {
	n := 0
	for _, b := range r.boxes {
		if b.state.Highlighted || b.state.FadingOut || b.state.FadingIn {
			n++
		}
	}
	return n
}

func (r *fakeRenderer) lineTexts(line int) []string {
	out := make([]string, 0, len(r.lines[line]))
	for _, id := range r.lines[line] {
		out = append(out, r.boxes[id].label.Text)
	}
	return out
}

// testBoard wires an engine to a manual scheduler, a fake renderer, and a
// switchable animations flag.
type testBoard struct {
	engine   *Engine
	renderer *fakeRenderer
	sched    *timer.Manual
	anims    bool
}

func testLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("skill-%02d", i)
	}
	return out
}

func newTestBoard(t *testing.T, labels []string, seed int64) *testBoard {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Gap = 2
	cfg.Padding = 0

	tb := &testBoard{
		renderer: newFakeRenderer(cfg.Lines),
		sched:    timer.NewManual(),
		anims:    true,
	}
	tb.engine = New(labels, measure.Fixed(10), tb.renderer, tb.sched, cfg,
		WithRand(rand.New(rand.NewSource(seed))),
		WithAnimations(func() bool { return tb.anims }),
	)
	return tb
}

// advanceToSwap ticks the scheduler until some line locks, failing the test
// if no swap starts within a generous bound.
func (tb *testBoard) advanceToSwap(t *testing.T) int {
	t.Helper()
	for i := 0; i < 50; i++ {
		tb.sched.Advance(tb.engine.cfg.SwapInterval)
		for li, locked := range tb.engine.Locks() {
			if locked {
				return li
			}
		}
	}
	t.Fatal("no swap started within 50 scheduler ticks")
	return -1
}

func assertPartition(t *testing.T, e *Engine) {
	t.Helper()
	seen := map[string]int{}
	for li, line := range e.Lines() {
		for _, l := range line {
			if prev, ok := seen[l.Text]; ok {
				t.Fatalf("label %q displayed on lines %d and %d", l.Text, prev, li)
			}
			seen[l.Text] = li
		}
	}
}

func assertWidths(t *testing.T, e *Engine) {
	t.Helper()
	for li, line := range e.Lines() {
		if w := totalWidth(line, e.cfg.Gap); w > e.Budget() {
			t.Fatalf("line %d width %d exceeds budget %d", li, w, e.Budget())
		}
	}
}

func TestStartFillsBoard(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 1)
	tb.engine.Start(60)

	lines := tb.engine.Lines()
	placed := 0
	for _, line := range lines {
		placed += len(line)
	}
	if placed == 0 {
		t.Fatal("initial fill placed no labels")
	}
	assertPartition(t, tb.engine)
	assertWidths(t, tb.engine)

	// Everything starts plain visible.
	for id, b := range tb.renderer.boxes {
		if !b.state.Visible {
			t.Errorf("element %d not visible after initial fill", id)
		}
	}
	if n := tb.renderer.transitional(); n != 0 {
		t.Errorf("%d elements in transitional state after initial fill", n)
	}
}

func TestSwapLifecycle(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 2)
	tb.engine.Start(60)
	before := tb.engine.Lines()

	line := tb.advanceToSwap(t)
	// Hide the view: the scheduler stops, but the in-flight swap keeps
	// running on its already-scheduled phase timers.
	tb.engine.SetVisible(false)

	// Highlight phase: the outgoing run is highlighted, line is locked.
	highlighted := 0
	for _, b := range tb.renderer.boxes {
		if b.state.Highlighted && !b.state.FadingIn {
			highlighted++
		}
	}
	if highlighted == 0 {
		t.Fatal("no highlighted elements during highlight phase")
	}

	// Fade-out phase.
	tb.sched.Advance(tb.engine.cfg.Highlight)
	fading := 0
	for _, b := range tb.renderer.boxes {
		if b.state.FadingOut {
			fading++
		}
	}
	if fading == 0 {
		t.Fatal("no fading elements during fade-out phase")
	}

	// Swap phase: replacements inserted, fading in, lock still held.
	tb.sched.Advance(tb.engine.cfg.FadeOut)
	if !tb.engine.Locks()[line] {
		t.Fatal("lock released before fade-in completed")
	}
	fadingIn := 0
	for _, b := range tb.renderer.boxes {
		if b.state.FadingIn {
			if !b.state.Visible || !b.state.Highlighted {
				t.Error("fading-in element should be visible and highlighted")
			}
			fadingIn++
		}
	}
	if fadingIn == 0 {
		t.Fatal("no fading-in elements after swap phase")
	}
	assertPartition(t, tb.engine)
	assertWidths(t, tb.engine)

	// Completion: lock released, no transitional state.
	tb.sched.Advance(tb.engine.cfg.FadeIn)
	if tb.engine.Locks()[line] {
		t.Fatal("lock still held after completion")
	}
	if n := tb.renderer.transitional(); n != 0 {
		t.Errorf("%d transitional elements after completion", n)
	}

	// The swapped line actually changed content.
	changed := false
	after := tb.engine.Lines()
	for li := range after {
		if len(after[li]) != len(before[li]) {
			changed = true
			break
		}
		for j := range after[li] {
			if after[li][j].Text != before[li][j].Text {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("board unchanged after a completed swap")
	}
}

func TestPartitionHoldsAcrossManySwaps(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 3)
	tb.engine.Start(60)

	step := tb.engine.cfg.SwapInterval / 2
	for i := 0; i < 200; i++ {
		tb.sched.Advance(step)
		assertPartition(t, tb.engine)
		assertWidths(t, tb.engine)
	}
}

func TestLogicalAndVisualOrderAgree(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 4)
	tb.engine.Start(60)

	step := tb.engine.cfg.SwapInterval / 2
	for i := 0; i < 100; i++ {
		tb.sched.Advance(step)
		for li, line := range tb.engine.Lines() {
			visual := tb.renderer.lineTexts(li)
			if len(visual) != len(line) {
				t.Fatalf("line %d: %d rendered, %d logical", li, len(visual), len(line))
			}
			for j := range line {
				if visual[j] != line[j].Text {
					t.Fatalf("line %d slot %d: rendered %q, logical %q", li, j, visual[j], line[j].Text)
				}
			}
		}
	}
}

func TestDisableAnimationsMidHighlight(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 5)
	tb.engine.Start(60)

	line := tb.advanceToSwap(t)
	tb.anims = false

	// The next phase boundary must abort: replacement applied, lock
	// released, nothing left highlighted or fading.
	tb.sched.Advance(tb.engine.cfg.Highlight)
	if tb.engine.Locks()[line] {
		t.Fatal("lock still held after abort")
	}
	if n := tb.renderer.transitional(); n != 0 {
		t.Fatalf("%d transitional elements after abort", n)
	}
	for id, b := range tb.renderer.boxes {
		if !b.state.Visible {
			t.Errorf("element %d hidden after abort", id)
		}
	}
	assertPartition(t, tb.engine)
	assertWidths(t, tb.engine)
}

func TestDisabledAnimationsStopSwaps(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 6)
	tb.engine.Start(60)
	tb.anims = false

	before := tb.engine.Lines()
	for i := 0; i < 20; i++ {
		tb.sched.Advance(tb.engine.cfg.SwapInterval)
	}
	after := tb.engine.Lines()

	for li := range after {
		if len(after[li]) != len(before[li]) {
			t.Fatal("board changed while animations disabled")
		}
		for j := range after[li] {
			if after[li][j].Text != before[li][j].Text {
				t.Fatal("board changed while animations disabled")
			}
		}
	}
}

func TestBackgroundingStopsSchedulerButNotPhases(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 7)
	tb.engine.Start(60)

	tb.advanceToSwap(t)
	tb.engine.SetVisible(false)

	// No new swaps start while hidden, but the in-flight one runs to
	// completion on its already-scheduled timers.
	total := tb.engine.cfg.Highlight + tb.engine.cfg.FadeOut + tb.engine.cfg.FadeIn
	tb.sched.Advance(total)
	for li, locked := range tb.engine.Locks() {
		if locked {
			t.Fatalf("line %d still locked after in-flight swap had time to finish", li)
		}
	}
	if n := tb.renderer.transitional(); n != 0 {
		t.Errorf("%d transitional elements after hidden completion", n)
	}

	linesBefore := tb.engine.Lines()
	for i := 0; i < 20; i++ {
		tb.sched.Advance(tb.engine.cfg.SwapInterval)
	}
	linesAfter := tb.engine.Lines()
	for li := range linesAfter {
		if len(linesAfter[li]) != len(linesBefore[li]) {
			t.Fatal("new swap started while hidden")
		}
		for j := range linesAfter[li] {
			if linesAfter[li][j].Text != linesBefore[li][j].Text {
				t.Fatal("new swap started while hidden")
			}
		}
	}
}

func TestForegroundCleanupClearsResidue(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 8)
	tb.engine.Start(60)

	// Get a swap mid-flight, then hide and immediately show again without
	// letting the phase timers run.
	tb.advanceToSwap(t)
	tb.engine.SetVisible(false)
	tb.engine.SetVisible(true)

	for li, locked := range tb.engine.Locks() {
		if locked {
			t.Fatalf("line %d locked after foreground cleanup", li)
		}
	}
	if n := tb.renderer.transitional(); n != 0 {
		t.Fatalf("%d transitional elements after foreground cleanup", n)
	}

	// The abandoned swap's stale timers fire later; they must not disturb
	// the board. Hide again so the restarted scheduler does not start
	// fresh swaps while we wait the stale timers out.
	tb.engine.SetVisible(false)
	tb.sched.Advance(time.Minute)
	for li, locked := range tb.engine.Locks() {
		if locked {
			t.Fatalf("line %d locked by a stale phase timer", li)
		}
	}
	assertPartition(t, tb.engine)
	assertWidths(t, tb.engine)
}

func TestSmallResizeIgnored(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 9)
	tb.engine.Start(60)
	before := tb.engine.Lines()

	tb.engine.Resize(60 + tb.engine.cfg.ResizeThreshold)

	after := tb.engine.Lines()
	for li := range after {
		if len(after[li]) != len(before[li]) {
			t.Fatal("small resize repacked the board")
		}
		for j := range after[li] {
			if after[li][j].Text != before[li][j].Text {
				t.Fatal("small resize repacked the board")
			}
		}
	}
	if tb.engine.Budget() != 60 {
		t.Errorf("budget = %d, want unchanged 60", tb.engine.Budget())
	}
}

func TestLargeResizeRepacks(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 10)
	tb.engine.Start(60)
	tb.advanceToSwap(t)

	tb.engine.Resize(120)

	if tb.engine.Budget() != 120 {
		t.Errorf("budget = %d, want 120", tb.engine.Budget())
	}
	for li, locked := range tb.engine.Locks() {
		if locked {
			t.Fatalf("line %d still locked after resize repack", li)
		}
	}
	if n := tb.renderer.transitional(); n != 0 {
		t.Errorf("%d transitional elements after resize repack", n)
	}
	assertPartition(t, tb.engine)
	assertWidths(t, tb.engine)

	// Stale phase timers from the pre-resize swap must be inert.
	tb.sched.Advance(time.Minute)
	assertPartition(t, tb.engine)
	assertWidths(t, tb.engine)
}

func TestEmptyLabelSet(t *testing.T) {
	tb := newTestBoard(t, nil, 11)
	tb.engine.Start(60)

	for _, line := range tb.engine.Lines() {
		if len(line) != 0 {
			t.Fatal("lines not empty for empty label set")
		}
	}
	// Ticks are silent no-ops.
	tb.sched.Advance(time.Minute)
	for _, locked := range tb.engine.Locks() {
		if locked {
			t.Fatal("lock set with no labels")
		}
	}
}

func TestZeroWidth(t *testing.T) {
	tb := newTestBoard(t, testLabels(10), 12)
	tb.engine.Start(0)

	for _, line := range tb.engine.Lines() {
		if len(line) != 0 {
			t.Fatal("labels placed with zero width budget")
		}
	}
	tb.sched.Advance(time.Minute)
	if n := tb.renderer.transitional(); n != 0 {
		t.Fatal("transitional elements with zero width budget")
	}
}

func TestStopInvalidatesPhases(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 13)
	tb.engine.Start(60)
	tb.advanceToSwap(t)

	tb.engine.Stop()
	tb.sched.Advance(time.Minute)

	for li, locked := range tb.engine.Locks() {
		if locked {
			t.Fatalf("line %d locked after Stop", li)
		}
	}
}

func TestSetLabelsRepacks(t *testing.T) {
	tb := newTestBoard(t, testLabels(40), 14)
	tb.engine.Start(60)

	tb.engine.SetLabels([]string{"only", "four", "new", "labels"})

	seen := map[string]bool{}
	for _, line := range tb.engine.Lines() {
		for _, l := range line {
			seen[l.Text] = true
			switch l.Text {
			case "only", "four", "new", "labels":
			default:
				t.Fatalf("stale label %q after SetLabels", l.Text)
			}
		}
	}
	if len(seen) == 0 {
		t.Fatal("no labels placed after SetLabels")
	}
	assertPartition(t, tb.engine)
	assertWidths(t, tb.engine)
}
