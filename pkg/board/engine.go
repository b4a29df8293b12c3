package board

import (
	"math/rand"
	"sync"
	"time"

	"github.com/skillboard/skillboard/pkg/observability"
	"github.com/skillboard/skillboard/pkg/timer"
)

// Element pairs a label with its rendered box handle.
type Element struct {
	ID    ElementID
	Label Label
}

// Engine owns the board state: the label pool, the per-line contents, the
// per-line swap locks, and the swap scheduler. All state is guarded by a
// single mutex; public methods and timer callbacks are the only mutators,
// so every phase boundary is a clean suspension point.
type Engine struct {
	mu sync.Mutex

	cfg      Config
	texts    []string
	measurer Measurer
	renderer Renderer
	sched    timer.Scheduler
	rng      *rand.Rand
	anims    func() bool

	pool     []Label
	lines    [][]Element
	locks    []bool
	reserved map[string]bool // labels committed to in-flight swaps, not yet displayed

	width  int // container width as last reported
	budget int // width minus padding, shared by all lines

	nextID   ElementID
	stopTick func()
	running  bool
	visible  bool

	// gen invalidates phase timers that outlive a board rebuild
	// (foreground cleanup, repack, resize, stop).
	gen uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source. Tests use a seeded source to force
// specific packing and candidate-search outcomes.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithAnimations sets the "animations enabled" probe. The engine polls it
// at every scheduler tick and at each animation phase boundary. The default
// probe always reports true.
func WithAnimations(enabled func() bool) Option {
	return func(e *Engine) { e.anims = enabled }
}

// New creates an engine for the given label texts. The measurer, renderer,
// and scheduler capabilities are required; texts may be empty, in which
// case the board stays blank and every tick is a no-op.
func New(texts []string, m Measurer, r Renderer, s timer.Scheduler, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg.withDefaults(),
		texts:    append([]string(nil), texts...),
		measurer: m,
		renderer: r,
		sched:    s,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		anims:    func() bool { return true },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.lines = make([][]Element, e.cfg.Lines)
	e.locks = make([]bool, e.cfg.Lines)
	e.reserved = make(map[string]bool)
	return e
}

// Start measures the label set, packs the initial board for the given
// container width, renders it, and starts the swap scheduler. The engine
// starts visible.
func (e *Engine) Start(width int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.running = true
	e.visible = true
	e.width = width
	e.budget = e.budgetFor(width)
	e.pool = MeasureLabels(e.texts, e.measurer)
	e.rebuildLocked()
	e.startTickerLocked()
}

// Stop halts the swap scheduler and invalidates in-flight animation phases.
// Rendered elements are left in place; the owner tears down the view.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	e.gen++
	e.stopTickerLocked()
	for i := range e.locks {
		e.locks[i] = false
	}
	clear(e.reserved)
}

// SetVisible reports view visibility changes to the engine.
//
// Hiding stops the scheduler but deliberately leaves in-flight phase timers
// running; swaps already started finish on their own. Showing again treats
// any swap still in flight as abandoned: transitional visual state is
// cleared, every lock is released, and the scheduler restarts from scratch.
func (e *Engine) SetVisible(v bool) {
	e.mu.Lock()
	if !e.running || v == e.visible {
		e.mu.Unlock()
		return
	}
	e.visible = v

	if !v {
		e.stopTickerLocked()
		e.mu.Unlock()
		observability.Board().OnPause()
		return
	}

	e.gen++
	for _, line := range e.lines {
		for _, el := range line {
			e.renderer.SetState(el.ID, State{Visible: true})
		}
	}
	for i := range e.locks {
		e.locks[i] = false
	}
	clear(e.reserved)
	e.startTickerLocked()
	e.mu.Unlock()
	observability.Board().OnResume()
}

// Resize reports a new container width. Changes at or below the resize
// threshold are ignored to avoid visual churn. Larger changes stop the
// scheduler, re-measure the label set, repack the whole board from scratch
// (discarding lines and locks), and restart the scheduler.
func (e *Engine) Resize(width int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		e.width = width
		return
	}

	delta := width - e.width
	if delta < 0 {
		delta = -delta
	}
	if delta <= e.cfg.ResizeThreshold {
		return
	}

	e.width = width
	e.stopTickerLocked()
	e.budget = e.budgetFor(width)
	e.pool = MeasureLabels(e.texts, e.measurer)
	e.rebuildLocked()
	if e.visible {
		e.startTickerLocked()
	}
}

// Repack discards the current lines and packs the board again from the full
// pool. Locks reset and in-flight animations are abandoned.
func (e *Engine) Repack() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.rebuildLocked()
}

// SetLabels replaces the label pool and repacks the board.
func (e *Engine) SetLabels(texts []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.texts = append([]string(nil), texts...)
	if !e.running {
		return
	}
	e.pool = MeasureLabels(e.texts, e.measurer)
	e.rebuildLocked()
}

// Lines returns a copy of the current line contents.
func (e *Engine) Lines() [][]Label {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([][]Label, len(e.lines))
	for i, line := range e.lines {
		out[i] = make([]Label, len(line))
		for j, el := range line {
			out[i][j] = el.Label
		}
	}
	return out
}

// Locks returns a copy of the per-line lock flags.
func (e *Engine) Locks() []bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]bool(nil), e.locks...)
}

// PoolSize returns the number of distinct labels in the pool.
func (e *Engine) PoolSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pool)
}

// Budget returns the current shared line width budget.
func (e *Engine) Budget() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.budget
}

func (e *Engine) budgetFor(width int) int {
	b := width - 2*e.cfg.Padding
	if b < 0 {
		b = 0
	}
	return b
}

// rebuildLocked discards all rendered elements and line state, packs the
// board again, and renders it. Any in-flight animation becomes stale.
func (e *Engine) rebuildLocked() {
	e.gen++
	for _, line := range e.lines {
		for _, el := range line {
			e.renderer.Remove(el.ID)
		}
	}
	e.lines = make([][]Element, e.cfg.Lines)
	e.locks = make([]bool, e.cfg.Lines)
	clear(e.reserved)

	observability.Board().OnFillStart(e.cfg.Lines, len(e.pool))
	start := time.Now()

	placed := 0
	for li, labels := range FillLines(e.rng, e.pool, e.budget, e.cfg) {
		for _, l := range labels {
			el := e.newElementLocked(l)
			e.lines[li] = append(e.lines[li], el)
			e.renderer.Create(li, el.ID, l, NoElement)
			e.renderer.SetState(el.ID, State{Visible: true})
			placed++
		}
	}

	observability.Board().OnFillComplete(placed, time.Since(start))
}

func (e *Engine) newElementLocked(l Label) Element {
	e.nextID++
	return Element{ID: e.nextID, Label: l}
}

func (e *Engine) startTickerLocked() {
	if e.stopTick != nil {
		return
	}
	e.stopTick = e.sched.Every(e.cfg.SwapInterval, e.tick)
}

func (e *Engine) stopTickerLocked() {
	if e.stopTick != nil {
		e.stopTick()
		e.stopTick = nil
	}
}

// displayedLocked returns the set of label texts currently on any line.
func (e *Engine) displayedLocked() map[string]bool {
	out := make(map[string]bool)
	for _, line := range e.lines {
		for _, el := range line {
			out[el.Label.Text] = true
		}
	}
	return out
}

// availableLocked returns the pool minus every displayed label and minus
// labels reserved by swaps still in flight.
func (e *Engine) availableLocked() []Label {
	displayed := e.displayedLocked()
	avail := make([]Label, 0, len(e.pool))
	for _, l := range e.pool {
		if !displayed[l.Text] && !e.reserved[l.Text] {
			avail = append(avail, l)
		}
	}
	return avail
}
