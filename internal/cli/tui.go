package cli

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skillboard/skillboard/pkg/board"
	"github.com/skillboard/skillboard/pkg/prefs"
)

// =============================================================================
// Box Styles
// =============================================================================

var (
	styleBox = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("236"))

	styleBoxHighlight = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("31"))

	styleBoxFadeOut = lipgloss.NewStyle().
			Foreground(colorDim).
			Background(lipgloss.Color("234"))

	styleBoxFadeIn = lipgloss.NewStyle().
			Foreground(colorCyan).
			Background(lipgloss.Color("237"))
)

// =============================================================================
// Renderer
// =============================================================================

// tuiBox is one displayed element.
type tuiBox struct {
	id    board.ElementID
	label string
	state board.State
}

// tuiRenderer implements board.Renderer for the terminal view. The engine
// mutates it from timer goroutines while View reads snapshots, so it keeps
// its own lock. The engine always calls in with its own lock held; the
// renderer never calls back into the engine.
type tuiRenderer struct {
	mu    sync.Mutex
	lines [][]*tuiBox
	boxes map[board.ElementID]*tuiBox
}

func newTUIRenderer(lines int) *tuiRenderer {
	return &tuiRenderer{
		lines: make([][]*tuiBox, lines),
		boxes: make(map[board.ElementID]*tuiBox),
	}
}

// Create inserts a hidden box, before an existing box or at the line end.
func (r *tuiRenderer) Create(line int, id board.ElementID, label board.Label, before board.ElementID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	box := &tuiBox{id: id, label: label.Text}
	r.boxes[id] = box

	at := len(r.lines[line])
	if before != board.NoElement {
		for i, b := range r.lines[line] {
			if b.id == before {
				at = i
				break
			}
		}
	}
	r.lines[line] = append(r.lines[line], nil)
	copy(r.lines[line][at+1:], r.lines[line][at:])
	r.lines[line][at] = box
}

// SetState updates a box's visual state.
func (r *tuiRenderer) SetState(id board.ElementID, state board.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if box, ok := r.boxes[id]; ok {
		box.state = state
	}
}

// Remove deletes a box.
func (r *tuiRenderer) Remove(id board.ElementID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.boxes, id)
	for li, line := range r.lines {
		for i, b := range line {
			if b.id == id {
				r.lines[li] = append(line[:i], line[i+1:]...)
				break
			}
		}
	}
}

// snapshot copies the display state for rendering.
func (r *tuiRenderer) snapshot() [][]tuiBox {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]tuiBox, len(r.lines))
	for i, line := range r.lines {
		out[i] = make([]tuiBox, len(line))
		for j, b := range line {
			out[i][j] = *b
		}
	}
	return out
}

var _ board.Renderer = (*tuiRenderer)(nil)

// =============================================================================
// Key Bindings
// =============================================================================

type boardKeyMap struct {
	Quit       key.Binding
	ToggleAnim key.Binding
	Repack     key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		ToggleAnim: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle animations"),
		),
		Repack: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "repack"),
		),
	}
}

// =============================================================================
// Model
// =============================================================================

// frameMsg drives the redraw loop; the engine animates on its own timers,
// the view just needs periodic repaints.
type frameMsg struct{}

// feedMsg carries a reloaded label set from the feed watcher.
type feedMsg struct {
	labels []string
	err    error
}

// frameInterval is the repaint period. Well under the shortest animation
// phase so no state change is skipped on screen.
const frameInterval = 50 * time.Millisecond

type boardModel struct {
	engine   *board.Engine
	renderer *tuiRenderer
	store    *prefs.Store
	keys     boardKeyMap
	gap      int
	padding  int

	width   int
	started bool
	feedErr error
}

func newBoardModel(engine *board.Engine, renderer *tuiRenderer, store *prefs.Store, cfg board.Config) boardModel {
	return boardModel{
		engine:   engine,
		renderer: renderer,
		store:    store,
		keys:     newBoardKeyMap(),
		gap:      cfg.Gap,
		padding:  cfg.Padding,
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m boardModel) Init() tea.Cmd {
	return frameTick()
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if !m.started {
			m.engine.Start(msg.Width)
			m.started = true
		} else {
			m.engine.Resize(msg.Width)
		}

	case tea.FocusMsg:
		m.engine.SetVisible(true)

	case tea.BlurMsg:
		m.engine.SetVisible(false)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.engine.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleAnim):
			_ = m.store.SetAnimations(!m.store.Animations())
		case key.Matches(msg, m.keys.Repack):
			m.engine.Repack()
		}

	case feedMsg:
		m.feedErr = msg.err
		if msg.err == nil {
			m.engine.SetLabels(msg.labels)
		}

	case frameMsg:
		return m, frameTick()
	}
	return m, nil
}

func (m boardModel) View() string {
	if !m.started {
		return ""
	}

	var b strings.Builder
	pad := strings.Repeat(" ", m.padding)
	gap := strings.Repeat(" ", m.gap)

	for _, line := range m.renderer.snapshot() {
		b.WriteString(pad)
		first := true
		for _, box := range line {
			if !box.state.Visible {
				continue
			}
			if !first {
				b.WriteString(gap)
			}
			first = false
			b.WriteString(m.styleFor(box.state).Render(" " + box.label + " "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m boardModel) styleFor(s board.State) lipgloss.Style {
	switch {
	case s.FadingOut:
		return styleBoxFadeOut
	case s.FadingIn:
		return styleBoxFadeIn
	case s.Highlighted:
		return styleBoxHighlight
	default:
		return styleBox
	}
}

func (m boardModel) statusLine() string {
	anim := "on"
	if !m.store.Animations() {
		anim = "off"
	}
	status := "q quit · a animations: " + anim + " · r repack"
	if m.feedErr != nil {
		return StyleWarning.Render("feed error: "+m.feedErr.Error()) + "  " + StyleDim.Render(status)
	}
	return StyleDim.Render(status)
}
