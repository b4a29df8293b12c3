package board

// ElementID is an opaque handle for a rendered box. IDs are allocated by
// the engine and never reused within a session.
type ElementID int

// NoElement is the zero ElementID. Passing it as the "before" argument of
// [Renderer.Create] appends to the end of the line.
const NoElement ElementID = 0

// State is the visual state of a rendered box. A newly created box starts
// with the zero State (hidden).
type State struct {
	Visible     bool
	Highlighted bool
	FadingOut   bool
	FadingIn    bool
}

// Renderer applies the engine's render instructions to the screen. The
// renderer owns the actual visuals; the engine only knows element handles.
//
// Calls may arrive from timer goroutines. Implementations must be safe for
// concurrent use with their own read paths.
type Renderer interface {
	// Create makes a hidden box for label on the given line, placed before
	// the element identified by before, or at the end of the line when
	// before is NoElement.
	Create(line int, id ElementID, label Label, before ElementID)

	// SetState replaces the box's visual state.
	SetState(id ElementID, state State)

	// Remove deletes the box.
	Remove(id ElementID)
}
