// Package measure computes the rendered width of skill labels.
//
// Widths are terminal cell counts, computed with go-runewidth so wide
// characters (CJK, emoji) count correctly. The board engine measures every
// label once per label set and treats the result as immutable, so the
// measurer caches aggressively.
package measure

import (
	"sync"

	"github.com/mattn/go-runewidth"
)

// Measurer reports the rendered width of a label under the active style.
type Measurer interface {
	// Width returns the total rendered cell width for text, including any
	// fixed per-box chrome (padding). Always >= 0.
	Width(text string) int
}

// Style describes the fixed chrome every rendered box adds around its text.
type Style struct {
	// PadLeft and PadRight are the cells of padding inside the box.
	PadLeft, PadRight int
}

// New creates a caching Measurer for the given box style.
func New(style Style) Measurer {
	return &cachingMeasurer{style: style, widths: make(map[string]int)}
}

type cachingMeasurer struct {
	mu     sync.RWMutex
	style  Style
	widths map[string]int
}

func (m *cachingMeasurer) Width(text string) int {
	m.mu.RLock()
	w, ok := m.widths[text]
	m.mu.RUnlock()
	if ok {
		return w
	}

	w = runewidth.StringWidth(text) + m.style.PadLeft + m.style.PadRight
	m.mu.Lock()
	m.widths[text] = w
	m.mu.Unlock()
	return w
}

// Fixed returns a Measurer that reports the same width for every label.
// Useful in tests where layout math should not depend on label content.
func Fixed(width int) Measurer {
	return fixedMeasurer(width)
}

type fixedMeasurer int

func (f fixedMeasurer) Width(string) int { return int(f) }
