package board

// Label is a displayable skill token with its measured width.
// Width is in rendered cells and is cached for the session; it only
// changes if the label set is re-measured after a significant resize.
type Label struct {
	Text  string
	Width int
}

// Measurer reports the rendered width of a label under the active style.
// pkg/measure provides the production implementation.
type Measurer interface {
	Width(text string) int
}

// MeasureLabels measures every text once and returns the label pool.
// Duplicate texts are dropped (first occurrence wins) so the pool is a set.
func MeasureLabels(texts []string, m Measurer) []Label {
	seen := make(map[string]bool, len(texts))
	pool := make([]Label, 0, len(texts))
	for _, t := range texts {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		pool = append(pool, Label{Text: t, Width: m.Width(t)})
	}
	return pool
}

// totalWidth returns the rendered width of a label sequence: the sum of
// label widths plus one gap between each adjacent pair.
func totalWidth(labels []Label, gap int) int {
	if len(labels) == 0 {
		return 0
	}
	w := gap * (len(labels) - 1)
	for _, l := range labels {
		w += l.Width
	}
	return w
}
