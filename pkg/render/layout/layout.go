// Package layout computes box positions for a packed board.
package layout

import (
	"github.com/skillboard/skillboard/pkg/board"
)

// Box is a positioned label. X is the cell offset from the left edge of
// the padded content area.
type Box struct {
	Label string
	X     int
	Width int
}

// Line is one horizontal row of boxes.
type Line struct {
	Boxes []Box
	// Width is the used width of the line, including inter-box gaps.
	Width int
}

// Layout is a fully positioned board.
type Layout struct {
	Lines   []Line
	Budget  int
	Gap     int
	Padding int
}

// Compute positions every label in lines. Each line starts at x=0 and
// boxes advance by their width plus one gap.
func Compute(lines [][]board.Label, budget, gap, padding int) Layout {
	l := Layout{
		Lines:   make([]Line, len(lines)),
		Budget:  budget,
		Gap:     gap,
		Padding: padding,
	}
	for i, labels := range lines {
		boxes := make([]Box, 0, len(labels))
		x := 0
		for _, lb := range labels {
			boxes = append(boxes, Box{Label: lb.Text, X: x, Width: lb.Width})
			x += lb.Width + gap
		}
		width := 0
		if len(boxes) > 0 {
			last := boxes[len(boxes)-1]
			width = last.X + last.Width
		}
		l.Lines[i] = Line{Boxes: boxes, Width: width}
	}
	return l
}

// Fill returns the fraction of the budget used by line i.
func (l Layout) Fill(i int) float64 {
	if l.Budget <= 0 {
		return 0
	}
	return float64(l.Lines[i].Width) / float64(l.Budget)
}

// BoxCount returns the total number of boxes across all lines.
func (l Layout) BoxCount() int {
	n := 0
	for _, line := range l.Lines {
		n += len(line.Boxes)
	}
	return n
}
