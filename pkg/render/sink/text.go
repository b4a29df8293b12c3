package sink

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/skillboard/skillboard/pkg/render/layout"
)

// RenderText exports the layout as plain monospace text, one row per
// line, labels centered inside their measured widths.
func RenderText(l layout.Layout) []byte {
	var sb strings.Builder
	pad := strings.Repeat(" ", l.Padding)
	for _, line := range l.Lines {
		cells := newCellRow(line.Width)
		for _, box := range line.Boxes {
			cells.place(box.X, box.Width, box.Label)
		}
		sb.WriteString(pad)
		sb.Write(cells.bytes())
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// cellRow is a fixed-width row of character cells.
type cellRow struct {
	cells []rune
}

func newCellRow(width int) *cellRow {
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = ' '
	}
	return &cellRow{cells: cells}
}

// place centers label inside the box span, honoring wide runes.
func (r *cellRow) place(x, width int, label string) {
	textW := runewidth.StringWidth(label)
	offset := x + (width-textW)/2
	col := offset
	for _, ch := range label {
		if col >= len(r.cells) {
			break
		}
		r.cells[col] = ch
		w := runewidth.RuneWidth(ch)
		// A wide rune occupies its cell plus the next; blank the spill
		// cell so it does not render a stray space character.
		for k := 1; k < w && col+k < len(r.cells); k++ {
			r.cells[col+k] = 0
		}
		col += w
	}
}

func (r *cellRow) bytes() []byte {
	var sb strings.Builder
	for _, c := range r.cells {
		if c == 0 {
			continue
		}
		sb.WriteRune(c)
	}
	return []byte(sb.String())
}
