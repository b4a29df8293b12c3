package sink

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/skillboard/skillboard/pkg/render/layout"
)

// Pixel geometry for the SVG export. Cell-based coordinates from the
// layout are scaled so the export matches the terminal proportions.
const (
	svgCellW  = 9
	svgBoxH   = 32
	svgRowGap = 14
	svgMargin = 16
	svgRadius = 6
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title string
	dark  bool
}

// WithTitle draws a heading above the board.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithDark switches to the dark color scheme.
func WithDark() SVGOption { return func(r *svgRenderer) { r.dark = true } }

// RenderSVG exports the layout as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	bg, boxFill, boxStroke, textFill := "#ffffff", "#f2f4f8", "#c5ccd6", "#1a1f27"
	if r.dark {
		bg, boxFill, boxStroke, textFill = "#12151b", "#1e2530", "#3a4656", "#e6ebf2"
	}

	titleH := 0
	if r.title != "" {
		titleH = svgBoxH + svgRowGap
	}
	width := l.Budget*svgCellW + 2*(svgMargin+l.Padding*svgCellW)
	height := len(l.Lines)*(svgBoxH+svgRowGap) - svgRowGap + 2*svgMargin + titleH

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf(`fill="%s"`, bg))

	if r.title != "" {
		canvas.Text(width/2, svgMargin+svgBoxH/2+6, r.title,
			fmt.Sprintf(`text-anchor="middle" font-family="monospace" font-size="20" font-weight="bold" fill="%s"`, textFill))
	}

	left := svgMargin + l.Padding*svgCellW
	for i, line := range l.Lines {
		y := svgMargin + titleH + i*(svgBoxH+svgRowGap)
		for _, box := range line.Boxes {
			x := left + box.X*svgCellW
			w := box.Width * svgCellW
			canvas.Roundrect(x, y, w, svgBoxH, svgRadius, svgRadius,
				fmt.Sprintf(`fill="%s" stroke="%s"`, boxFill, boxStroke))
			canvas.Text(x+w/2, y+svgBoxH/2+5, box.Label,
				fmt.Sprintf(`text-anchor="middle" font-family="monospace" font-size="14" fill="%s"`, textFill))
		}
	}

	canvas.End()
	return buf.Bytes()
}
