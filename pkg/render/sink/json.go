package sink

import (
	"encoding/json"

	"github.com/skillboard/skillboard/pkg/errors"
	"github.com/skillboard/skillboard/pkg/render/layout"
)

// documentVersion guards the snapshot format; bump on breaking changes.
const documentVersion = 1

// Document is the JSON snapshot of a packed board. Snapshots round-trip:
// a parsed document reproduces the layout it was rendered from.
type Document struct {
	Version int       `json:"version"`
	Seed    int64     `json:"seed,omitempty"`
	Budget  int       `json:"budget"`
	Gap     int       `json:"gap"`
	Padding int       `json:"padding"`
	Lines   []DocLine `json:"lines"`
}

// DocLine is one row of the snapshot.
type DocLine struct {
	Width int      `json:"width"`
	Boxes []DocBox `json:"boxes"`
}

// DocBox is one positioned label.
type DocBox struct {
	Label string `json:"label"`
	X     int    `json:"x"`
	Width int    `json:"width"`
}

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*Document)

// WithSeed records the packing seed so the snapshot can be reproduced.
func WithSeed(seed int64) JSONOption { return func(d *Document) { d.Seed = seed } }

// RenderJSON exports the layout as a pretty-printed JSON snapshot.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	doc := Document{
		Version: documentVersion,
		Budget:  l.Budget,
		Gap:     l.Gap,
		Padding: l.Padding,
		Lines:   make([]DocLine, len(l.Lines)),
	}
	for _, opt := range opts {
		opt(&doc)
	}
	for i, line := range l.Lines {
		dl := DocLine{Width: line.Width, Boxes: make([]DocBox, len(line.Boxes))}
		for j, b := range line.Boxes {
			dl.Boxes[j] = DocBox{Label: b.Label, X: b.X, Width: b.Width}
		}
		doc.Lines[i] = dl
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ParseJSON reads a snapshot back into a layout.
func ParseJSON(data []byte) (layout.Layout, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return layout.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse board snapshot")
	}
	if doc.Version != documentVersion {
		return layout.Layout{}, errors.New(errors.ErrCodeUnsupported, "snapshot version %d not supported", doc.Version)
	}

	l := layout.Layout{
		Budget:  doc.Budget,
		Gap:     doc.Gap,
		Padding: doc.Padding,
		Lines:   make([]layout.Line, len(doc.Lines)),
	}
	for i, dl := range doc.Lines {
		line := layout.Line{Width: dl.Width, Boxes: make([]layout.Box, len(dl.Boxes))}
		for j, b := range dl.Boxes {
			line.Boxes[j] = layout.Box{Label: b.Label, X: b.X, Width: b.Width}
		}
		l.Lines[i] = line
	}
	return l, nil
}
