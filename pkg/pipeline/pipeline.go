// Package pipeline runs the load → measure → pack → render sequence that
// turns a skill feed into board artifacts.
//
// The CLI export and pack commands and the live board all go through this
// package, so feed handling, measurement, and caching behave the same
// everywhere.
//
//	runner := pipeline.NewRunner(cache, nil, logger, 0)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "skills.json",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/skillboard/skillboard/pkg/board"
	"github.com/skillboard/skillboard/pkg/errors"
	"github.com/skillboard/skillboard/pkg/render/layout"
)

// Defaults shared by every entry point.
const (
	// DefaultWidth is the container width used when none is given.
	DefaultWidth = 80

	// DefaultSeed seeds the packing RNG for reproducible exports.
	DefaultSeed = int64(42)

	// DefaultFeedTTL bounds feed caching when no TTL is configured.
	DefaultFeedTTL = time.Hour
)

// Output format names.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatText = "text"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatText: true,
}

// ValidateFormats checks that every requested format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
		}
	}
	return nil
}

// Options controls a pipeline run.
type Options struct {
	// Source is the feed location, a file path or HTTP URL.
	Source string

	// Width is the container width in cells. 0 means DefaultWidth.
	Width int

	// Seed seeds the packing RNG. 0 means DefaultSeed; pass a negative
	// seed to randomize from the clock.
	Seed int64

	// Formats lists the artifacts to render.
	Formats []string

	// Board overrides the packing tuning. The zero value means defaults.
	Board board.Config

	// Refresh bypasses the feed and artifact caches.
	Refresh bool

	// Title and Dark style the SVG artifact.
	Title string
	Dark  bool

	// MeasurePadLeft and MeasurePadRight are the per-box label padding
	// used during measurement.
	MeasurePadLeft  int
	MeasurePadRight int
}

// ValidateAndSetDefaults checks the options and fills unset fields.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidSource, "no feed source given")
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidWidth, "width cannot be negative")
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Seed < 0 {
		o.Seed = time.Now().UnixNano()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.MeasurePadLeft == 0 && o.MeasurePadRight == 0 {
		o.MeasurePadLeft, o.MeasurePadRight = 1, 1
	}
	if o.Board.Lines == 0 {
		o.Board = board.DefaultConfig()
	}
	return nil
}

// Stats records per-stage timings.
type Stats struct {
	LoadTime   time.Duration
	PackTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	RenderHit bool
}

// Result is the output of a pipeline run.
type Result struct {
	// Labels is the validated feed, Pool the measured label set.
	Labels []string
	Pool   []board.Label

	// PoolHash identifies the measured pool; artifact cache keys derive
	// from it.
	PoolHash string

	// Layout is the packed, positioned board.
	Layout layout.Layout

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}
