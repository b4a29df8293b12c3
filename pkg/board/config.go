package board

import "time"

// Tuning defaults. The fill threshold and search bounds come from the
// original visual design and should not be "improved": under-filled lines
// are part of the look.
const (
	DefaultLines            = 4
	DefaultFillThreshold    = 0.8
	DefaultMaxRun           = 3
	DefaultCandidateRetries = 5
	DefaultAttemptFactor    = 3

	DefaultGap             = 2
	DefaultPadding         = 1
	DefaultResizeThreshold = 8

	DefaultHighlight    = 600 * time.Millisecond
	DefaultFadeOut      = 400 * time.Millisecond
	DefaultFadeIn       = 900 * time.Millisecond
	DefaultSwapInterval = 1200 * time.Millisecond
)

// Config holds the engine's tuning parameters.
type Config struct {
	// Lines is the number of fixed horizontal rows.
	Lines int

	// Gap is the rendered space between adjacent boxes on a line.
	Gap int

	// Padding is subtracted from each side of the container width when
	// computing the shared line width budget.
	Padding int

	// FillThreshold is the accumulated-width fraction of the budget at or
	// above which a single failed placement terminates a line fill.
	FillThreshold float64

	// MaxRun bounds the length of the contiguous run a swap may replace.
	MaxRun int

	// CandidateRetries is how many times one scheduler tick retries the
	// candidate search before giving up for that tick.
	CandidateRetries int

	// AttemptFactor bounds total draws per fill at AttemptFactor x pool size.
	AttemptFactor int

	// ResizeThreshold is the width change, in cells, below which a resize
	// is ignored. Larger changes trigger a full repack.
	ResizeThreshold int

	// Animation phase durations and the swap scheduler interval. The
	// interval is deliberately shorter than a full phase sequence so
	// multiple lines animate at once.
	Highlight    time.Duration
	FadeOut      time.Duration
	FadeIn       time.Duration
	SwapInterval time.Duration
}

// DefaultConfig returns the standard board tuning.
func DefaultConfig() Config {
	return Config{
		Lines:            DefaultLines,
		Gap:              DefaultGap,
		Padding:          DefaultPadding,
		FillThreshold:    DefaultFillThreshold,
		MaxRun:           DefaultMaxRun,
		CandidateRetries: DefaultCandidateRetries,
		AttemptFactor:    DefaultAttemptFactor,
		ResizeThreshold:  DefaultResizeThreshold,
		Highlight:        DefaultHighlight,
		FadeOut:          DefaultFadeOut,
		FadeIn:           DefaultFadeIn,
		SwapInterval:     DefaultSwapInterval,
	}
}

// withDefaults fills unset counts, ratios, and durations. Gap, Padding, and
// ResizeThreshold keep their zero values: zero is meaningful for all three.
func (c Config) withDefaults() Config {
	if c.Lines <= 0 {
		c.Lines = DefaultLines
	}
	if c.FillThreshold <= 0 {
		c.FillThreshold = DefaultFillThreshold
	}
	if c.MaxRun <= 0 {
		c.MaxRun = DefaultMaxRun
	}
	if c.CandidateRetries <= 0 {
		c.CandidateRetries = DefaultCandidateRetries
	}
	if c.AttemptFactor <= 0 {
		c.AttemptFactor = DefaultAttemptFactor
	}
	if c.Highlight <= 0 {
		c.Highlight = DefaultHighlight
	}
	if c.FadeOut <= 0 {
		c.FadeOut = DefaultFadeOut
	}
	if c.FadeIn <= 0 {
		c.FadeIn = DefaultFadeIn
	}
	if c.SwapInterval <= 0 {
		c.SwapInterval = DefaultSwapInterval
	}
	return c
}
