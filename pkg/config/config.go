// Package config loads skillboard's TOML configuration file.
//
// Every field has a default, so an empty or missing file yields a working
// configuration; the file only has to name what it overrides.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/skillboard/skillboard/pkg/board"
	"github.com/skillboard/skillboard/pkg/errors"
)

// Duration is a time.Duration that decodes from TOML strings like "600ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML encoding.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Board configures the packing geometry.
type Board struct {
	Lines           int     `toml:"lines"`
	Gap             int     `toml:"gap"`
	Padding         int     `toml:"padding"`
	FillThreshold   float64 `toml:"fill_threshold"`
	MaxRun          int     `toml:"max_run"`
	ResizeThreshold int     `toml:"resize_threshold"`
}

// Timing configures the swap animation phases.
type Timing struct {
	Highlight    Duration `toml:"highlight"`
	FadeOut      Duration `toml:"fade_out"`
	FadeIn       Duration `toml:"fade_in"`
	SwapInterval Duration `toml:"swap_interval"`
}

// Config is the root configuration document.
type Config struct {
	// Feed is the default skill source, a file path or URL.
	Feed string `toml:"feed"`

	// Width overrides the container width; 0 means use the terminal width.
	Width int `toml:"width"`

	// CacheTTL bounds how long fetched feeds are reused.
	CacheTTL Duration `toml:"cache_ttl"`

	Board  Board  `toml:"board"`
	Timing Timing `toml:"timing"`
}

// Default returns the configuration used when no file overrides anything.
func Default() Config {
	b := board.DefaultConfig()
	return Config{
		CacheTTL: Duration{time.Hour},
		Board: Board{
			Lines:           b.Lines,
			Gap:             b.Gap,
			Padding:         b.Padding,
			FillThreshold:   b.FillThreshold,
			MaxRun:          b.MaxRun,
			ResizeThreshold: b.ResizeThreshold,
		},
		Timing: Timing{
			Highlight:    Duration{b.Highlight},
			FadeOut:      Duration{b.FadeOut},
			FadeIn:       Duration{b.FadeIn},
			SwapInterval: Duration{b.SwapInterval},
		},
	}
}

// DefaultPath returns the standard config file location,
// typically ~/.config/skillboard/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skillboard", "config.toml"), nil
}

// Load reads path over the defaults. A missing file is not an error; the
// defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.Board.Lines < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "board.lines must be at least 1, got %d", c.Board.Lines)
	}
	if c.Board.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "board.gap cannot be negative")
	}
	if c.Board.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "board.padding cannot be negative")
	}
	if c.Board.FillThreshold <= 0 || c.Board.FillThreshold > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "board.fill_threshold must be in (0, 1], got %g", c.Board.FillThreshold)
	}
	if c.Board.MaxRun < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "board.max_run must be at least 1, got %d", c.Board.MaxRun)
	}
	if c.Board.ResizeThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "board.resize_threshold cannot be negative")
	}
	if c.Width < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width cannot be negative")
	}
	for name, d := range map[string]time.Duration{
		"timing.highlight":     c.Timing.Highlight.Duration,
		"timing.fade_out":      c.Timing.FadeOut.Duration,
		"timing.fade_in":       c.Timing.FadeIn.Duration,
		"timing.swap_interval": c.Timing.SwapInterval.Duration,
	} {
		if d <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive", name)
		}
	}
	return nil
}

// BoardConfig converts the document into the engine's tuning struct.
func (c Config) BoardConfig() board.Config {
	return board.Config{
		Lines:            c.Board.Lines,
		Gap:              c.Board.Gap,
		Padding:          c.Board.Padding,
		FillThreshold:    c.Board.FillThreshold,
		MaxRun:           c.Board.MaxRun,
		CandidateRetries: board.DefaultCandidateRetries,
		AttemptFactor:    board.DefaultAttemptFactor,
		ResizeThreshold:  c.Board.ResizeThreshold,
		Highlight:        c.Timing.Highlight.Duration,
		FadeOut:          c.Timing.FadeOut.Duration,
		FadeIn:           c.Timing.FadeIn.Duration,
		SwapInterval:     c.Timing.SwapInterval.Duration,
	}
}
