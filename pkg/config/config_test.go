package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skillboard/skillboard/pkg/board"
	"github.com/skillboard/skillboard/pkg/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Board.Lines != board.DefaultLines {
		t.Errorf("lines = %d, want %d", cfg.Board.Lines, board.DefaultLines)
	}
	if cfg.Timing.SwapInterval.Duration != board.DefaultSwapInterval {
		t.Errorf("swap_interval = %v, want %v", cfg.Timing.SwapInterval.Duration, board.DefaultSwapInterval)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
feed = "skills.json"
width = 100

[board]
lines = 6
gap = 3

[timing]
swap_interval = "2s"
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Feed != "skills.json" || cfg.Width != 100 {
		t.Errorf("top-level fields not applied: %+v", cfg)
	}
	if cfg.Board.Lines != 6 || cfg.Board.Gap != 3 {
		t.Errorf("board overrides not applied: %+v", cfg.Board)
	}
	if cfg.Timing.SwapInterval.Duration != 2*time.Second {
		t.Errorf("swap_interval = %v, want 2s", cfg.Timing.SwapInterval.Duration)
	}
	// Untouched fields keep their defaults.
	if cfg.Board.FillThreshold != board.DefaultFillThreshold {
		t.Errorf("fill_threshold = %g, want default", cfg.Board.FillThreshold)
	}
	if cfg.Timing.Highlight.Duration != board.DefaultHighlight {
		t.Errorf("highlight = %v, want default", cfg.Timing.Highlight.Duration)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"broken toml", `feed = `},
		{"zero lines", "[board]\nlines = 0\n"},
		{"negative gap", "[board]\ngap = -1\n"},
		{"threshold above one", "[board]\nfill_threshold = 1.5\n"},
		{"zero duration", "[timing]\nhighlight = \"0s\"\n"},
		{"bad duration", "[timing]\nfade_in = \"fast\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.doc), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestBoardConfigMapping(t *testing.T) {
	cfg := Default()
	cfg.Board.Lines = 2
	cfg.Board.Gap = 5
	cfg.Timing.FadeIn = Duration{time.Second}

	bc := cfg.BoardConfig()
	if bc.Lines != 2 || bc.Gap != 5 || bc.FadeIn != time.Second {
		t.Errorf("mapping wrong: %+v", bc)
	}
	if bc.CandidateRetries != board.DefaultCandidateRetries {
		t.Errorf("candidate retries should stay at the default")
	}
}
