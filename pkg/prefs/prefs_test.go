package prefs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skillboard/skillboard/pkg/errors"
)

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !s.Animations() {
		t.Error("animations should default to enabled")
	}
}

func TestSetAnimationsPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SetAnimations(false); err != nil {
		t.Fatalf("SetAnimations: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Animations() {
		t.Error("disabled animations should survive a reopen")
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Open(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestWatchAppliesExternalEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	changed := make(chan Prefs, 4)
	if err := s.Watch(func(p Prefs) { changed <- p }); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer s.Close()

	// Simulate another process toggling the preference.
	if err := os.WriteFile(path, []byte(`{"animations": false}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case p := <-changed:
		if p.Animations {
			t.Error("external edit not applied")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch callback")
	}
	if s.Animations() {
		t.Error("store should reflect the external edit")
	}
}

func TestWatchIgnoresCorruptEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SetAnimations(false); err != nil {
		t.Fatalf("SetAnimations: %v", err)
	}

	if err := s.Watch(nil); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer s.Close()

	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	time.Sleep(300 * time.Millisecond)

	if s.Animations() {
		t.Error("corrupt edit should leave the previous state intact")
	}
}
