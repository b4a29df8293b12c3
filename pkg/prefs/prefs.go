// Package prefs persists user preferences for the live board, most
// importantly whether swap animations run. The store watches its backing
// file, so toggling the preference in one process is picked up by a board
// already running in another.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/skillboard/skillboard/pkg/errors"
)

// Prefs is the on-disk preference document.
type Prefs struct {
	Animations bool `json:"animations"`
}

// defaults returns the preferences used when no file exists yet.
func defaults() Prefs {
	return Prefs{Animations: true}
}

// DefaultPath returns the standard preference file location,
// typically ~/.config/skillboard/prefs.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skillboard", "prefs.json"), nil
}

// Store is a file-backed preference store. Reads and writes are safe for
// concurrent use.
type Store struct {
	mu   sync.RWMutex
	path string
	p    Prefs

	fs   *fsnotify.Watcher
	done chan struct{}
}

// Open loads preferences from path, falling back to defaults when the file
// does not exist. A corrupt file is an error; silently resetting
// preferences would surprise the user.
func Open(path string) (*Store, error) {
	s := &Store{path: path, p: defaults()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read prefs %s", path)
	}
	if err := json.Unmarshal(data, &s.p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse prefs %s", path)
	}
	return s, nil
}

// Animations reports whether swap animations are enabled.
func (s *Store) Animations() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Animations
}

// SetAnimations updates the preference and persists it.
func (s *Store) SetAnimations(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Animations = enabled
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, append(data, '\n'), 0644)
}

// reload re-reads the file after an external change. Unreadable or corrupt
// content is ignored; the in-memory state stays as it was.
func (s *Store) reload() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

// Watch starts watching the backing file for external edits. onChange, if
// not nil, runs after every applied reload. Close stops the watcher.
func (s *Store) Watch(onChange func(Prefs)) error {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		fs.Close()
		return err
	}
	if err := fs.Add(filepath.Dir(s.path)); err != nil {
		fs.Close()
		return err
	}

	s.fs = fs
	s.done = make(chan struct{})
	go s.loop(onChange)
	return nil
}

func (s *Store) loop(onChange func(Prefs)) {
	defer close(s.done)
	abs, _ := filepath.Abs(s.path)
	for {
		select {
		case ev, ok := <-s.fs.Events:
			if !ok {
				return
			}
			evAbs, _ := filepath.Abs(ev.Name)
			if evAbs != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			s.reload()
			if onChange != nil {
				s.mu.RLock()
				p := s.p
				s.mu.RUnlock()
				onChange(p)
			}
		case _, ok := <-s.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher if one is running.
func (s *Store) Close() error {
	if s.fs == nil {
		return nil
	}
	err := s.fs.Close()
	<-s.done
	return err
}
