package feed

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-reads a local feed file whenever it changes on disk and hands
// the result to a callback. Used by the live board to pick up edits
// without a restart.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// debounceDelay coalesces the write bursts editors produce when saving.
const debounceDelay = 100 * time.Millisecond

// Watch starts watching path. onChange receives the reparsed labels, or
// the parse error, after every change. Callbacks run on the watcher's
// goroutine. Close the watcher to stop.
func Watch(path string, onChange func(labels []string, err error)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: editors commonly save by
	// writing a temp file and renaming over the original, which drops
	// a direct file watch.
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{fs: fs, done: make(chan struct{})}
	go w.loop(path, onChange)
	return w, nil
}

// Close stops the watcher. No callbacks run after Close returns.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) loop(path string, onChange func([]string, error)) {
	defer close(w.done)

	abs, _ := filepath.Abs(path)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	var pending <-chan time.Time
	for {
		select {
		case ev, ok := <-w.fs.Events:
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
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				debounce.Stop()
				debounce.Reset(debounceDelay)
			}
			pending = debounce.C
		case <-pending:
			pending = nil
			onChange(LoadFile(path))
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}
