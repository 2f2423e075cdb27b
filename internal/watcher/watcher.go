// Package watcher reports changes to the SQLite database made by other
// processes, so a running Home screen can reload.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of writes a single SQLite commit
// produces on the main file and its WAL.
const DefaultDebounce = 200 * time.Millisecond

const meaningfulOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher calls callback at most once per debounce window after the
// database file, its -wal or its -journal changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	callback func()
	names    map[string]struct{}
	debounce time.Duration
}

// New watches the directory holding dbPath. Watching the directory rather
// than the file keeps working when SQLite recreates the WAL.
func New(dbPath string, callback func()) (*Watcher, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		fsw:      fsw,
		callback: callback,
		names:    watchedNames(abs),
		debounce: DefaultDebounce,
	}, nil
}

func watchedNames(abs string) map[string]struct{} {
	return map[string]struct{}{
		abs:              {},
		abs + "-wal":     {},
		abs + "-journal": {},
	}
}

// SetDebounce changes the debounce window. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is done or the watcher is closed. errFn, if not
// nil, receives errors from fsnotify; they do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&meaningfulOps == 0 || !w.matches(ev.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if ctx.Err() == nil {
					w.callback()
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	_, ok := w.names[abs]
	return ok
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
