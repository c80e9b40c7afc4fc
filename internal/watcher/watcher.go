// Package watcher provides file system watching with debouncing for the
// open file.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event describes what happened to the watched file.
type Event int

const (
	// Changed means the file was rewritten on disk.
	Changed Event = iota
	// Removed means the file no longer exists.
	Removed
)

func (e Event) String() string {
	if e == Removed {
		return "removed"
	}
	return "changed"
}

// Watcher monitors a single file for changes made outside the editor.
// A burst of events debounces into one notification; whether it reads as
// Changed or Removed is decided by the file's existence once the burst
// settles, so an atomic save (write temp, rename over) is one change
// rather than a removal followed by a creation.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	events    chan Event
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Path        string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for watching path.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		DebounceDur: 250 * time.Millisecond,
	}
}

// New creates a watcher for the file named in cfg.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      cfg.Path,
		debounce:  cfg.DebounceDur,
		events:    make(chan Event, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching and returns the channel notifications arrive on.
// The parent directory is watched rather than the file itself so the watch
// survives rename-over saves.
func (w *Watcher) Start() (<-chan Event, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	return w.events, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !w.isRelevantEvent(event) {
				continue
			}

			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = true
			} else {
				if !timer.Stop() {
					// Drain the timer channel if it already fired
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
				pending = true
			}

		case <-timerC(timer):
			if pending {
				kind := Changed
				if _, err := os.Stat(w.path); err != nil {
					kind = Removed
				}
				// Non-blocking send - drop if channel full
				select {
				case w.events <- kind:
				default:
				}
				pending = false
			}

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Keep watching. Callers that need error visibility can wrap
			// the watcher; reload failures surface at the editor anyway.

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// timerC returns the timer's channel, or nil (blocks forever) before the
// first relevant event arms it.
func timerC(t *time.Timer) <-chan time.Time {
	if t != nil {
		return t.C
	}
	return nil
}

// isRelevantEvent reports whether the event touches the watched file.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Base(event.Name) == filepath.Base(w.path)
}
