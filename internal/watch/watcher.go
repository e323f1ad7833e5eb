// Package watch reruns generation when the event table or the taxonomy
// file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups bursts of writes from editors and sync tools.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a set of files. Changes to any of them within the
// debounce window produce a single OnChange call listing every file touched.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	mu       sync.RWMutex
	debounce time.Duration

	// OnChange runs on the Run goroutine, so calls never overlap.
	OnChange func(ctx context.Context, paths []string) error
	OnError  func(path string, err error)
}

// NewWatcher creates a watcher. A non-positive debounce means
// DefaultDebounce.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:  fsWatcher,
		files:    make(map[string]struct{}),
		debounce: debounce,
	}, nil
}

// Watch adds path to the watched set. The containing directory is watched
// so that editors replacing the file by rename are still seen.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	w.mu.Lock()
	w.files[absPath] = struct{}{}
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	return nil
}

// Run starts the watch loop. It blocks until ctx is cancelled or the
// watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			absPath, err := filepath.Abs(event.Name)
			if err != nil || !w.watched(absPath) {
				continue
			}

			pending[absPath] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}

			clear(pending)

			if w.OnChange == nil {
				continue
			}

			if err := w.OnChange(ctx, paths); err != nil && !errors.Is(err, context.Canceled) {
				w.reportError("", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			w.reportError("", err)
		}
	}
}

func (w *Watcher) watched(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, ok := w.files[path]

	return ok
}

func (w *Watcher) reportError(path string, err error) {
	if w.OnError != nil {
		w.OnError(path, err)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
