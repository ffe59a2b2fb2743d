// Package watch re-triggers work when an input file changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/poolcalc/internal/core/ports/driven"
	"github.com/custodia-labs/poolcalc/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// DefaultDebounce is how long a file must stay quiet before a change is reported.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches single files using fsnotify.
type Watcher struct {
	debounce time.Duration
}

// New creates a watcher that coalesces bursts of writes within debounce.
// A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch starts watching path. The parent directory is watched so that
// editors which save by renaming a temporary file are still seen.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan string, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("watch %s: is a directory", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	out := make(chan string)
	go w.loop(ctx, fw, target, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, target string, out chan<- string) {
	defer close(out)
	defer fw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !changed(event, target) {
				continue
			}
			logger.Debug("File event: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case out <- target:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watching %s: %v", target, err)
		}
	}
}

// changed reports whether event is a content change of target.
func changed(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
