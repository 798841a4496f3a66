// Package watch re-runs a build whenever Kotlin sources change. Events are
// debounced so editor save bursts trigger one rebuild.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors source directories and invokes a rebuild callback.
type Watcher struct {
	dirs         []string
	rebuild      func(ctx context.Context) error
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
}

// NewWatcher creates a watcher over the given source directories.
func NewWatcher(dirs []string, rebuild func(ctx context.Context) error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		dirs:         dirs,
		rebuild:      rebuild,
		watcher:      fsw,
		debounceTime: 500 * time.Millisecond,
	}, nil
}

// Run watches until the context is canceled. Each batch of changes triggers
// one rebuild; rebuild failures are logged, not fatal, so the loop keeps
// serving subsequent edits.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for _, dir := range w.dirs {
		if err := w.addRecursive(dir); err != nil {
			return err
		}
	}
	slog.Info("Watching for source changes", "dirs", w.dirs)

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			// New directories must be added to the watch set.
			if event.Op.Has(fsnotify.Create) {
				_ = w.addRecursive(event.Name)
			}
			slog.Debug("Source change detected", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounceTime, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", "error", err)
		case <-pending:
			slog.Info("Rebuilding after source change")
			if err := w.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", "error", err)
			}
		}
	}
}

// addRecursive watches dir and every subdirectory beneath it. Missing
// directories are ignored; they may appear later.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				slog.Warn("Failed to watch directory", "dir", path, "error", err)
			}
		}
		return nil
	})
}

// relevant filters events down to Kotlin source mutations and new directories.
func relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}
	if strings.HasSuffix(event.Name, ".kt") || strings.HasSuffix(event.Name, ".kts") {
		return true
	}
	// Directory creates carry no extension; include them for re-watching.
	return event.Op.Has(fsnotify.Create) && filepath.Ext(event.Name) == ""
}
