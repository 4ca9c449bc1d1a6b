package lint

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-lints paths when Go files under them change. Change
// events are debounced so editor save storms trigger a single run.
type Watcher struct {
	runner   *Runner
	paths    []string
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	running bool
}

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// Paths are the files or directories to watch and re-lint.
	Paths []string

	// Debounce is the quiet period after the last change before a
	// re-lint triggers. Default 250ms.
	Debounce time.Duration

	// Logger receives watcher lifecycle logs.
	Logger *slog.Logger
}

// NewWatcher creates a watcher over the runner.
func NewWatcher(runner *Runner, cfg WatcherConfig) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, fmt.Errorf("watcher requires at least one path")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 250 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Watcher{
		runner:   runner,
		paths:    cfg.Paths,
		logger:   cfg.Logger,
		debounce: cfg.Debounce,
	}, nil
}

// Watch blocks, re-linting on changes until the context is cancelled.
// onResult is invoked after every lint run, including the initial one.
func (w *Watcher) Watch(ctx context.Context, onResult func(*Result)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	for _, p := range w.paths {
		if err := addRecursive(fsw, strings.TrimSuffix(p, "...")); err != nil {
			return fmt.Errorf("watching %q: %w", p, err)
		}
	}

	w.logger.Info("watch mode started", "paths", w.paths, "debounce", w.debounce)

	// Initial run so the user sees the current state immediately.
	if err := w.runOnce(ctx, onResult); err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch mode stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if !relevantEvent(event) {
				continue
			}
			// New directories must be added to the watch set.
			if event.Op.Has(fsnotify.Create) {
				_ = addRecursive(fsw, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			w.logger.Warn("watch error", "error", err)

		case <-timerC:
			timerC = nil
			if err := w.runOnce(ctx, onResult); err != nil {
				return err
			}
		}
	}
}

// runOnce lints the watched paths once and hands the result to the
// callback.
func (w *Watcher) runOnce(ctx context.Context, onResult func(*Result)) error {
	result, err := w.runner.LintPaths(ctx, w.paths)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if onResult != nil {
		onResult(result)
	}
	return nil
}

// relevantEvent filters events down to Go source changes.
func relevantEvent(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}
	if event.Op.Has(fsnotify.Create) {
		// Could be a new directory; let the caller re-add it.
		return true
	}
	return strings.HasSuffix(event.Name, ".go")
}

// addRecursive watches path and all non-skipped subdirectories.
func addRecursive(fsw *fsnotify.Watcher, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	return filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Tolerate races with deleted files.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(d.Name(), path != abs) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
