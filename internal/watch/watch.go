// Package watch re-imports a roster file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 500 * time.Millisecond

// ImportFunc imports the roster at path. core.Service.ImportMembers fits.
type ImportFunc func(ctx context.Context, path string) (core.ImportSummary, error)

// ResultFunc receives the outcome of each triggered import.
type ResultFunc func(summary core.ImportSummary, err error)

// Watcher watches a single roster file. Editors often replace files by
// renaming, so the parent directory is watched and events are filtered by
// name.
type Watcher struct {
	path     string
	debounce time.Duration
	importFn ImportFunc
	onResult ResultFunc
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithResult sets a callback run after every import.
func WithResult(fn ResultFunc) Option {
	return func(w *Watcher) { w.onResult = fn }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// New starts watching path. Changes are picked up from the moment New
// returns; call Run to process them and Close when done.
func New(path string, debounce time.Duration, importFn ImportFunc, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		importFn: importFn,
		watcher:  fw,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run processes file events until ctx is done. Bursts of events within the
// debounce window trigger a single import.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	w.logger.Info("watching roster", "path", w.path, "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "path", w.path, "error", err)

		case <-timer.C:
			w.trigger(ctx)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watcher) trigger(ctx context.Context) {
	summary, err := w.importFn(ctx, w.path)
	if err != nil {
		w.logger.Warn("re-import failed", "path", w.path, "error", err)
	} else {
		w.logger.Info("roster re-imported",
			"path", w.path,
			"run_id", summary.RunID,
			"added", summary.Added,
			"duplicates", summary.Duplicates,
			"rejected_lines", summary.Rejected,
		)
	}

	if w.onResult != nil {
		w.onResult(summary, err)
	}
}
