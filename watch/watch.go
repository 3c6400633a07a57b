// Package watch rebuilds a geometry model whenever its document changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/GoCodeAlone/femglue"
	"github.com/GoCodeAlone/femglue/model"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the rebuilt model, or the error that prevented building it.
type Handler func(*model.Model, error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger. Defaults to femglue.GetLogger().
func WithLogger(l femglue.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithPrepare registers a hook that runs on the path before every load, e.g.
// to apply a configuration section stored in the document.
func WithPrepare(fn func(path string) error) Option {
	return func(w *Watcher) { w.prepare = fn }
}

// Watcher watches a single document. The parent directory is watched so that
// editors replacing the file through a rename are still noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
	logger   femglue.Logger
	prepare  func(string) error

	fsWatcher *fsnotify.Watcher

	timerMu sync.Mutex
	timer   *time.Timer

	reloadMu sync.Mutex
	stopped  bool
}

// New creates a watcher for the document at path.
func New(path string, handler Handler, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		handler:  handler,
		logger:   femglue.GetLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	w.fsWatcher = fsWatcher
	return w, nil
}

// Path returns the absolute path of the watched document.
func (w *Watcher) Path() string { return w.path }

// Run loads the document once, then reloads it after every change until ctx
// is done. The handler is not called after Run returns; a reload in progress
// at that point is waited for.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	w.logger.Info("Watching geometry document", "path", w.path)
	w.reload()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Document event", "path", event.Name, "op", event.Op.String())
			w.schedule()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) stop() {
	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMu.Unlock()

	w.reloadMu.Lock()
	w.stopped = true
	w.reloadMu.Unlock()

	_ = w.fsWatcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) schedule() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()
	if w.stopped {
		return
	}

	m, err := w.load()
	if err != nil {
		w.logger.Warn("Failed to rebuild geometry", "path", w.path, "error", err)
	} else {
		w.logger.Info("Rebuilt geometry", "path", w.path,
			"lines", len(m.Lines), "polylines", len(m.Polylines), "polygons", len(m.Polygons))
	}
	w.handler(m, err)
}

func (w *Watcher) load() (*model.Model, error) {
	if w.prepare != nil {
		if err := w.prepare(w.path); err != nil {
			return nil, err
		}
	}
	doc, err := model.Load(w.path)
	if err != nil {
		return nil, err
	}
	return model.Build(doc)
}
