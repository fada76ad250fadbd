// Package watch re-runs a handler when input files change.
//
// Events are debounced and the changed paths are queued in arrival order,
// so an editor writing a file several times triggers one run. The handler
// always runs on the goroutine that called Run.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/eapache/queue"
	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/diagctx/pkg/log"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 100 * time.Millisecond

// Config holds watcher options.
type Config struct {
	// Debounce is the quiet period after the last change before the
	// handler runs. Default: 100 milliseconds
	Debounce time.Duration

	// Logger receives watcher diagnostics. Default: no-op
	Logger log.Logger
}

// Watcher watches a fixed set of files.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	logger   log.Logger
	handle   func(path string)

	pending *queue.Queue
	queued  map[string]bool
}

// New creates a watcher for paths. handle is called once per changed path
// after each debounce period.
func New(paths []string, handle func(path string), cfg Config) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("watch: no paths")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNoopLogger()
	}

	w := &Watcher{
		files:    make(map[string]bool, len(paths)),
		debounce: cfg.Debounce,
		logger:   cfg.Logger,
		handle:   handle,
		pending:  queue.New(),
		queued:   make(map[string]bool),
	}

	seenDir := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %s: %w", p, err)
		}
		w.files[abs] = true
		// Watch the directory: editors often replace files instead of
		// writing them in place.
		dir := filepath.Dir(abs)
		if !seenDir[dir] {
			seenDir[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Run blocks until ctx is canceled or the underlying watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch: add %s: %w", dir, err)
		}
	}
	w.logger.Info("watching inputs", log.Int("files", len(w.files)))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			path, ok := w.match(event)
			if !ok {
				continue
			}
			w.enqueue(path)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))

		case <-timer.C:
			w.flush()
		}
	}
}

// match reports whether event is a write to one of the watched files.
func (w *Watcher) match(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return "", false
	}
	path := filepath.Clean(event.Name)
	return path, w.files[path]
}

func (w *Watcher) enqueue(path string) {
	if w.queued[path] {
		return
	}
	w.queued[path] = true
	w.pending.Add(path)
}

func (w *Watcher) flush() {
	for w.pending.Length() > 0 {
		path := w.pending.Remove().(string)
		delete(w.queued, path)
		w.logger.Debug("input changed", log.String("path", path))
		w.handle(path)
	}
}
