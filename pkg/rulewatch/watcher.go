package rulewatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/devicedetector/pkg/logger"
)

// DefaultDebounce is the quiet period after the last change before a reload.
const DefaultDebounce = 200 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithExtensions replaces the watched file extensions.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		if len(exts) == 0 {
			return
		}
		w.extensions = w.extensions[:0]
		for _, ext := range exts {
			w.extensions = append(w.extensions, strings.ToLower(ext))
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// WithReloadObserver is called with the result of every reload.
func WithReloadObserver(fn func(error)) Option {
	return func(w *Watcher) { w.observe = fn }
}

// Watcher reloads rule files of one directory when they change.
type Watcher struct {
	dir        string
	debounce   time.Duration
	extensions []string
	observe    func(error)
	log        *slog.Logger
	running    atomic.Bool
}

// New returns a watcher for dir, which must exist.
func New(dir string, opts ...Option) (*Watcher, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Join(ErrInvalidDir, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidDir, dir)
	}

	w := &Watcher{
		dir:        dir,
		debounce:   DefaultDebounce,
		extensions: []string{".yml", ".yaml"},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(logger.Component("rulewatch"), logger.Path(dir))
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string { return w.dir }

// Watch calls onReload once changes to rule files have settled, until ctx is
// done. A failed reload is logged and watching continues. Watch returns nil
// when ctx is done.
func (w *Watcher) Watch(ctx context.Context, onReload func() error) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer w.running.Store(false)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(ErrWatchFailed, err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return errors.Join(ErrWatchFailed, err)
	}
	w.log.Info("watching rules", logger.Duration(w.debounce))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			w.log.Info("rule watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("rule file changed", logger.Event(event.Op.String()), slog.String("file", event.Name))
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			w.reload(onReload)

		case err, ok := <-fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.log.Error("rule watcher error", logger.Error(err))
		}
	}
}

func (w *Watcher) reload(onReload func() error) {
	start := time.Now()
	err := onReload()
	if w.observe != nil {
		w.observe(err)
	}
	if err != nil {
		w.log.Error("rule reload failed, keeping previous rules", logger.Error(err))
		return
	}
	w.log.Info("rules reloaded", logger.Duration(time.Since(start)))
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(base)))
}
