package docs

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher rewrites manifest.json whenever PDFs in the documents directory
// are added, replaced, renamed or removed. Bursts of events are debounced
// into a single rewrite.
type Watcher struct {
	mu       sync.Mutex
	dir      string
	watcher  *fsnotify.Watcher
	log      *zap.Logger
	debounce time.Duration
	onWrite  func(Manifest)

	dirty     bool
	lastEvent time.Time
	running   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
}

type WatcherOption func(*Watcher)

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// OnWrite registers a callback invoked after each successful rewrite.
func OnWrite(fn func(Manifest)) WatcherOption {
	return func(w *Watcher) { w.onWrite = fn }
}

func NewWatcher(dir string, log *zap.Logger, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	w := &Watcher{
		dir:      dir,
		watcher:  fw,
		log:      log.Named("docs-watcher"),
		debounce: 300 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}
	return w, nil
}

// Start is non-blocking. The manifest is written once up front so it never
// lags the directory.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.rewrite()
	go w.run(ctx)
	w.log.Info("watching documents", zap.String("dir", w.dir))
	return nil
}

// Stop ends the loop and releases the fsnotify handle. Safe to call twice.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.log.Warn("close watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(w.debounce / 3)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-tick.C:
			w.flush()
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !IsPDF(filepath.Base(ev.Name)) {
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	w.log.Debug("document changed", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
	w.mu.Lock()
	w.dirty = true
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	due := w.dirty && time.Since(w.lastEvent) >= w.debounce
	if due {
		w.dirty = false
	}
	w.mu.Unlock()
	if due {
		w.rewrite()
	}
}

func (w *Watcher) rewrite() {
	m, err := Write(w.dir)
	if err != nil {
		w.log.Error("rewrite manifest", zap.Error(err))
		return
	}
	w.log.Info("manifest written", zap.Int("documents", len(m.Documents)))
	if w.onWrite != nil {
		w.onWrite(m)
	}
}
