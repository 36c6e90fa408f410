package fs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/debounce"
)

// watchCoalesce groups the burst of fsnotify events produced by one write.
const watchCoalesce = 50 * time.Millisecond

// Watch implements core.Watchable. Events are emitted for keys matching the
// doublestar pattern whose content was changed by someone else; writes made
// through this Storage are filtered out.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %s", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	out := make(chan core.Event, 16)
	w := &watchLoop{
		storage: s,
		pattern: pattern,
		watcher: watcher,
		out:     out,
		pending: make(map[string]*debounce.Debouncer),
	}
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.reportError(fmt.Errorf("watcher panic: %w", err))
	}))
	return out, nil
}

type watchLoop struct {
	storage *Storage
	pattern string
	watcher *fsnotify.Watcher
	out     chan core.Event

	mu      sync.Mutex
	pending map[string]*debounce.Debouncer
	closed  bool
}

func (w *watchLoop) run(ctx context.Context) error {
	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.storage.config.Logger.Error("fsnotify error", "error", err)
			w.storage.reportError(err)
		}
	}
}

func (w *watchLoop) handle(ctx context.Context, event fsnotify.Event) {
	if isTempFile(event.Name) {
		return
	}
	key, ok := w.storage.keyOf(event.Name)
	if !ok {
		return
	}
	if match, _ := doublestar.Match(w.pattern, key); !match {
		return
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
	case event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return
	}
	w.storage.config.Logger.Debug("event received", "name", event.Name, "type", eType)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	d, ok := w.pending[key]
	if !ok {
		d = debounce.New(nil, watchCoalesce)
		w.pending[key] = d
	}
	d.Trigger(func() { w.emit(ctx, key, eType) })
}

func (w *watchLoop) emit(ctx context.Context, key string, eType core.EventType) {
	if eType != core.EventDelete && w.storage.isEcho(key) {
		return
	}
	w.storage.recordEvent()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.out <- core.Event{Type: eType, ID: key, Timestamp: time.Now().Unix()}:
	case <-ctx.Done():
	default:
		w.storage.config.Logger.Warn("watch buffer full, dropping event", "key", key)
	}
}

func (w *watchLoop) shutdown() {
	w.mu.Lock()
	w.closed = true
	for _, d := range w.pending {
		d.Cancel()
	}
	close(w.out)
	w.mu.Unlock()

	_ = w.watcher.Close()
	w.storage.setWatcherActive(false)
}

func (s *Storage) reportError(err error) {
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
		return
	}
	s.config.Logger.Error("watcher failure", "error", err)
}
