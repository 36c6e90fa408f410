package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/notepad/pkg/board"
	"github.com/aretw0/notepad/pkg/clock"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/view"
)

// options holds the internal configuration of a notepad board.
type options struct {
	storage      core.Storage
	adapter      string
	format       string
	logger       *slog.Logger
	clock        clock.Clock
	ids          core.IDGenerator
	clipboard    core.Clipboard
	renderer     board.Renderer
	debounce     time.Duration
	insert       board.InsertMode
	order        view.Order
	devSafety    bool
	mustExist    bool
	watch        bool
	errorHandler func(error)
}

// Option defines a functional option for configuring notepad.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   "fs",
		format:    "json",
		debounce:  500 * time.Millisecond,
		insert:    board.InsertAppend,
		order:     view.OrderCollection,
		devSafety: true,
	}
}

// WithStorage injects a custom key-value storage (e.g. a mock).
// If provided, the adapter option is ignored.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithAdapter selects the storage adapter by name: "fs", "sqlite" or "memory".
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithFormat selects the structured text format of the records ("json", "yaml").
func WithFormat(name string) Option {
	return func(o *options) {
		o.format = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock replaces the wall clock (timestamps and debounce timers).
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithIDs replaces the UUIDv7 id generator.
func WithIDs(ids core.IDGenerator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c core.Clipboard) Option {
	return func(o *options) {
		o.clipboard = c
	}
}

// WithRenderer registers the display layer.
func WithRenderer(r board.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithDebounce sets the quiet window of the autosave.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithInsert selects whether new notes are appended or prepended.
func WithInsert(mode board.InsertMode) Option {
	return func(o *options) {
		o.insert = mode
	}
}

// WithOrder selects the display order.
func WithOrder(order view.Order) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) the store is re-rooted into a temporary directory so a
// development run never touches real notes.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithMustExist requires the store directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithWatch reloads the board when another process changes the store.
func WithWatch(enabled bool) Option {
	return func(o *options) {
		o.watch = enabled
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
