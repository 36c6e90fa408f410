package notepad

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/notepad/internal/platform"
	"github.com/aretw0/notepad/pkg/board"
	"github.com/aretw0/notepad/pkg/clock"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/view"
)

// --- Types ---

// Board is the controller of a note collection.
type Board = board.Board

// Note is a single note.
type Note = core.Note

// Item is the rendered projection of a note.
type Item = view.Item

// Config is the user configuration file.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring notepad.
type Option = platform.Option

// WithStorage injects a custom key-value storage.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFormat selects the record format ("json", "yaml").
func WithFormat(name string) Option {
	return platform.WithFormat(name)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option {
	return platform.WithClock(c)
}

// WithIDs replaces the id generator.
func WithIDs(ids core.IDGenerator) Option {
	return platform.WithIDs(ids)
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c core.Clipboard) Option {
	return platform.WithClipboard(c)
}

// WithRenderer registers the display layer.
func WithRenderer(r board.Renderer) Option {
	return platform.WithRenderer(r)
}

// WithDebounce sets the autosave quiet window.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithInsert selects where new notes go.
func WithInsert(mode board.InsertMode) Option {
	return platform.WithInsert(mode)
}

// WithOrder selects the display order.
func WithOrder(order view.Order) Option {
	return platform.WithOrder(order)
}

// WithDevSafety sandboxes the store during `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithMustExist requires the store directory to exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithWatch reloads the board on external changes.
func WithWatch(enabled bool) Option {
	return platform.WithWatch(enabled)
}

// --- Factory ---

// New opens the store at path and returns a loaded Board.
func New(ctx context.Context, path string, opts ...Option) (*Board, error) {
	return platform.New(ctx, path, opts...)
}

// LoadConfig reads the configuration file (empty path means the default location).
func LoadConfig(path string) (*Config, error) {
	return platform.LoadConfig(path)
}

// --- Safety & Utils ---

// DefaultStorePath returns the store used when no path is given.
func DefaultStorePath() (string, error) {
	return platform.DefaultStorePath()
}

// ResolveStorePath applies the development sandbox rules to a store path.
func ResolveStorePath(userPath string, forceTemp bool) string {
	return platform.ResolveStorePath(userPath, forceTemp)
}

// IsDevRun reports whether the process runs via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a directory holding a .notepad store.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
