package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/notepad/pkg/adapters/clipboard"
	"github.com/aretw0/notepad/pkg/adapters/fs"
	"github.com/aretw0/notepad/pkg/adapters/memory"
	"github.com/aretw0/notepad/pkg/adapters/sqlite"
	"github.com/aretw0/notepad/pkg/board"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/persist"
)

// DatabaseFile is the name of the sqlite database inside the store directory.
const DatabaseFile = "notepad.db"

// ErrUnknownAdapter is returned when the adapter option names no known storage.
var ErrUnknownAdapter = errors.New("unknown storage adapter")

// New creates a notepad board on top of the store at path and loads it.
//
//	b, err := notepad.New(ctx, "./notes", notepad.WithAdapter("sqlite"))
//
// When WithWatch is set, external changes are picked up until ctx is cancelled.
func New(ctx context.Context, path string, opts ...Option) (*board.Board, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	codec, err := persist.CodecFor(o.format)
	if err != nil {
		return nil, err
	}

	storage := o.storage
	if storage == nil {
		storage, err = openStorage(ctx, path, codec, o)
		if err != nil {
			return nil, err
		}
	}

	clip := o.clipboard
	if clip == nil {
		clip = clipboard.System{}
	}

	b := board.New(board.Config{
		Store:     persist.New(storage, codec),
		Clock:     o.clock,
		IDs:       o.ids,
		Clipboard: clip,
		Renderer:  o.renderer,
		Logger:    o.logger,
		Debounce:  o.debounce,
		Insert:    o.insert,
		Order:     o.order,
	})
	if err := b.Load(ctx); err != nil {
		// Only release the storage: the record stays as found.
		if c, ok := storage.(core.Closer); ok {
			_ = c.Close()
		}
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	if o.watch {
		if err := b.Watch(ctx); err != nil {
			if !errors.Is(err, core.ErrNotWatchable) {
				_ = b.Close(ctx)
				return nil, err
			}
			o.logger.Debug("storage cannot be watched", "adapter", o.adapter)
		}
	}
	return b, nil
}

// openStorage builds the storage named by the adapter option.
func openStorage(ctx context.Context, path string, codec persist.Codec, o *options) (core.Storage, error) {
	if o.adapter == "memory" {
		return memory.New(), nil
	}

	dir := ResolveStorePath(path, o.devSafety && IsDevRun())
	if dir != path {
		o.logger.Warn("development run detected, using sandboxed store", "path", dir)
	}

	switch o.adapter {
	case "", "fs":
		s := fs.New(fs.Config{
			Path:         dir,
			Ext:          codec.Ext(),
			MustExist:    o.mustExist,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
		})
		if err := s.Initialize(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		if err := ensureDir(dir, o.mustExist); err != nil {
			return nil, err
		}
		return sqlite.Open(filepath.Join(dir, DatabaseFile), o.logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAdapter, o.adapter)
	}
}
