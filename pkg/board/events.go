package board

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/persist"
)

// defaultEventBuffer is the capacity of a subscription channel.
const defaultEventBuffer = 100

// Subscribe returns a channel receiving every change applied to the board.
// Slow consumers lose events rather than blocking mutations. The channel is
// closed when ctx is cancelled or the board is closed.
func (b *Board) Subscribe(ctx context.Context) <-chan core.Event {
	ch := make(chan core.Event, defaultEventBuffer)

	b.subsMu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.subsMu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.subsMu.Lock()
		defer b.subsMu.Unlock()
		if c, ok := b.subs[id]; ok {
			close(c)
			delete(b.subs, id)
		}
	}()
	return ch
}

func (b *Board) publish(e core.Event) {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.cfg.Logger.Warn("event buffer full, dropping event", "event", e.String())
		}
	}
}

// Reload re-reads storage after an external change (another process editing
// the same store). Pending edits are kept and still land on their notes.
func (b *Board) Reload(ctx context.Context) error {
	notes, err := b.cfg.Store.Load(ctx)
	if err != nil {
		return err
	}
	settings, err := b.cfg.Store.LoadSettings(ctx)
	if err != nil {
		b.cfg.Logger.Warn("ignoring unreadable settings", "error", err)
	}

	b.mu.Lock()
	if slices.Equal(b.notes, notes) && b.settings == settings {
		b.mu.Unlock()
		return nil
	}
	b.notes = notes
	b.settings = settings
	b.dirty = false
	seq, items := b.snapshotLocked()
	b.mu.Unlock()

	b.cfg.Logger.Info("store changed externally, reloaded", "notes", len(notes))
	b.after(core.EventReload, "", seq, items)
	return nil
}

// Watch reloads the board whenever its records change in storage. It returns
// core.ErrNotWatchable for storages that cannot report changes.
func (b *Board) Watch(ctx context.Context) error {
	w, ok := b.cfg.Store.Storage().(core.Watchable)
	if !ok {
		return core.ErrNotWatchable
	}
	events, err := w.Watch(ctx, watchPattern)
	if err != nil {
		return fmt.Errorf("failed to watch storage: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for e := range events {
			b.cfg.Logger.Debug("storage event", "event", e.String())
			if err := b.Reload(ctx); err != nil {
				b.cfg.Logger.Error("reload failed", "error", err)
			}
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		b.cfg.Logger.Error("watch loop panic", "error", err)
	}))
	return nil
}

// watchPattern matches both the notes and the settings records.
var watchPattern = "{" + persist.NotesKey + "," + persist.SettingsKey + "}"
