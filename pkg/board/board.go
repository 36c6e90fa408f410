// Package board owns the note collection and every operation a user can
// perform on it.
//
// A Board is constructed once at startup, loaded from storage and then mutated
// only through its methods. Every mutation writes the whole collection back to
// storage, publishes an event and hands a fresh projection to the Renderer.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/notepad/pkg/clock"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/debounce"
	"github.com/aretw0/notepad/pkg/drag"
	"github.com/aretw0/notepad/pkg/persist"
	"github.com/aretw0/notepad/pkg/view"
)

// InsertMode selects where new notes go.
type InsertMode string

const (
	InsertAppend  InsertMode = "append"
	InsertPrepend InsertMode = "prepend"
)

// maxIDAttempts bounds the retries when a generated id is already taken.
const maxIDAttempts = 5

// Renderer is the display layer. It receives the full projection after every
// mutation and must not call back into the Board synchronously.
type Renderer interface {
	Render(items []view.Item)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(items []view.Item)

// Render implements Renderer.
func (f RenderFunc) Render(items []view.Item) { f(items) }

// Confirmer is asked before a note is deleted. Returning false aborts.
type Confirmer func(note core.Note) bool

// Config holds the collaborators of a Board.
type Config struct {
	Store     *persist.Store
	Clock     clock.Clock
	IDs       core.IDGenerator
	Clipboard core.Clipboard
	Renderer  Renderer
	Logger    *slog.Logger
	Debounce  time.Duration
	Insert    InsertMode
	Order     view.Order
}

// Board is the controller of the note collection.
type Board struct {
	cfg Config

	mu       sync.Mutex
	notes    []core.Note
	settings core.Settings
	filter   string
	editors  map[string]*debounce.Debouncer
	drag     drag.Controller
	dirty    bool // collection differs from the last successful write

	done      chan struct{}
	closeOnce sync.Once

	renderMu   sync.Mutex
	renderSeq  uint64
	renderedAt uint64

	subsMu sync.Mutex
	subs   map[int]chan core.Event
	nextID int
}

// New creates a Board. Store is required; everything else has a default.
func New(cfg Config) *Board {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	if cfg.IDs == nil {
		cfg.IDs = core.UUIDv7
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = debounce.DefaultWindow
	}
	if cfg.Insert == "" {
		cfg.Insert = InsertAppend
	}
	if cfg.Order == "" {
		cfg.Order = view.OrderCollection
	}
	return &Board{
		cfg:      cfg,
		notes:    []core.Note{},
		settings: core.DefaultSettings(),
		editors:  make(map[string]*debounce.Debouncer),
		subs:     make(map[int]chan core.Event),
		done:     make(chan struct{}),
	}
}

// Load reads the collection and the settings from storage. A malformed notes
// record is returned as an error; there is no recovery path.
func (b *Board) Load(ctx context.Context) error {
	notes, err := b.cfg.Store.Load(ctx)
	if err != nil {
		return err
	}
	settings, err := b.cfg.Store.LoadSettings(ctx)
	if err != nil {
		b.cfg.Logger.Warn("ignoring unreadable settings", "error", err)
	}

	b.mu.Lock()
	b.notes = notes
	b.settings = settings
	b.dirty = false
	seq, items := b.snapshotLocked()
	b.mu.Unlock()

	b.cfg.Logger.Debug("board loaded", "notes", len(notes))
	b.render(seq, items)
	return nil
}

// Notes returns a copy of the collection in order.
func (b *Board) Notes() []core.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.notes)
}

// Get returns the note with the given id.
func (b *Board) Get(id string) (core.Note, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		return core.Note{}, false
	}
	return b.notes[i], true
}

// Create adds an empty note stamped with the current time.
func (b *Board) Create(ctx context.Context) (core.Note, error) {
	b.mu.Lock()
	id, err := b.newIDLocked()
	if err != nil {
		b.mu.Unlock()
		return core.Note{}, err
	}
	note := core.NewNote(id, b.cfg.Clock.Now())
	if b.cfg.Insert == InsertPrepend {
		b.notes = slices.Insert(b.notes, 0, note)
	} else {
		b.notes = append(b.notes, note)
	}
	err = b.saveLocked(ctx, "create", id)
	seq, items := b.snapshotLocked()
	b.mu.Unlock()

	b.after(core.EventCreate, id, seq, items)
	return note, err
}

// UpdateText overwrites the text of the note with the given id.
// An unknown id is silently ignored and nothing is written.
func (b *Board) UpdateText(ctx context.Context, id, text string) error {
	b.mu.Lock()
	i := b.indexLocked(id)
	if i < 0 {
		b.mu.Unlock()
		return nil
	}
	b.notes[i].Text = text
	err := b.saveLocked(ctx, "update", id)
	seq, items := b.snapshotLocked()
	b.mu.Unlock()

	b.after(core.EventModify, id, seq, items)
	return err
}

// Input is the bound input field of a note: it schedules UpdateText after the
// debounce window, superseding any edit of the same note still waiting.
func (b *Board) Input(id, text string) {
	b.mu.Lock()
	d, ok := b.editors[id]
	if !ok {
		d = debounce.New(b.cfg.Clock, b.cfg.Debounce)
		b.editors[id] = d
	}
	b.mu.Unlock()

	d.Trigger(func() {
		if err := b.UpdateText(context.Background(), id, text); err != nil {
			b.cfg.Logger.Error("autosave failed", "id", id, "error", err)
		}
	})
}

// Delete removes a note once confirm agrees (a nil confirm always agrees).
// It reports whether the note was removed.
func (b *Board) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	note, ok := b.Get(id)
	if !ok {
		return false, nil
	}
	if confirm != nil && !confirm(note) {
		b.cfg.Logger.Debug("delete declined", "id", id)
		return false, nil
	}

	b.mu.Lock()
	i := b.indexLocked(id)
	if i < 0 {
		// Removed while the confirmation was pending.
		b.mu.Unlock()
		return false, nil
	}
	b.notes = slices.Delete(b.notes, i, i+1)
	if d, ok := b.editors[id]; ok {
		d.Cancel()
		delete(b.editors, id)
	}
	err := b.saveLocked(ctx, "delete", id)
	seq, items := b.snapshotLocked()
	b.mu.Unlock()

	b.after(core.EventDelete, id, seq, items)
	return true, err
}

// Reorder rewrites the order of the collection to follow ids. Unknown and
// repeated ids are dropped; notes missing from ids keep their relative order
// after the requested ones, so no note is ever lost.
func (b *Board) Reorder(ctx context.Context, ids []string) error {
	b.mu.Lock()
	b.notes = reorder(b.notes, ids)
	err := b.saveLocked(ctx, "reorder", "")
	seq, items := b.snapshotLocked()
	b.mu.Unlock()

	b.after(core.EventReorder, "", seq, items)
	return err
}

func reorder(notes []core.Note, ids []string) []core.Note {
	byID := make(map[string]core.Note, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
	}

	out := make([]core.Note, 0, len(notes))
	placed := make(map[string]bool, len(notes))
	for _, id := range ids {
		n, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		out = append(out, n)
		placed[id] = true
	}
	for _, n := range notes {
		if !placed[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

// Search sets the visual filter and re-renders. Nothing is removed.
func (b *Board) Search(filter string) {
	b.mu.Lock()
	b.filter = filter
	seq, items := b.snapshotLocked()
	b.mu.Unlock()
	b.render(seq, items)
}

// Filter returns the active search filter.
func (b *Board) Filter() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// SetFontSize changes the pixel size applied to every note and persists it.
func (b *Board) SetFontSize(ctx context.Context, px int) error {
	if !core.ValidFontSize(px) {
		return fmt.Errorf("%w: %d (allowed %d-%d)", core.ErrInvalidFontSize, px, core.MinFontSize, core.MaxFontSize)
	}

	b.mu.Lock()
	b.settings.FontSize = px
	settings := b.settings
	seq, items := b.snapshotLocked()
	b.mu.Unlock()

	err := b.cfg.Store.SaveSettings(ctx, settings)
	if err != nil {
		b.cfg.Logger.Error("settings write failed", "error", err)
	}
	b.after(core.EventSettings, "", seq, items)
	return err
}

// FontSize returns the current font size.
func (b *Board) FontSize() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings.FontSize
}

// Copy puts the text of a note on the clipboard.
func (b *Board) Copy(id string) error {
	note, ok := b.Get(id)
	if !ok {
		return fmt.Errorf("note %s: %w", id, core.ErrNotFound)
	}
	if b.cfg.Clipboard == nil {
		return core.ErrClipboard
	}
	if err := b.cfg.Clipboard.WriteAll(note.Text); err != nil {
		return fmt.Errorf("failed to copy note %s: %w", id, err)
	}
	return nil
}

// Flush runs every pending debounced edit and writes the collection once
// more if an earlier write failed. An unmodified board writes nothing, so
// readers never clobber changes saved by another process. It is the
// page-exit hook: best effort, no retry.
func (b *Board) Flush(ctx context.Context) error {
	b.mu.Lock()
	editors := make([]*debounce.Debouncer, 0, len(b.editors))
	for _, d := range b.editors {
		editors = append(editors, d)
	}
	b.mu.Unlock()

	flushed := 0
	for _, d := range editors {
		if d.Flush() {
			flushed++
		}
	}

	var err error
	b.mu.Lock()
	if b.dirty {
		err = b.saveLocked(ctx, "flush", "")
	}
	b.mu.Unlock()
	b.cfg.Logger.Debug("board flushed", "pending", flushed)
	return err
}

// Pending returns the number of edits waiting for their debounce window.
func (b *Board) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, d := range b.editors {
		if d.Pending() {
			n++
		}
	}
	return n
}

// Render returns the current projection without notifying the Renderer.
func (b *Board) Render() []view.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.itemsLocked()
}

// Close flushes pending edits and releases the storage.
func (b *Board) Close(ctx context.Context) error {
	err := b.Flush(ctx)
	if c, ok := b.cfg.Store.Storage().(core.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	b.closeOnce.Do(func() { close(b.done) })
	b.subsMu.Lock()
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
	b.subsMu.Unlock()
	return err
}

func (b *Board) indexLocked(id string) int {
	return slices.IndexFunc(b.notes, func(n core.Note) bool { return n.ID == id })
}

func (b *Board) newIDLocked() (string, error) {
	for range maxIDAttempts {
		id, err := b.cfg.IDs.NewID()
		if err != nil {
			return "", fmt.Errorf("failed to generate id: %w", err)
		}
		if id != "" && b.indexLocked(id) < 0 {
			return id, nil
		}
	}
	return "", core.ErrIDCollision
}

func (b *Board) saveLocked(ctx context.Context, op, id string) error {
	b.dirty = true
	if err := b.cfg.Store.Save(ctx, b.notes); err != nil {
		b.cfg.Logger.Error("persist failed", "op", op, "id", id, "error", err)
		return err
	}
	b.dirty = false
	b.cfg.Logger.Debug("persisted", "op", op, "id", id, "notes", len(b.notes))
	return nil
}

func (b *Board) itemsLocked() []view.Item {
	dragging, _ := b.drag.Dragging()
	return view.Render(b.notes, view.Options{
		Filter:   b.filter,
		Order:    b.cfg.Order,
		FontSize: b.settings.FontSize,
		Dragging: dragging,
	})
}

// snapshotLocked numbers a projection so that renders racing outside the
// lock can never replace a newer one with an older one.
func (b *Board) snapshotLocked() (uint64, []view.Item) {
	b.renderSeq++
	return b.renderSeq, b.itemsLocked()
}

func (b *Board) render(seq uint64, items []view.Item) {
	if b.cfg.Renderer == nil {
		return
	}
	b.renderMu.Lock()
	defer b.renderMu.Unlock()
	if seq <= b.renderedAt {
		return
	}
	b.renderedAt = seq
	b.cfg.Renderer.Render(items)
}

func (b *Board) after(t core.EventType, id string, seq uint64, items []view.Item) {
	b.render(seq, items)
	b.publish(core.Event{Type: t, ID: id, Timestamp: b.cfg.Clock.Now().Unix()})
}
