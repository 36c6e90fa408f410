package board

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/notepad/pkg/view"
)

// State exposes internal state for observability.
type State struct {
	Notes         int    `json:"notes"`
	Visible       int    `json:"visible"`
	Filter        string `json:"filter,omitempty"`
	FontSize      int    `json:"font_size"`
	Dragging      string `json:"dragging,omitempty"`
	PendingWrites int    `json:"pending_writes"`
	Insert        string `json:"insert"`
	Order         string `json:"order"`
	Format        string `json:"format"`
	StorageType   string `json:"storage_type"`
}

// State implements introspection.Introspectable.
func (b *Board) State() any {
	pending := b.Pending()
	dragging, _ := b.drag.Dragging()

	b.mu.Lock()
	defer b.mu.Unlock()

	storageType := "unknown"
	if comp, ok := b.cfg.Store.Storage().(introspection.Component); ok {
		storageType = comp.ComponentType()
	}

	return State{
		Notes:         len(b.notes),
		Visible:       len(view.Visible(b.itemsLocked())),
		Filter:        b.filter,
		FontSize:      b.settings.FontSize,
		Dragging:      dragging,
		PendingWrites: pending,
		Insert:        string(b.cfg.Insert),
		Order:         string(b.cfg.Order),
		Format:        b.cfg.Store.Codec().Name(),
		StorageType:   storageType,
	}
}

// ComponentType implements introspection.Component.
func (b *Board) ComponentType() string {
	return "board"
}

var _ introspection.Introspectable = (*Board)(nil)
var _ introspection.Component = (*Board)(nil)
