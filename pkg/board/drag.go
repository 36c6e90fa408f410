package board

import (
	"context"

	"github.com/aretw0/notepad/pkg/view"
)

// DragStart picks up a note. The note is rendered dimmed until the gesture
// ends. Unknown ids are ignored.
func (b *Board) DragStart(id string) {
	b.mu.Lock()
	if b.indexLocked(id) < 0 {
		b.mu.Unlock()
		return
	}
	b.drag.Start(id)
	seq, items := b.snapshotLocked()
	b.mu.Unlock()

	b.cfg.Logger.Debug("drag start", "id", id)
	b.render(seq, items)
}

// Dragging returns the id of the note being dragged, if any.
func (b *Board) Dragging() (string, bool) {
	return b.drag.Dragging()
}

// Drop releases the dragged note over target. The note is shifted next to
// the target in the displayed order and the collection adopts that order.
// Drops with no drag in progress, onto the dragged note itself or onto an
// unknown target are ignored; the drag state is reset in every case.
// Under newest-first order the display is sorted by creation time, so a
// drop could not move anything visibly and is ignored too.
func (b *Board) Drop(ctx context.Context, target string) (bool, error) {
	if b.cfg.Order == view.OrderNewestFirst {
		b.DragEnd()
		return false, nil
	}

	b.mu.Lock()
	visual := view.IDs(b.itemsLocked())
	order, moved := b.drag.Drop(target, visual)
	b.mu.Unlock()

	if !moved {
		b.DragEnd()
		return false, nil
	}
	b.cfg.Logger.Debug("drop", "target", target)
	return true, b.Reorder(ctx, order)
}

// DragEnd abandons the gesture and restores the dimmed note. It is safe to
// call after Drop.
func (b *Board) DragEnd() {
	b.mu.Lock()
	b.drag.End()
	seq, items := b.snapshotLocked()
	b.mu.Unlock()
	b.render(seq, items)
}

// Move shifts id next to target in one step, the keyboard equivalent of a
// drag-and-drop gesture.
func (b *Board) Move(ctx context.Context, id, target string) (bool, error) {
	b.DragStart(id)
	return b.Drop(ctx, target)
}
