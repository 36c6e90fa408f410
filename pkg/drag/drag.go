// Package drag implements the drag-and-drop reorder gesture.
package drag

import "sync"

// Controller tracks the note currently being dragged.
// It has two states: idle, and dragging a single id.
type Controller struct {
	mu      sync.Mutex
	current string
}

// Start enters the dragging state for id, replacing any previous drag.
func (c *Controller) Start(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = id
}

// Dragging returns the dragged id, if any.
func (c *Controller) Dragging() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current != ""
}

// End returns to idle. It must run on drag-end as well as after a drop so an
// invalid drop target never leaves a note dimmed.
func (c *Controller) End() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = ""
}

// Drop completes the gesture over target, given the current visual order.
// The controller is idle afterwards regardless of the outcome. It returns the
// new order and true when the drop moved something.
func (c *Controller) Drop(target string, visual []string) ([]string, bool) {
	c.mu.Lock()
	dragged := c.current
	c.current = ""
	c.mu.Unlock()

	if dragged == "" {
		return nil, false
	}
	return Shift(visual, dragged, target)
}

// Shift moves dragged next to target: immediately before it when dragged
// came after target, immediately after it otherwise. Other items keep their
// relative order. It reports false, leaving order untouched, when either id is
// missing or both are the same.
func Shift(order []string, dragged, target string) ([]string, bool) {
	if dragged == target {
		return nil, false
	}
	from, to := -1, -1
	for i, id := range order {
		switch id {
		case dragged:
			from = i
		case target:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return nil, false
	}

	out := make([]string, 0, len(order))
	for _, id := range order {
		if id == dragged {
			continue
		}
		if id == target && from > to {
			out = append(out, dragged, id)
			continue
		}
		out = append(out, id)
		if id == target {
			out = append(out, dragged)
		}
	}
	return out, true
}
