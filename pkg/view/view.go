// Package view projects the note collection into display records.
//
// Rendering is a pure function: the display layer (terminal board, CLI listing)
// receives the full list of items after every mutation and redraws from it.
// Filtering is visual only; notes that do not match are flagged as hidden,
// never omitted.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/aretw0/notepad/pkg/core"
)

// Order selects how items are sequenced.
type Order string

const (
	// OrderCollection keeps the collection order (the drag-and-drop order).
	OrderCollection Order = "collection"
	// OrderNewestFirst sorts by creation time, most recent first.
	OrderNewestFirst Order = "newest"
)

// Options drives a render pass.
type Options struct {
	Filter   string
	Order    Order
	FontSize int
	Dragging string // id of the note being dragged, if any
}

// Item is the view model of a single note.
type Item struct {
	ID        string
	Text      string
	CreatedAt time.Time
	Position  int // index in the collection
	Hidden    bool
	Dimmed    bool
	FontSize  int
}

// Render builds one item per note.
func Render(notes []core.Note, opts Options) []Item {
	items := make([]Item, 0, len(notes))
	for i, n := range notes {
		items = append(items, Item{
			ID:        n.ID,
			Text:      n.Text,
			CreatedAt: n.Created(),
			Position:  i,
			Hidden:    !Matches(n.Text, opts.Filter),
			Dimmed:    opts.Dragging != "" && n.ID == opts.Dragging,
			FontSize:  opts.FontSize,
		})
	}

	if opts.Order == OrderNewestFirst {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
	return items
}

// Matches reports whether text contains filter, ignoring case.
// An empty filter matches everything.
func Matches(text, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(filter))
}

// Visible returns the items that are not hidden.
func Visible(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Hidden {
			out = append(out, it)
		}
	}
	return out
}

// IDs returns the ids of items in display order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// Title returns the first non-empty line of text, trimmed to max runes.
func Title(text string, max int) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r := []rune(line)
		if max > 0 && len(r) > max {
			return string(r[:max-1]) + "…"
		}
		return line
	}
	return ""
}
