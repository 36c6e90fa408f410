// Package core holds the domain types shared by the board, the persistence layer
// and the storage adapters.
package core

import (
	"fmt"
	"time"
)

// Note is the central entity of the domain: a user-authored text record.
// CreatedAt is expressed in milliseconds since the Unix epoch, which is also
// the on-disk representation.
type Note struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	CreatedAt int64  `json:"createdAt" yaml:"createdAt"`
}

// Created returns the creation timestamp as a time.Time.
func (n Note) Created() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

// NewNote returns an empty note stamped with the given instant.
func NewNote(id string, at time.Time) Note {
	return Note{ID: id, CreatedAt: at.UnixMilli()}
}

// Settings holds the display preferences persisted next to the notes.
type Settings struct {
	FontSize int `json:"fontSize" yaml:"fontSize"`
}

// Font size bounds, in pixels.
const (
	MinFontSize     = 8
	MaxFontSize     = 72
	DefaultFontSize = 16
)

// DefaultSettings returns the settings used when nothing was persisted yet.
func DefaultSettings() Settings {
	return Settings{FontSize: DefaultFontSize}
}

// ValidFontSize reports whether px is inside the accepted range.
func ValidFontSize(px int) bool {
	return px >= MinFontSize && px <= MaxFontSize
}

// EventType represents the kind of change applied to the note collection.
type EventType string

const (
	EventCreate   EventType = "CREATE"
	EventModify   EventType = "MODIFY"
	EventDelete   EventType = "DELETE"
	EventReorder  EventType = "REORDER"
	EventSettings EventType = "SETTINGS"
	EventReload   EventType = "RELOAD"
)

// Event represents a change in the note collection or in the storage behind it.
// For storage events ID carries the affected key.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	if e.ID == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
