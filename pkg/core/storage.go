package core

import "context"

// Storage is the key-value contract the notes are persisted through.
// It plays the part of the browser's local storage: opaque byte values under
// string keys. Adhering to this interface keeps the board independent of the
// underlying mechanism (memory, filesystem, SQLite).
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Watchable is implemented by storages that can report changes made by other
// processes (the equivalent of the browser "storage" event).
type Watchable interface {
	// Watch emits an event for every change to a key matching pattern.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Closer is implemented by storages holding resources (files, connections).
type Closer interface {
	Close() error
}

// IDGenerator issues note identifiers.
type IDGenerator interface {
	NewID() (string, error)
}

// IDFunc adapts a plain function to IDGenerator.
type IDFunc func() (string, error)

// NewID implements IDGenerator.
func (f IDFunc) NewID() (string, error) { return f() }

// Clipboard receives text copied from a note.
type Clipboard interface {
	WriteAll(text string) error
}
