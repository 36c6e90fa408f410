package core

import "errors"

// Common errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrIDCollision     = errors.New("could not generate an unused note id")
	ErrInvalidFontSize = errors.New("font size out of range")
	ErrClipboard       = errors.New("clipboard unavailable")
	ErrClosed          = errors.New("storage is closed")
	ErrNotWatchable    = errors.New("storage does not support watching")
)
