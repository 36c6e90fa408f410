package core

import "github.com/google/uuid"

// UUIDv7 issues time-ordered UUIDv7 identifiers.
var UUIDv7 IDFunc = func() (string, error) {
	value, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return value.String(), nil
}
