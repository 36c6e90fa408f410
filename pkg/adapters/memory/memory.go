// Package memory provides an in-process key-value storage.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/notepad/pkg/core"
)

// Storage implements core.Storage with a map. Values are copied on the way
// in and out so callers cannot alias the stored bytes.
type Storage struct {
	mu   sync.RWMutex
	data map[string][]byte
	// FailWrites, when set, is returned by every Set and Remove.
	FailWrites error
	writes     int
}

// New creates an empty storage.
func New() *Storage {
	return &Storage{data: make(map[string][]byte)}
}

// Get implements core.Storage.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set implements core.Storage.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Remove implements core.Storage.
func (s *Storage) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.data, key)
	return nil
}

// Writes returns how many times Set was called, failed calls included.
func (s *Storage) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Len returns the number of stored keys.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
