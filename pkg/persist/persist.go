// Package persist reads and writes the note collection through a key-value
// storage under fixed keys.
package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/notepad/pkg/core"
)

// Storage keys.
const (
	NotesKey    = "notepad.notes"
	SettingsKey = "notepad.settings"
)

// Store is the persistence adapter of the board.
type Store struct {
	storage core.Storage
	codec   Codec
}

// New creates a persistence adapter. A nil codec means JSON.
func New(storage core.Storage, codec Codec) *Store {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &Store{storage: storage, codec: codec}
}

// Storage returns the underlying key-value storage.
func (s *Store) Storage() core.Storage { return s.storage }

// Codec returns the codec in use.
func (s *Store) Codec() Codec { return s.codec }

// Load returns the persisted collection. An absent record yields an empty
// collection; a malformed one is returned as a parse error.
func (s *Store) Load(ctx context.Context) ([]core.Note, error) {
	data, err := s.storage.Get(ctx, NotesKey)
	if errors.Is(err, core.ErrNotFound) {
		return []core.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	var notes []core.Note
	if err := s.codec.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("failed to parse notes: %w", err)
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, nil
}

// Save writes the whole collection.
func (s *Store) Save(ctx context.Context, notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}
	data, err := s.codec.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := s.storage.Set(ctx, NotesKey, data); err != nil {
		return fmt.Errorf("failed to write notes: %w", err)
	}
	return nil
}

// LoadSettings returns the persisted settings, or the defaults when absent.
func (s *Store) LoadSettings(ctx context.Context) (core.Settings, error) {
	settings := core.DefaultSettings()
	data, err := s.storage.Get(ctx, SettingsKey)
	if errors.Is(err, core.ErrNotFound) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := s.codec.Unmarshal(data, &settings); err != nil {
		return core.DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}
	if !core.ValidFontSize(settings.FontSize) {
		settings.FontSize = core.DefaultFontSize
	}
	return settings, nil
}

// SaveSettings writes the settings record.
func (s *Store) SaveSettings(ctx context.Context, settings core.Settings) error {
	data, err := s.codec.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.storage.Set(ctx, SettingsKey, data); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
