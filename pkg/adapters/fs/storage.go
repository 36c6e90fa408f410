// Package fs stores key-value records as files inside a directory, one file
// per key. Writes are atomic and external edits can be observed with Watch.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/aretw0/notepad/pkg/core"
)

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path      string
	Ext       string // appended to every key, e.g. ".json"
	MustExist bool
	Logger    *slog.Logger
	// ErrorHandler receives runtime watcher failures, which are otherwise only logged.
	ErrorHandler func(error)
}

// Storage implements core.Storage on top of a directory.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	written       map[string]uint64 // key -> hash of the last value written by this process
	watcherActive bool
	lastEvent     *time.Time
}

// New creates a filesystem storage. Call Initialize before use.
func New(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Storage{
		Path:    config.Path,
		config:  config,
		written: make(map[string]uint64),
	}
}

// Initialize ensures the directory exists.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", s.Path)
		}
		return nil
	}
	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Get implements core.Storage.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	filename, err := s.filename(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set implements core.Storage.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	filename, err := s.filename(key)
	if err != nil {
		return err
	}

	// Record before writing so the watcher can recognise the echo.
	s.mu.Lock()
	s.written[key] = xxhash.Sum64(value)
	s.mu.Unlock()

	if err := replaceFile(filename, value, 0644); err != nil {
		s.config.Logger.Error("write failed", "key", key, "error", err)
		return err
	}
	s.config.Logger.Debug("value written", "key", key, "bytes", len(value))
	return nil
}

// Remove implements core.Storage.
func (s *Storage) Remove(ctx context.Context, key string) error {
	filename, err := s.filename(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.written, key)
	s.mu.Unlock()

	if err := os.Remove(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys.
func (s *Storage) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() || isTempFile(e.Name()) {
			continue
		}
		if key, ok := s.keyOf(e.Name()); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *Storage) filename(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid key: %q", key)
	}
	return filepath.Join(s.Path, key+s.config.Ext), nil
}

// keyOf maps a file name back to its key.
func (s *Storage) keyOf(name string) (string, bool) {
	base := filepath.Base(name)
	if s.config.Ext == "" {
		return base, true
	}
	if !strings.HasSuffix(base, s.config.Ext) {
		return "", false
	}
	return strings.TrimSuffix(base, s.config.Ext), true
}

// isEcho reports whether the file for key holds exactly what this process
// wrote last.
func (s *Storage) isEcho(key string) bool {
	s.mu.RLock()
	sum, ok := s.written[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	data, err := s.Get(context.Background(), key)
	if err != nil {
		return false
	}
	return xxhash.Sum64(data) == sum
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
