package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/adapters/fs"
	"github.com/aretw0/notepad/pkg/core"
)

func newStorage(t *testing.T) *fs.Storage {
	t.Helper()
	s := fs.New(fs.Config{Path: filepath.Join(t.TempDir(), "store"), Ext: ".json"})
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestStorage_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	_, err := s.Get(ctx, "notepad.notes")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, s.Set(ctx, "notepad.notes", []byte(`[]`)))
	got, err := s.Get(ctx, "notepad.notes")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	_, err = os.Stat(filepath.Join(s.Path, "notepad.notes.json"))
	require.NoError(t, err, "key maps to <key><ext>")

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"notepad.notes"}, keys)

	require.NoError(t, s.Remove(ctx, "notepad.notes"))
	require.NoError(t, s.Remove(ctx, "notepad.notes"))
	_, err = s.Get(ctx, "notepad.notes")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStorage_InvalidKeys(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, s.Set(ctx, key, nil), "key %q", key)
	}
}

func TestStorage_MustExist(t *testing.T) {
	s := fs.New(fs.Config{Path: filepath.Join(t.TempDir(), "nope"), MustExist: true})
	assert.Error(t, s.Initialize(context.Background()))
}

func TestStorage_State(t *testing.T) {
	s := newStorage(t)
	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))

	state, ok := s.State().(fs.StorageState)
	require.True(t, ok)
	assert.Equal(t, s.Path, state.Path)
	assert.Equal(t, []string{"k"}, state.Keys)
	assert.False(t, state.WatcherActive)
	assert.Equal(t, "fs-storage", s.ComponentType())
}

func TestStorage_Watch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s := newStorage(t)
	require.NoError(t, s.Set(ctx, "notepad.notes", []byte(`[]`)))

	events, err := s.Watch(ctx, "notepad.*")
	require.NoError(t, err)

	// Own writes are not reported.
	require.NoError(t, s.Set(ctx, "notepad.notes", []byte(`[{"id":"a"}]`)))
	// Keys outside the pattern are not reported.
	require.NoError(t, os.WriteFile(filepath.Join(s.Path, "other.json"), []byte("{}"), 0644))

	time.Sleep(200 * time.Millisecond)
	// Another process edits the record.
	require.NoError(t, os.WriteFile(filepath.Join(s.Path, "notepad.notes.json"), []byte(`[{"id":"b"}]`), 0644))

	select {
	case e := <-events:
		assert.Equal(t, "notepad.notes", e.ID)
		assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
	case <-ctx.Done():
		t.Fatal("timeout waiting for watch event")
	}

	cancel()
	require.Eventually(t, func() bool {
		state := s.State().(fs.StorageState)
		return !state.WatcherActive
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStorage_WatchInvalidPattern(t *testing.T) {
	s := newStorage(t)
	_, err := s.Watch(context.Background(), "[")
	assert.Error(t, err)
}
