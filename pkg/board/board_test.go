package board_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/adapters/clipboard"
	"github.com/aretw0/notepad/pkg/adapters/memory"
	"github.com/aretw0/notepad/pkg/board"
	"github.com/aretw0/notepad/pkg/clock"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/persist"
	"github.com/aretw0/notepad/pkg/view"
)

// sequentialIDs issues n1, n2, ...
func sequentialIDs() core.IDGenerator {
	var mu sync.Mutex
	n := 0
	return core.IDFunc(func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("n%d", n), nil
	})
}

// recorder captures every projection handed to the renderer.
type recorder struct {
	mu     sync.Mutex
	frames [][]view.Item
}

func (r *recorder) Render(items []view.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, items)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recorder) last() []view.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

type fixture struct {
	kv    *memory.Storage
	store *persist.Store
	clock *clock.Fake
	rec   *recorder
	clip  *clipboard.Buffer
	board *board.Board
}

func newFixture(t *testing.T, mutate ...func(*board.Config)) *fixture {
	t.Helper()
	f := &fixture{
		kv:    memory.New(),
		clock: clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
		rec:   &recorder{},
		clip:  &clipboard.Buffer{},
	}
	f.store = persist.New(f.kv, nil)
	cfg := board.Config{
		Store:     f.store,
		Clock:     f.clock,
		IDs:       sequentialIDs(),
		Clipboard: f.clip,
		Renderer:  f.rec,
		Debounce:  500 * time.Millisecond,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	f.board = board.New(cfg)
	require.NoError(t, f.board.Load(context.Background()))
	return f
}

// persisted reloads the collection from storage, as a fresh page load would.
func (f *fixture) persisted(t *testing.T) []core.Note {
	t.Helper()
	notes, err := f.store.Load(context.Background())
	require.NoError(t, err)
	return notes
}

func ids(notes []core.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestBoard_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Appends By Default", func(t *testing.T) {
		f := newFixture(t)
		a, err := f.board.Create(ctx)
		require.NoError(t, err)
		b, err := f.board.Create(ctx)
		require.NoError(t, err)

		assert.Equal(t, "", a.Text)
		assert.Equal(t, f.clock.Now().UnixMilli(), a.CreatedAt)
		assert.Equal(t, []string{a.ID, b.ID}, ids(f.board.Notes()))
		assert.Equal(t, f.board.Notes(), f.persisted(t))
	})

	t.Run("Prepend Variant", func(t *testing.T) {
		f := newFixture(t, func(c *board.Config) { c.Insert = board.InsertPrepend })
		a, _ := f.board.Create(ctx)
		b, _ := f.board.Create(ctx)
		assert.Equal(t, []string{b.ID, a.ID}, ids(f.persisted(t)))
	})

	t.Run("Regenerates Colliding Ids", func(t *testing.T) {
		calls := 0
		gen := core.IDFunc(func() (string, error) {
			calls++
			if calls <= 2 {
				return "same", nil
			}
			return "other", nil
		})
		f := newFixture(t, func(c *board.Config) { c.IDs = gen })
		_, err := f.board.Create(ctx)
		require.NoError(t, err)
		n, err := f.board.Create(ctx)
		require.NoError(t, err)
		assert.Equal(t, "other", n.ID)
	})

	t.Run("Gives Up On Persistent Collision", func(t *testing.T) {
		gen := core.IDFunc(func() (string, error) { return "same", nil })
		f := newFixture(t, func(c *board.Config) { c.IDs = gen })
		_, err := f.board.Create(ctx)
		require.NoError(t, err)
		_, err = f.board.Create(ctx)
		assert.ErrorIs(t, err, core.ErrIDCollision)
		assert.Len(t, f.board.Notes(), 1)
	})

	t.Run("Default Ids Are UUIDv7", func(t *testing.T) {
		f := newFixture(t, func(c *board.Config) { c.IDs = nil })
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			n, err := f.board.Create(ctx)
			require.NoError(t, err)
			assert.Len(t, n.ID, 36)
			assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
			seen[n.ID] = true
		}
	})

	t.Run("Write Failure Is Reported", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("quota exceeded")
		f.kv.FailWrites = boom
		_, err := f.board.Create(ctx)
		assert.ErrorIs(t, err, boom)
		assert.Len(t, f.board.Notes(), 1, "memory keeps the note")
	})
}

func TestBoard_UpdateText(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	n, _ := f.board.Create(ctx)

	require.NoError(t, f.board.UpdateText(ctx, n.ID, "buy milk"))
	assert.Equal(t, "buy milk", f.persisted(t)[0].Text)

	before, err := f.kv.Get(ctx, persist.NotesKey)
	require.NoError(t, err)
	renders := f.rec.count()

	require.NoError(t, f.board.UpdateText(ctx, "ghost", "boo"))

	after, err := f.kv.Get(ctx, persist.NotesKey)
	require.NoError(t, err)
	assert.Equal(t, before, after, "unknown id must not write")
	assert.Equal(t, renders, f.rec.count())
	assert.Equal(t, []string{n.ID}, ids(f.board.Notes()))
}

func TestBoard_Input(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	n, _ := f.board.Create(ctx)

	for _, s := range []string{"w", "wr", "wri", "write report"} {
		f.board.Input(n.ID, s)
		f.clock.Advance(200 * time.Millisecond)
	}
	assert.Equal(t, "", f.persisted(t)[0].Text, "nothing written while typing")
	assert.Equal(t, 1, f.board.Pending())

	f.clock.Advance(500 * time.Millisecond)
	assert.Equal(t, "write report", f.persisted(t)[0].Text)
	assert.Equal(t, 0, f.board.Pending())

	t.Run("One Timer Per Note", func(t *testing.T) {
		m, _ := f.board.Create(ctx)
		f.board.Input(n.ID, "first")
		f.board.Input(m.ID, "second")
		assert.Equal(t, 2, f.board.Pending())

		f.clock.Advance(time.Second)
		notes := f.persisted(t)
		assert.Equal(t, "first", notes[0].Text)
		assert.Equal(t, "second", notes[1].Text)
	})
}

func TestBoard_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Declined", func(t *testing.T) {
		f := newFixture(t)
		n, _ := f.board.Create(ctx)
		var asked core.Note
		ok, err := f.board.Delete(ctx, n.ID, func(note core.Note) bool {
			asked = note
			return false
		})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, n.ID, asked.ID)
		assert.Len(t, f.persisted(t), 1)
	})

	t.Run("Confirmed Cancels Pending Edit", func(t *testing.T) {
		f := newFixture(t)
		a, _ := f.board.Create(ctx)
		b, _ := f.board.Create(ctx)
		f.board.Input(a.ID, "doomed")

		ok, err := f.board.Delete(ctx, a.ID, func(core.Note) bool { return true })
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0, f.board.Pending())

		f.clock.Advance(time.Second)
		assert.Equal(t, []string{b.ID}, ids(f.persisted(t)))
	})

	t.Run("Unknown Id", func(t *testing.T) {
		f := newFixture(t)
		ok, err := f.board.Delete(ctx, "ghost", nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBoard_Reorder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 4; i++ {
		_, err := f.board.Create(ctx)
		require.NoError(t, err)
	}

	require.NoError(t, f.board.Reorder(ctx, []string{"n3", "ghost", "n1", "n3", "n4"}))
	assert.Equal(t, []string{"n3", "n1", "n4", "n2"}, ids(f.board.Notes()),
		"unknown and repeated ids are dropped, missing notes are kept")
	assert.Equal(t, f.board.Notes(), f.persisted(t))
}

func TestBoard_Drag(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *fixture {
		f := newFixture(t)
		for i := 0; i < 4; i++ {
			_, err := f.board.Create(ctx)
			require.NoError(t, err)
		}
		return f
	}

	t.Run("Dims While Dragging", func(t *testing.T) {
		f := setup(t)
		f.board.DragStart("n2")
		for _, it := range f.rec.last() {
			assert.Equal(t, it.ID == "n2", it.Dimmed, it.ID)
		}
		f.board.DragEnd()
		for _, it := range f.rec.last() {
			assert.False(t, it.Dimmed, it.ID)
		}
	})

	t.Run("Drop Downward Shifts After Target", func(t *testing.T) {
		f := setup(t)
		f.board.DragStart("n1")
		moved, err := f.board.Drop(ctx, "n3")
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, []string{"n2", "n3", "n1", "n4"}, ids(f.persisted(t)))
		_, dragging := f.board.Dragging()
		assert.False(t, dragging)
	})

	t.Run("Drop Upward Shifts Before Target", func(t *testing.T) {
		f := setup(t)
		moved, err := f.board.Move(ctx, "n4", "n2")
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, []string{"n1", "n4", "n2", "n3"}, ids(f.board.Notes()))
	})

	t.Run("Invalid Target Resets Drag", func(t *testing.T) {
		f := setup(t)
		f.board.DragStart("n1")
		moved, err := f.board.Drop(ctx, "ghost")
		require.NoError(t, err)
		assert.False(t, moved)
		_, dragging := f.board.Dragging()
		assert.False(t, dragging)
		for _, it := range f.rec.last() {
			assert.False(t, it.Dimmed, "no note may stay dimmed")
		}
		assert.Equal(t, []string{"n1", "n2", "n3", "n4"}, ids(f.board.Notes()))
	})

	t.Run("Unknown Note Cannot Be Picked Up", func(t *testing.T) {
		f := setup(t)
		f.board.DragStart("ghost")
		_, dragging := f.board.Dragging()
		assert.False(t, dragging)
	})

	t.Run("Newest First Ignores Drops", func(t *testing.T) {
		f := newFixture(t, func(c *board.Config) { c.Order = view.OrderNewestFirst })
		for i := 0; i < 3; i++ {
			_, err := f.board.Create(ctx)
			require.NoError(t, err)
			f.clock.Advance(time.Second)
		}
		before := view.IDs(f.board.Render())
		writes := f.kv.Writes()

		moved, err := f.board.Move(ctx, "n3", "n1")
		require.NoError(t, err)
		assert.False(t, moved)
		assert.Equal(t, before, view.IDs(f.board.Render()))
		assert.Equal(t, []string{"n1", "n2", "n3"}, ids(f.board.Notes()))
		assert.Equal(t, writes, f.kv.Writes())
		_, dragging := f.board.Dragging()
		assert.False(t, dragging)
	})
}

// The example scenario: create A and B, search, clear, delete A, reload.
func TestBoard_SearchScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, _ := f.board.Create(ctx)
	require.NoError(t, f.board.UpdateText(ctx, a.ID, "buy milk"))
	b, _ := f.board.Create(ctx)
	require.NoError(t, f.board.UpdateText(ctx, b.ID, "write report"))

	f.board.Search("report")
	assert.Equal(t, []string{b.ID}, view.IDs(view.Visible(f.rec.last())))
	assert.Len(t, f.board.Notes(), 2)

	f.board.Search("nothing like this")
	assert.Empty(t, view.Visible(f.rec.last()))

	f.board.Search("")
	assert.Equal(t, []string{a.ID, b.ID}, view.IDs(view.Visible(f.rec.last())))

	_, err := f.board.Delete(ctx, a.ID, nil)
	require.NoError(t, err)

	reloaded := board.New(board.Config{Store: f.store})
	require.NoError(t, reloaded.Load(ctx))
	require.Len(t, reloaded.Notes(), 1)
	assert.Equal(t, "write report", reloaded.Notes()[0].Text)
}

func TestBoard_FontSize(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _ = f.board.Create(ctx)

	assert.Equal(t, core.DefaultFontSize, f.board.FontSize())
	require.NoError(t, f.board.SetFontSize(ctx, 24))
	for _, it := range f.rec.last() {
		assert.Equal(t, 24, it.FontSize)
	}

	err := f.board.SetFontSize(ctx, 500)
	assert.ErrorIs(t, err, core.ErrInvalidFontSize)
	assert.Equal(t, 24, f.board.FontSize())

	settings, err := f.store.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 24, settings.FontSize)
}

func TestBoard_Copy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	n, _ := f.board.Create(ctx)
	require.NoError(t, f.board.UpdateText(ctx, n.ID, "copy me"))

	require.NoError(t, f.board.Copy(n.ID))
	assert.Equal(t, "copy me", f.clip.Text)

	assert.ErrorIs(t, f.board.Copy("ghost"), core.ErrNotFound)

	f.clip.Err = core.ErrClipboard
	assert.ErrorIs(t, f.board.Copy(n.ID), core.ErrClipboard)

	noClip := newFixture(t, func(c *board.Config) { c.Clipboard = nil })
	m, _ := noClip.board.Create(ctx)
	assert.ErrorIs(t, noClip.board.Copy(m.ID), core.ErrClipboard)
}

func TestBoard_Flush(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	n, _ := f.board.Create(ctx)
	f.board.Input(n.ID, "unsaved")

	require.NoError(t, f.board.Flush(ctx))
	assert.Equal(t, "unsaved", f.persisted(t)[0].Text)
	assert.Equal(t, 0, f.board.Pending())
	assert.Equal(t, 0, f.clock.Pending(), "flushed timer is stopped")
}

func TestBoard_FlushWithoutChangesDoesNotWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("Unmodified Board", func(t *testing.T) {
		f := newFixture(t)
		writes := f.kv.Writes()
		require.NoError(t, f.board.Flush(ctx))
		require.NoError(t, f.board.Close(ctx))
		assert.Equal(t, writes, f.kv.Writes())
	})

	t.Run("Reader Does Not Clobber Another Writer", func(t *testing.T) {
		kv := memory.New()
		writer := board.New(board.Config{Store: persist.New(kv, nil), IDs: sequentialIDs()})
		reader := board.New(board.Config{Store: persist.New(kv, nil)})
		require.NoError(t, writer.Load(ctx))
		require.NoError(t, reader.Load(ctx))

		n, err := writer.Create(ctx)
		require.NoError(t, err)
		require.NoError(t, writer.UpdateText(ctx, n.ID, "kept"))
		require.NoError(t, reader.Close(ctx))

		notes, err := persist.New(kv, nil).Load(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "kept", notes[0].Text)
	})

	t.Run("Failed Write Is Retried", func(t *testing.T) {
		f := newFixture(t)
		f.kv.FailWrites = errors.New("disk full")
		_, err := f.board.Create(ctx)
		require.Error(t, err)

		f.kv.FailWrites = nil
		require.NoError(t, f.board.Flush(ctx))
		assert.Len(t, f.persisted(t), 1)
	})
}

func TestBoard_LoadMalformed(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	raw := []byte("{not json")
	require.NoError(t, kv.Set(ctx, persist.NotesKey, raw))

	b := board.New(board.Config{Store: persist.New(kv, nil)})
	assert.Error(t, b.Load(ctx))

	require.NoError(t, b.Close(ctx))
	stored, err := kv.Get(ctx, persist.NotesKey)
	require.NoError(t, err)
	assert.Equal(t, raw, stored, "a board that failed to load never writes")
}

func TestBoard_RendersAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	start := f.rec.count()
	require.Equal(t, 1, start, "load renders once")

	n, _ := f.board.Create(ctx)
	require.NoError(t, f.board.UpdateText(ctx, n.ID, "x"))
	require.NoError(t, f.board.Reorder(ctx, []string{n.ID}))
	_, err := f.board.Delete(ctx, n.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, start+4, f.rec.count())
	assert.Empty(t, f.rec.last())
}

func TestBoard_Subscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newFixture(t)
	events := f.board.Subscribe(ctx)

	n, _ := f.board.Create(ctx)
	require.NoError(t, f.board.UpdateText(ctx, n.ID, "x"))
	_, _ = f.board.Delete(ctx, n.ID, nil)

	var got []core.EventType
	for i := 0; i < 3; i++ {
		select {
		case e := <-events:
			got = append(got, e.Type)
			assert.Equal(t, n.ID, e.ID)
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for event")
		}
	}
	assert.Equal(t, []core.EventType{core.EventCreate, core.EventModify, core.EventDelete}, got)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, open := <-events:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestBoard_Reload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _ = f.board.Create(ctx)
	renders := f.rec.count()

	require.NoError(t, f.board.Reload(ctx))
	assert.Equal(t, renders, f.rec.count(), "unchanged storage does not re-render")

	other := persist.New(f.kv, nil)
	require.NoError(t, other.Save(ctx, []core.Note{{ID: "ext", Text: "from elsewhere", CreatedAt: 1}}))
	require.NoError(t, f.board.Reload(ctx))
	assert.Equal(t, []string{"ext"}, ids(f.board.Notes()))
	assert.Equal(t, renders+1, f.rec.count())
}

func TestBoard_WatchUnsupported(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.board.Watch(context.Background()), core.ErrNotWatchable)
}

func TestBoard_State(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, _ := f.board.Create(ctx)
	_, _ = f.board.Create(ctx)
	require.NoError(t, f.board.UpdateText(ctx, a.ID, "alpha"))
	f.board.Search("alp")
	f.board.Input(a.ID, "alphabet")

	state, ok := f.board.State().(board.State)
	require.True(t, ok)
	assert.Equal(t, 2, state.Notes)
	assert.Equal(t, 1, state.Visible)
	assert.Equal(t, "alp", state.Filter)
	assert.Equal(t, 1, state.PendingWrites)
	assert.Equal(t, "json", state.Format)
	assert.Equal(t, "board", f.board.ComponentType())
}

func TestBoard_Close(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	n, _ := f.board.Create(ctx)
	events := f.board.Subscribe(context.Background())
	f.board.Input(n.ID, "last words")

	require.NoError(t, f.board.Close(ctx))
	assert.Equal(t, "last words", f.persisted(t)[0].Text)

	for range events {
	}

	t.Run("Subscribing After Close Yields A Closed Channel", func(t *testing.T) {
		late := f.board.Subscribe(context.Background())
		select {
		case _, open := <-late:
			assert.False(t, open)
		case <-time.After(time.Second):
			t.Fatal("subscription outlived the board")
		}
	})
}
