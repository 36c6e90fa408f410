package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/core"
)

type chanSubscriber chan core.Event

func (c chanSubscriber) Subscribe(ctx context.Context) <-chan core.Event { return c }

func TestSource(t *testing.T) {
	t.Run("Forwards events", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		in := make(chanSubscriber, 1)
		src := NewSource(in)
		require.NoError(t, src.Start(ctx))

		in <- core.Event{Type: core.EventCreate, ID: "n1", Timestamp: 0}

		select {
		case e := <-src.Events():
			got, ok := e.(core.Event)
			require.True(t, ok)
			assert.Equal(t, "n1", got.ID)
			assert.Equal(t, core.EventCreate, got.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("event not forwarded")
		}
	})

	t.Run("Closes when subscription ends", func(t *testing.T) {
		in := make(chanSubscriber)
		src := NewSource(in)
		require.NoError(t, src.Start(context.Background()))
		close(in)

		select {
		case _, ok := <-src.Events():
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("source not closed")
		}
	})

	t.Run("Closes on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		src := NewSource(make(chanSubscriber))
		require.NoError(t, src.Start(ctx))
		cancel()

		assert.Eventually(t, func() bool {
			select {
			case _, ok := <-src.Events():
				return !ok
			default:
				return false
			}
		}, 2*time.Second, 10*time.Millisecond)
	})
}
