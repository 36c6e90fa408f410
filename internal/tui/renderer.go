package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/notepad/pkg/view"
)

// itemsMsg carries a fresh projection of the board into the event loop.
type itemsMsg []view.Item

// Renderer bridges board renders into the bubbletea loop. Render never
// blocks: only the latest projection is kept and the model pulls it when
// woken, so renders triggered from inside Update cannot deadlock.
type Renderer struct {
	mu    sync.Mutex
	items []view.Item
	wake  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// NewRenderer creates an idle Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Render implements board.Renderer.
func (r *Renderer) Render(items []view.Item) {
	r.mu.Lock()
	r.items = items
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Latest returns the last projection received.
func (r *Renderer) Latest() []view.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items
}

// Stop releases a pending wait.
func (r *Renderer) Stop() {
	r.once.Do(func() { close(r.done) })
}

// wait blocks until the next render and delivers it as an itemsMsg.
func (r *Renderer) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-r.wake:
			return itemsMsg(r.Latest())
		case <-r.done:
			return nil
		}
	}
}
