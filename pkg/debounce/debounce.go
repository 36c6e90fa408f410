// Package debounce collapses bursts of calls into a single trailing call.
package debounce

import (
	"sync"
	"time"

	"github.com/aretw0/notepad/pkg/clock"
)

// DefaultWindow is the quiet period used by the note editors.
const DefaultWindow = 500 * time.Millisecond

// Debouncer runs the most recent triggered function once no new trigger has
// arrived for the configured window. Each Trigger cancels the pending call.
type Debouncer struct {
	mu      sync.Mutex
	clock   clock.Clock
	window  time.Duration
	timer   clock.Timer
	pending func()
	gen     uint64
}

// New creates a debouncer. A nil clock means the wall clock; a non-positive
// window means DefaultWindow.
func New(c clock.Clock, window time.Duration) *Debouncer {
	if c == nil {
		c = clock.Real{}
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{clock: c, window: window}
}

// Window returns the quiet period.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Trigger schedules fn, superseding any call still waiting.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = d.clock.AfterFunc(d.window, func() {
		d.fire(gen)
	})
}

// fire runs the pending call if it still belongs to generation gen. A real
// timer may fire concurrently with a Stop from a newer Trigger; the generation
// check keeps the superseded call from running.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// Flush runs the pending call now, if any. It reports whether a call ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.take()
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Cancel discards the pending call. It reports whether one was discarded.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.take() != nil
}

// Pending reports whether a call is waiting for the quiet window to elapse.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// take detaches the pending call and stops its timer. Caller holds mu.
func (d *Debouncer) take() func() {
	fn := d.pending
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.pending = nil
	d.timer = nil
	return fn
}
