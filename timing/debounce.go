// Package timing provides the temporal policies layered on top of
// bindings: delay-commit, trailing-delay, one-shot and periodic timers.
// All of them build on a single cancel-and-reschedule timer primitive
// driven by a platform.Clock, so tests run against a simulated clock.
package timing

import (
	"sync"
	"time"

	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Debounce commits the newest pushed value into its cell only after a
// quiet period of length delay with no further pushes. At most one
// commit is pending at any time; each push supersedes the previous one.
type Debounce[T any] struct {
	mu      sync.Mutex
	clock   platform.Clock
	delay   time.Duration
	out     *state.Signal[T]
	pending platform.Timer
	latest  T

	// gen invalidates a timer callback that could not be stopped in
	// time: under a real clock Stop can lose the race with a callback
	// that already started, so the commit re-checks ownership.
	gen uint64
}

// NewDebounce creates a delay-commit policy publishing into a fresh cell
// seeded with initial. A nil clock falls back to the system clock.
func NewDebounce[T any](clock platform.Clock, delay time.Duration, initial T) *Debounce[T] {
	if clock == nil {
		clock = platform.SystemClock()
	}
	return &Debounce[T]{
		clock: clock,
		delay: delay,
		out:   state.NewSignal(initial),
	}
}

// Push records v as the candidate value and restarts the quiet-period
// timer. Only the last value pushed within any delay-length window is
// ever committed.
func (d *Debounce[T]) Push(v T) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.latest = v
	d.gen++
	gen := d.gen
	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.clock.AfterFunc(d.delay, func() { d.commit(gen) })
	d.mu.Unlock()
}

// Cancel drops the pending commit, if any, without committing.
func (d *Debounce[T]) Cancel() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.gen++
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.mu.Unlock()
}

// Cell returns the committed-value cell.
func (d *Debounce[T]) Cell() state.Readable[T] {
	if d == nil {
		return nil
	}
	return d.out
}

func (d *Debounce[T]) commit(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.pending = nil
	d.mu.Unlock()
	d.out.Set(v)
}
