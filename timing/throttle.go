package timing

import (
	"time"

	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Throttle delays commits with the same mechanics as Debounce: every
// push restarts the wait, so a commit lands a fixed delay after the last
// push rather than on a fixed cadence. The trailing-edge behavior is
// deliberate and must not be replaced with rate-limited sampling.
type Throttle[T any] struct {
	d *Debounce[T]
}

// NewThrottle creates a trailing-delay policy publishing into a fresh
// cell seeded with initial.
func NewThrottle[T any](clock platform.Clock, delay time.Duration, initial T) *Throttle[T] {
	return &Throttle[T]{d: NewDebounce(clock, delay, initial)}
}

// Push records v and restarts the delay.
func (t *Throttle[T]) Push(v T) {
	if t == nil {
		return
	}
	t.d.Push(v)
}

// Cancel drops the pending commit, if any.
func (t *Throttle[T]) Cancel() {
	if t == nil {
		return
	}
	t.d.Cancel()
}

// Cell returns the committed-value cell.
func (t *Throttle[T]) Cell() state.Readable[T] {
	if t == nil {
		return nil
	}
	return t.d.Cell()
}
