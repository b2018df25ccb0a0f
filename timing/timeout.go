package timing

import (
	"sync"
	"time"

	"github.com/odvcencio/tether/platform"
)

// Timeout runs a callback once after a delay. Like Interval it holds the
// callback in a stable slot, so the callback can be swapped while the
// timer is armed without rescheduling it.
type Timeout struct {
	mu    sync.Mutex
	clock platform.Clock
	fn    func()
	timer platform.Timer
	armed bool
}

// NewTimeout creates an unarmed timeout. A nil clock falls back to the
// system clock.
func NewTimeout(clock platform.Clock, fn func()) *Timeout {
	if clock == nil {
		clock = platform.SystemClock()
	}
	return &Timeout{clock: clock, fn: fn}
}

// Start arms the timeout, superseding any prior schedule.
func (t *Timeout) Start(delay time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.armed = true
	t.timer = t.clock.AfterFunc(delay, t.fire)
	t.mu.Unlock()
}

// SetFunc swaps the callback without touching the schedule.
func (t *Timeout) SetFunc(fn func()) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.fn = fn
	t.mu.Unlock()
}

// Stop cancels the pending fire and reports whether one was pending.
func (t *Timeout) Stop() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	was := t.armed
	t.armed = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
	return was
}

// Armed reports whether a fire is pending.
func (t *Timeout) Armed() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	armed := t.armed
	t.mu.Unlock()
	return armed
}

func (t *Timeout) fire() {
	t.mu.Lock()
	if !t.armed {
		t.mu.Unlock()
		return
	}
	t.armed = false
	t.timer = nil
	fn := t.fn
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}
