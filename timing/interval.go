package timing

import (
	"sync"
	"time"

	"github.com/odvcencio/tether/platform"
)

// Interval runs a callback on a fixed period. The callback lives in a
// stable slot: swapping it between ticks does not re-register the
// platform timer, only changing the period does.
type Interval struct {
	mu     sync.Mutex
	clock  platform.Clock
	fn     func()
	period time.Duration
	timer  platform.Timer
	active bool
}

// NewInterval creates a stopped interval. A nil clock falls back to the
// system clock.
func NewInterval(clock platform.Clock, fn func()) *Interval {
	if clock == nil {
		clock = platform.SystemClock()
	}
	return &Interval{clock: clock, fn: fn}
}

// Start arms the interval with the given period, replacing any prior
// schedule. A non-positive period stops the interval.
func (i *Interval) Start(period time.Duration) {
	if i == nil {
		return
	}
	i.mu.Lock()
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
	if period <= 0 {
		i.active = false
		i.mu.Unlock()
		return
	}
	i.period = period
	i.active = true
	i.timer = i.clock.AfterFunc(period, i.tick)
	i.mu.Unlock()
}

// SetFunc swaps the callback without touching the timer schedule.
func (i *Interval) SetFunc(fn func()) {
	if i == nil {
		return
	}
	i.mu.Lock()
	i.fn = fn
	i.mu.Unlock()
}

// SetPeriod changes the period, re-registering the timer.
func (i *Interval) SetPeriod(period time.Duration) {
	if i == nil {
		return
	}
	i.mu.Lock()
	active := i.active
	i.mu.Unlock()
	if active {
		i.Start(period)
	} else {
		i.mu.Lock()
		i.period = period
		i.mu.Unlock()
	}
}

// Stop cancels the schedule. The callback slot is kept.
func (i *Interval) Stop() {
	if i == nil {
		return
	}
	i.mu.Lock()
	i.active = false
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
	i.mu.Unlock()
}

// Active reports whether the interval is armed.
func (i *Interval) Active() bool {
	if i == nil {
		return false
	}
	i.mu.Lock()
	active := i.active
	i.mu.Unlock()
	return active
}

func (i *Interval) tick() {
	i.mu.Lock()
	if !i.active {
		i.mu.Unlock()
		return
	}
	fn := i.fn
	i.timer = i.clock.AfterFunc(i.period, i.tick)
	i.mu.Unlock()
	if fn != nil {
		fn()
	}
}
