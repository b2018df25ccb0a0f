package platform

import (
	"sort"
	"sync"
	"time"
)

// Clock schedules callbacks. Bindings take a Clock instead of calling the
// time package directly so temporal policies can be tested without waiting.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a scheduled callback that can be stopped or rescheduled.
type Timer interface {
	Stop() bool
	Reset(d time.Duration) bool
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock { return systemClock{} }

// SimClock is a manually advanced clock for tests. Timers fire only when
// Advance moves time past their deadline, in deadline order, on the
// calling goroutine.
type SimClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*simTimer
}

// NewSimClock creates a simulated clock starting at start.
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{now: start}
}

// Now returns the simulated time.
func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	now := c.now
	c.mu.Unlock()
	return now
}

// AfterFunc schedules fn to run when the clock advances past d from now.
func (c *SimClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	t := &simTimer{clock: c, deadline: c.now.Add(d), fn: fn, active: true}
	c.timers = append(c.timers, t)
	c.mu.Unlock()
	return t
}

// Advance moves the clock forward and fires every timer whose deadline
// falls within the window. Callbacks may schedule new timers; those fire
// too if they land inside the same window.
func (c *SimClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		t := c.popDue(target)
		if t == nil {
			break
		}
		c.mu.Lock()
		if t.deadline.After(c.now) {
			c.now = t.deadline
		}
		c.mu.Unlock()
		t.fn()
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

// Pending returns the number of armed timers.
func (c *SimClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if t.active {
			n++
		}
	}
	return n
}

func (c *SimClock) popDue(target time.Time) *simTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].deadline.Before(c.timers[j].deadline)
	})
	for _, t := range c.timers {
		if t.active && !t.deadline.After(target) {
			t.active = false
			return t
		}
	}
	return nil
}

type simTimer struct {
	clock    *SimClock
	deadline time.Time
	fn       func()
	active   bool
}

func (t *simTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.active
	t.active = false
	return was
}

func (t *simTimer) Reset(d time.Duration) bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.active
	t.deadline = t.clock.now.Add(d)
	t.active = true
	return was
}
