package state

import "sync"

// Subscriptions aggregates the detach callbacks of many cells, so a
// consumer observing several adapters at once releases everything with
// one Clear. Count serves teardown assertions the same way
// Signal.Subscribers does on the cell side.
type Subscriptions struct {
	mu     sync.Mutex
	unsubs []func()
}

// NewSubscriptions creates an empty tracker.
func NewSubscriptions() *Subscriptions {
	return &Subscriptions{}
}

// Add tracks a detach callback.
func (s *Subscriptions) Add(unsub func()) {
	if s == nil || unsub == nil {
		return
	}
	s.mu.Lock()
	s.unsubs = append(s.unsubs, unsub)
	s.mu.Unlock()
}

// Subscribe attaches fn to a cell and tracks the detach.
func (s *Subscriptions) Subscribe(cell Subscribable, fn func()) {
	s.SubscribeWithScheduler(cell, nil, fn)
}

// SubscribeWithScheduler attaches fn through scheduler when the cell
// supports scheduled delivery, and synchronously otherwise.
func (s *Subscriptions) SubscribeWithScheduler(cell Subscribable, scheduler Scheduler, fn func()) {
	if s == nil || cell == nil || fn == nil {
		return
	}
	if scheduler != nil {
		if sched, ok := cell.(interface {
			SubscribeWithScheduler(Scheduler, func()) func()
		}); ok {
			s.Add(sched.SubscribeWithScheduler(scheduler, fn))
			return
		}
	}
	s.Add(cell.Subscribe(fn))
}

// Count returns the number of tracked subscriptions.
func (s *Subscriptions) Count() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	n := len(s.unsubs)
	s.mu.Unlock()
	return n
}

// Clear detaches every tracked subscription, exactly once each.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()
	for _, unsub := range unsubs {
		if unsub != nil {
			unsub()
		}
	}
}
