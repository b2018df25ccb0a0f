package watch

import (
	"github.com/odvcencio/tether/bind"
)

// Scrollable exposes an overflow style that can be saved and replaced.
type Scrollable interface {
	Overflow() string
	SetOverflow(value string)
}

// ScrollLock suppresses scrolling on a target for as long as it is
// locked. The prior overflow value is captured on lock and restored on
// unlock, so the mutation is always reversed.
type ScrollLock struct {
	binding bind.Binding
	target  Scrollable
}

// NewScrollLock creates an unlocked lock over target.
func NewScrollLock(target Scrollable) *ScrollLock {
	return &ScrollLock{target: target}
}

// Lock hides overflow. Locking an already locked target is a no-op
// rather than a double save.
func (s *ScrollLock) Lock() {
	if s == nil || s.target == nil || s.binding.Active() {
		return
	}
	s.binding.Activate(func(g *bind.Guard) {
		prior := s.target.Overflow()
		s.target.SetOverflow("hidden")
		g.Cleanup(func() { s.target.SetOverflow(prior) })
	})
}

// Unlock restores the saved overflow value.
func (s *ScrollLock) Unlock() {
	if s == nil {
		return
	}
	s.binding.Deactivate()
}

// Locked reports whether the lock is held.
func (s *ScrollLock) Locked() bool {
	if s == nil {
		return false
	}
	return s.binding.Active()
}
