// Package observe binds cells to per-element concerns: measured size,
// viewport visibility, drag-and-drop state, and focus containment. Every
// observer starts only once it holds a non-nil element reference and
// re-runs its setup when that reference changes identity.
package observe

import (
	"time"

	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
	"github.com/odvcencio/tether/timing"
)

// Measurable reports an element's current rendered size.
type Measurable interface {
	Measure() (width, height int)
}

// Size observes an element's size by polling its measurements on a
// fixed period, committing only on change.
type Size struct {
	binding bind.Binding
	clock   platform.Clock
	period  time.Duration
	sig     *state.Signal[platform.Size]
}

// NewSize creates a size observer polling on the given period. A nil
// clock falls back to the system clock.
func NewSize(clock platform.Clock, period time.Duration) *Size {
	if clock == nil {
		clock = platform.SystemClock()
	}
	sig := state.NewSignal(platform.Size{})
	sig.SetEqualFunc(state.EqualComparable[platform.Size])
	return &Size{clock: clock, period: period, sig: sig}
}

// SetElement points the observer at el, tearing down the previous poll
// first. A nil element stops observation.
func (s *Size) SetElement(el Measurable) {
	if s == nil {
		return
	}
	if el == nil {
		s.binding.Deactivate()
		return
	}
	s.binding.Activate(func(g *bind.Guard) {
		measure := func() {
			w, h := el.Measure()
			g.Commit(func() { s.sig.Set(platform.Size{Width: w, Height: h}) })
		}
		measure()

		poll := timing.NewInterval(s.clock, measure)
		poll.Start(s.period)
		g.Cleanup(poll.Stop)
	})
}

// Stop ends observation.
func (s *Size) Stop() {
	if s == nil {
		return
	}
	s.binding.Deactivate()
}

// Cell returns the observed size.
func (s *Size) Cell() state.Readable[platform.Size] {
	if s == nil {
		return nil
	}
	return s.sig
}
