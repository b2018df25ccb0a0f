package observe

import (
	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Bounded reports an element's bounding box.
type Bounded interface {
	Bounds() (x, y, width, height int)
}

// Visibility observes whether an element's box intersects a viewport,
// recomputing on scroll and resize events.
type Visibility struct {
	binding  bind.Binding
	events   platform.EventTarget
	viewport Bounded
	sig      *state.Signal[bool]
}

// NewVisibility creates a visibility observer. Events supplies the
// scroll and resize notifications; viewport supplies the visible box.
func NewVisibility(events platform.EventTarget, viewport Bounded) *Visibility {
	sig := state.NewSignal(false)
	sig.SetEqualFunc(state.EqualComparable[bool])
	return &Visibility{events: events, viewport: viewport, sig: sig}
}

// SetElement points the observer at el, tearing down the previous
// observation first. A nil element stops observation.
func (v *Visibility) SetElement(el Bounded) {
	if v == nil {
		return
	}
	if el == nil {
		v.binding.Deactivate()
		return
	}
	v.binding.Activate(func(g *bind.Guard) {
		recompute := func() {
			visible := v.viewport != nil && intersects(v.viewport, el)
			g.Commit(func() { v.sig.Set(visible) })
		}
		recompute()

		g.Listen(v.events, platform.EventScroll, func(platform.Event) { recompute() })
		g.Listen(v.events, platform.EventResize, func(platform.Event) { recompute() })
	})
}

// Stop ends observation.
func (v *Visibility) Stop() {
	if v == nil {
		return
	}
	v.binding.Deactivate()
}

// Cell reports whether the element is currently visible.
func (v *Visibility) Cell() state.Readable[bool] {
	if v == nil {
		return nil
	}
	return v.sig
}

func intersects(a, b Bounded) bool {
	ax, ay, aw, ah := a.Bounds()
	bx, by, bw, bh := b.Bounds()
	if aw <= 0 || ah <= 0 || bw <= 0 || bh <= 0 {
		return false
	}
	return bx < ax+aw && bx+bw > ax && by < ay+ah && by+bh > ay
}
