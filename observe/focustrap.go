package observe

import (
	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
)

// Focusable can receive focus.
type Focusable interface {
	Focus()
}

// Container owns a set of focusable descendants.
type Container interface {
	Contains(id string) bool
	First() Focusable
}

// FocusTrap redirects focus that lands outside a container back to its
// first focusable descendant. It is best-effort containment, not a
// modal stack: overlapping traps are the consumer's problem.
type FocusTrap struct {
	binding bind.Binding
}

// Enable starts intercepting focus events, replacing any previous trap
// configuration.
func (f *FocusTrap) Enable(events platform.EventTarget, container Container) {
	if f == nil || events == nil || container == nil {
		return
	}
	f.binding.Activate(func(g *bind.Guard) {
		g.Listen(events, platform.EventFocusIn, func(ev platform.Event) {
			change, ok := ev.Detail.(platform.FocusChange)
			if !ok || container.Contains(change.TargetID) {
				return
			}
			if first := container.First(); first != nil {
				first.Focus()
			}
		})
	})
}

// Disable stops intercepting focus events.
func (f *FocusTrap) Disable() {
	if f == nil {
		return
	}
	f.binding.Deactivate()
}

// Active reports whether the trap is enabled.
func (f *FocusTrap) Active() bool {
	if f == nil {
		return false
	}
	return f.binding.Active()
}
