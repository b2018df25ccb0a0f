package watch

import (
	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Visible mirrors document visibility from visibilitychange events.
type Visible struct {
	binding bind.Binding
	sig     *state.Signal[state.Async[bool]]
}

// NewVisible creates an inactive adapter.
func NewVisible() *Visible {
	return &Visible{sig: state.NewSignal(state.Unsupported[bool]())}
}

// Start subscribes to visibility events. The document is assumed
// visible until the first change arrives.
func (v *Visible) Start(caps platform.Capabilities) {
	if v == nil {
		return
	}
	v.binding.Activate(func(g *bind.Guard) {
		if caps.Events == nil {
			v.sig.Set(state.Unsupported[bool]())
			return
		}
		v.sig.Set(state.AsyncValue(true))
		g.Listen(caps.Events, platform.EventVisibility, func(ev platform.Event) {
			if change, ok := ev.Detail.(platform.VisibilityChange); ok {
				v.sig.Set(state.AsyncValue(change.Visible))
			}
		})
	})
}

// Stop unsubscribes.
func (v *Visible) Stop() {
	if v == nil {
		return
	}
	v.binding.Deactivate()
}

// Cell returns the visibility cell.
func (v *Visible) Cell() state.Readable[state.Async[bool]] {
	if v == nil {
		return nil
	}
	return v.sig
}
