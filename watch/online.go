package watch

import (
	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Online mirrors connectivity from online/offline events. Until the
// first event arrives the adapter assumes connectivity, matching how
// the events are delivered only on transitions.
type Online struct {
	binding bind.Binding
	sig     *state.Signal[state.Async[bool]]
}

// NewOnline creates an inactive adapter.
func NewOnline() *Online {
	return &Online{sig: state.NewSignal(state.Unsupported[bool]())}
}

// Start subscribes to connectivity events.
func (o *Online) Start(caps platform.Capabilities) {
	if o == nil {
		return
	}
	o.binding.Activate(func(g *bind.Guard) {
		if caps.Events == nil {
			o.sig.Set(state.Unsupported[bool]())
			return
		}
		o.sig.Set(state.AsyncValue(true))
		g.Listen(caps.Events, platform.EventOnline, func(platform.Event) {
			o.sig.Set(state.AsyncValue(true))
		})
		g.Listen(caps.Events, platform.EventOffline, func(platform.Event) {
			o.sig.Set(state.AsyncValue(false))
		})
	})
}

// Stop unsubscribes.
func (o *Online) Stop() {
	if o == nil {
		return
	}
	o.binding.Deactivate()
}

// Cell returns the connectivity cell.
func (o *Online) Cell() state.Readable[state.Async[bool]] {
	if o == nil {
		return nil
	}
	return o.sig
}
