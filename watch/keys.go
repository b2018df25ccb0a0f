package watch

import (
	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Keys mirrors the most recent key press.
type Keys struct {
	binding bind.Binding
	filter  string
	sig     *state.Signal[state.Async[platform.KeyPress]]
}

// NewKeys creates an inactive adapter. A non-empty filter restricts the
// cell to presses of that named key.
func NewKeys(filter string) *Keys {
	return &Keys{
		filter: filter,
		sig:    state.NewSignal(state.Unsupported[platform.KeyPress]()),
	}
}

// Start subscribes to keydown events.
func (k *Keys) Start(caps platform.Capabilities) {
	if k == nil {
		return
	}
	k.binding.Activate(func(g *bind.Guard) {
		if caps.Events == nil {
			k.sig.Set(state.Unsupported[platform.KeyPress]())
			return
		}
		k.sig.Set(state.Async[platform.KeyPress]{Supported: true})
		g.Listen(caps.Events, platform.EventKeyDown, func(ev platform.Event) {
			kp, ok := ev.Detail.(platform.KeyPress)
			if !ok {
				return
			}
			if k.filter != "" && kp.Name != k.filter {
				return
			}
			k.sig.Set(state.AsyncValue(kp))
		})
	})
}

// Stop unsubscribes.
func (k *Keys) Stop() {
	if k == nil {
		return
	}
	k.binding.Deactivate()
}

// Cell returns the last-press cell.
func (k *Keys) Cell() state.Readable[state.Async[platform.KeyPress]] {
	if k == nil {
		return nil
	}
	return k.sig
}
