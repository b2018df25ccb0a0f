package watch

import (
	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Battery mirrors battery status from a BatteryMeter.
type Battery struct {
	binding bind.Binding
	sig     *state.Signal[state.Async[platform.BatteryStatus]]
}

// NewBattery creates an inactive adapter.
func NewBattery() *Battery {
	return &Battery{sig: state.NewSignal(state.Unsupported[platform.BatteryStatus]())}
}

// Start reads the current status and subscribes to changes. A read
// failure lands in the cell's Err; the adapter stays usable.
func (b *Battery) Start(caps platform.Capabilities) {
	if b == nil {
		return
	}
	b.binding.Activate(func(g *bind.Guard) {
		if caps.Battery == nil {
			b.sig.Set(state.Unsupported[platform.BatteryStatus]())
			return
		}
		status, err := caps.Battery.Status()
		if err != nil {
			b.sig.Set(state.AsyncErr[platform.BatteryStatus](err))
		} else {
			b.sig.Set(state.AsyncValue(status))
		}
		stop := caps.Battery.Watch(func(status platform.BatteryStatus) {
			g.Commit(func() { b.sig.Set(state.AsyncValue(status)) })
		})
		g.Cleanup(stop)
	})
}

// Stop unsubscribes.
func (b *Battery) Stop() {
	if b == nil {
		return
	}
	b.binding.Deactivate()
}

// Cell returns the battery cell.
func (b *Battery) Cell() state.Readable[state.Async[platform.BatteryStatus]] {
	if b == nil {
		return nil
	}
	return b.sig
}
