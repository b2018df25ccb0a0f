package watch

import (
	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Location mirrors geolocation fixes. Acquisition failures such as a
// denied permission populate Err; they never terminate the watch, so a
// later fix recovers the cell.
type Location struct {
	binding bind.Binding
	sig     *state.Signal[state.Async[platform.Position]]
}

// NewLocation creates an inactive adapter.
func NewLocation() *Location {
	return &Location{sig: state.NewSignal(state.Unsupported[platform.Position]())}
}

// Start begins watching for fixes.
func (l *Location) Start(caps platform.Capabilities) {
	if l == nil {
		return
	}
	l.binding.Activate(func(g *bind.Guard) {
		if caps.Geo == nil {
			l.sig.Set(state.Unsupported[platform.Position]())
			return
		}
		l.sig.Set(state.AsyncLoading[platform.Position]())
		stop := caps.Geo.Watch(func(pos platform.Position, err error) {
			g.Commit(func() {
				if err != nil {
					l.sig.Set(state.AsyncErr[platform.Position](err))
					return
				}
				l.sig.Set(state.AsyncValue(pos))
			})
		})
		g.Cleanup(stop)
	})
}

// Stop ends the watch.
func (l *Location) Stop() {
	if l == nil {
		return
	}
	l.binding.Deactivate()
}

// Cell returns the position cell.
func (l *Location) Cell() state.Readable[state.Async[platform.Position]] {
	if l == nil {
		return nil
	}
	return l.sig
}
