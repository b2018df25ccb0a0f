package watch

import (
	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Media mirrors the result of one media query.
type Media struct {
	binding bind.Binding
	sig     *state.Signal[state.Async[bool]]
}

// NewMedia creates an inactive adapter.
func NewMedia() *Media {
	return &Media{sig: state.NewSignal(state.Unsupported[bool]())}
}

// Start evaluates query and subscribes to match changes. Restarting with
// a different query rebinds.
func (m *Media) Start(caps platform.Capabilities, query string) {
	if m == nil {
		return
	}
	m.binding.Activate(func(g *bind.Guard) {
		if caps.Media == nil {
			m.sig.Set(state.Unsupported[bool]())
			return
		}
		m.sig.Set(state.AsyncValue(caps.Media.Matches(query)))
		stop := caps.Media.Watch(query, func(matched bool) {
			g.Commit(func() { m.sig.Set(state.AsyncValue(matched)) })
		})
		g.Cleanup(stop)
	})
}

// Stop unsubscribes.
func (m *Media) Stop() {
	if m == nil {
		return
	}
	m.binding.Deactivate()
}

// Cell returns the match cell.
func (m *Media) Cell() state.Readable[state.Async[bool]] {
	if m == nil {
		return nil
	}
	return m.sig
}
