// Package watch contains the concrete capability adapters. Each one
// binds a single platform capability to a cell using the shared
// lifecycle contract: activate subscribes, deactivate releases, and a
// missing capability is reported as Supported=false, never as an error.
package watch

import (
	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// WindowSize mirrors the window size from resize events.
type WindowSize struct {
	binding bind.Binding
	sig     *state.Signal[state.Async[platform.Size]]
}

// NewWindowSize creates an inactive adapter.
func NewWindowSize() *WindowSize {
	return &WindowSize{sig: state.NewSignal(state.Unsupported[platform.Size]())}
}

// Start subscribes to resize events. Without an event source the cell
// reports unsupported.
func (w *WindowSize) Start(caps platform.Capabilities) {
	if w == nil {
		return
	}
	w.binding.Activate(func(g *bind.Guard) {
		if caps.Events == nil {
			w.sig.Set(state.Unsupported[platform.Size]())
			return
		}
		w.sig.Set(state.AsyncLoading[platform.Size]())
		g.Listen(caps.Events, platform.EventResize, func(ev platform.Event) {
			if sz, ok := ev.Detail.(platform.Size); ok {
				w.sig.Set(state.AsyncValue(sz))
			}
		})
	})
}

// Stop unsubscribes.
func (w *WindowSize) Stop() {
	if w == nil {
		return
	}
	w.binding.Deactivate()
}

// Cell returns the size cell.
func (w *WindowSize) Cell() state.Readable[state.Async[platform.Size]] {
	if w == nil {
		return nil
	}
	return w.sig
}
