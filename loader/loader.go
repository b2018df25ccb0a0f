package loader

import (
	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/state"
)

// Load binds a cell to the shared status of one keyed resource. The
// first Load to start against an idle key runs the acquisition; every
// other Load for that key just observes.
type Load struct {
	binding bind.Binding
	reg     *Registry
	sig     *state.Signal[Result]
}

// New creates a Load against the given registry. A nil registry uses
// Default.
func New(reg *Registry) *Load {
	if reg == nil {
		reg = Default
	}
	return &Load{
		reg: reg,
		sig: state.NewSignal(Result{}),
	}
}

// Start observes key, acquiring it with acquire if nobody has yet. A key
// that already reached a terminal status short-circuits: the cached
// status is committed immediately and acquire is not called. Restarting
// with a different key tears down the previous observation first.
func (l *Load) Start(key string, acquire func() error) {
	if l == nil {
		return
	}
	l.binding.Activate(func(g *bind.Guard) {
		res := l.reg.Get(key)
		if res.Status.Terminal() {
			l.sig.Set(res)
			return
		}

		remove := l.reg.Watch(key, func(res Result) {
			g.Commit(func() { l.sig.Set(res) })
		})
		g.Cleanup(remove)

		// Re-read after subscribing: a Finish landing between the first
		// read and the watcher registration is not replayed by the
		// watcher, so it has to be picked up here.
		res = l.reg.Get(key)
		l.sig.Set(res)
		if res.Status.Terminal() {
			return
		}

		if res, won := l.reg.Begin(key); won {
			l.sig.Set(res)
			if acquire == nil {
				l.reg.Finish(key, nil)
				return
			}
			// The acquisition settles into the shared registry even if
			// this binding deactivates first; only the cell commit above
			// is guarded.
			go func() {
				l.reg.Finish(key, acquire())
			}()
		}
	})
}

// Stop detaches from the key. The registry entry is untouched.
func (l *Load) Stop() {
	if l == nil {
		return
	}
	l.binding.Deactivate()
}

// Cell returns the observed status cell.
func (l *Load) Cell() state.Readable[Result] {
	if l == nil {
		return nil
	}
	return l.sig
}
