// Package bind implements the lifecycle contract shared by every adapter:
// acquire an external resource on activation, keep a cell synchronized
// while active, and release deterministically on deactivation or rebind.
package bind

import (
	"sync"

	"github.com/odvcencio/tether/platform"
)

// Binding owns at most one live subscription to an external source.
// Re-activation tears the prior subscription down synchronously before
// the new setup runs, so listeners never leak across activations.
//
// The zero value is ready to use.
type Binding struct {
	mu       sync.Mutex
	gen      uint64
	active   bool
	cleanups []func()

	// commitMu is the teardown barrier: commits hold it shared for the
	// duration of the committed function, Deactivate holds it exclusive
	// after flipping the activation state. Once Deactivate returns, no
	// commit can run.
	commitMu sync.RWMutex
}

// Activate releases any prior activation, then runs setup with a Guard
// scoped to the new one. Setup registers teardown through Guard.Cleanup
// and may hand the guard to asynchronous completions; results arriving
// after the next Deactivate or Activate are discarded by the guard.
func (b *Binding) Activate(setup func(*Guard)) {
	if b == nil {
		return
	}
	b.Deactivate()

	b.mu.Lock()
	b.gen++
	b.active = true
	g := &Guard{binding: b, gen: b.gen}
	b.mu.Unlock()

	if setup != nil {
		setup(g)
	}
}

// Deactivate releases the current activation's resources. Cleanups run
// exactly once, in reverse registration order. Calling Deactivate on an
// inactive binding is a no-op.
func (b *Binding) Deactivate() {
	if b == nil {
		return
	}
	b.mu.Lock()
	cleanups := b.cleanups
	b.cleanups = nil
	wasActive := b.active
	b.active = false
	if wasActive {
		b.gen++
	}
	b.mu.Unlock()

	// Wait out in-flight commits. Anything that checked liveness before
	// the flip finishes here; anything after is rejected.
	b.commitMu.Lock()
	b.commitMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		if cleanups[i] != nil {
			cleanups[i]()
		}
	}
}

// Active reports whether the binding currently holds an activation.
func (b *Binding) Active() bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	active := b.active
	b.mu.Unlock()
	return active
}

func (b *Binding) addCleanup(gen uint64, fn func()) bool {
	b.mu.Lock()
	if !b.active || b.gen != gen {
		b.mu.Unlock()
		return false
	}
	b.cleanups = append(b.cleanups, fn)
	b.mu.Unlock()
	return true
}

func (b *Binding) aliveFor(gen uint64) bool {
	b.mu.Lock()
	alive := b.active && b.gen == gen
	b.mu.Unlock()
	return alive
}

// Guard is a per-activation liveness token. Completion callbacks check
// it before committing into a cell, which closes the stale-write hazard
// where a slow result lands after its owner was torn down.
type Guard struct {
	binding *Binding
	gen     uint64
}

// Alive reports whether the activation this guard belongs to is still
// the binding's current one.
func (g *Guard) Alive() bool {
	if g == nil || g.binding == nil {
		return false
	}
	return g.binding.aliveFor(g.gen)
}

// Cleanup registers fn to run on deactivation. If the activation is
// already gone, fn runs immediately so the freshly acquired resource is
// not leaked.
func (g *Guard) Cleanup(fn func()) {
	if g == nil || fn == nil {
		return
	}
	if g.binding == nil || !g.binding.addCleanup(g.gen, fn) {
		fn()
	}
}

// Commit runs fn only if the activation is still live, and reports
// whether it ran. Results of async work route through Commit so a torn
// down activation never mutates a cell it no longer owns: once
// Deactivate has returned, no commit runs. fn must not call Activate or
// Deactivate on the same binding.
func (g *Guard) Commit(fn func()) bool {
	if g == nil || g.binding == nil || fn == nil {
		return false
	}
	g.binding.commitMu.RLock()
	defer g.binding.commitMu.RUnlock()
	if !g.Alive() {
		return false
	}
	fn()
	return true
}

// Listen attaches fn to the target for events of the given type and
// registers removal as a cleanup. Deliveries after teardown are dropped
// even if the source misbehaves and keeps calling.
func (g *Guard) Listen(target platform.EventTarget, typ string, fn func(platform.Event)) {
	if g == nil || target == nil || fn == nil {
		return
	}
	remove := target.AddListener(typ, func(ev platform.Event) {
		g.Commit(func() { fn(ev) })
	})
	g.Cleanup(remove)
}
