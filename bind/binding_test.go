package bind

import (
	"testing"

	"github.com/odvcencio/tether/platform"
)

func TestBinding_ActivateDeactivateLeavesNoListeners(t *testing.T) {
	hub := platform.NewHub()
	var b Binding

	b.Activate(func(g *Guard) {
		g.Listen(hub, platform.EventResize, func(platform.Event) {})
		g.Listen(hub, platform.EventKeyDown, func(platform.Event) {})
	})
	if hub.TotalListeners() != 2 {
		t.Fatalf("expected 2 listeners while active, got %d", hub.TotalListeners())
	}

	b.Deactivate()
	if hub.TotalListeners() != 0 {
		t.Fatalf("expected 0 listeners after deactivate, got %d", hub.TotalListeners())
	}
}

func TestBinding_ReactivateTearsDownFirst(t *testing.T) {
	var b Binding
	var order []string

	b.Activate(func(g *Guard) {
		g.Cleanup(func() { order = append(order, "teardown-old") })
	})
	b.Activate(func(g *Guard) {
		order = append(order, "setup-new")
	})

	if len(order) != 2 || order[0] != "teardown-old" || order[1] != "setup-new" {
		t.Fatalf("expected teardown before setup, got %v", order)
	}
}

func TestBinding_CleanupsRunOnceInReverseOrder(t *testing.T) {
	var b Binding
	var order []int

	b.Activate(func(g *Guard) {
		g.Cleanup(func() { order = append(order, 1) })
		g.Cleanup(func() { order = append(order, 2) })
	})
	b.Deactivate()
	b.Deactivate()

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Fatalf("expected reverse-order single teardown, got %v", order)
	}
}

func TestGuard_CommitAfterDeactivateIsDiscarded(t *testing.T) {
	var b Binding
	var stale *Guard
	value := "before"

	b.Activate(func(g *Guard) {
		stale = g
	})
	b.Deactivate()

	if stale.Commit(func() { value = "after" }) {
		t.Fatalf("expected stale commit to be rejected")
	}
	if value != "before" {
		t.Fatalf("expected value unchanged after stale commit, got %q", value)
	}
}

func TestGuard_CommitAfterReactivateIsDiscarded(t *testing.T) {
	var b Binding
	var first *Guard
	commits := 0

	b.Activate(func(g *Guard) { first = g })
	b.Activate(func(g *Guard) {})

	if first.Commit(func() { commits++ }) {
		t.Fatalf("expected commit from superseded activation to be rejected")
	}
	if commits != 0 {
		t.Fatalf("expected no commits, got %d", commits)
	}
}

func TestGuard_DeactivateReturnBarsFurtherCommits(t *testing.T) {
	for range 1000 {
		var b Binding
		var g *Guard
		b.Activate(func(gg *Guard) { g = gg })

		committed := 0
		start := make(chan struct{})
		done := make(chan struct{})
		go func() {
			<-start
			g.Commit(func() { committed++ })
			close(done)
		}()

		close(start)
		b.Deactivate()
		// Deactivate has returned: the racing commit either finished
		// before the teardown barrier or was rejected. Nothing may land
		// from here on.
		snapshot := committed
		<-done
		if committed != snapshot {
			t.Fatalf("commit landed after Deactivate returned")
		}
	}
}

func TestGuard_LateCleanupRunsImmediately(t *testing.T) {
	var b Binding
	var stale *Guard

	b.Activate(func(g *Guard) { stale = g })
	b.Deactivate()

	released := false
	stale.Cleanup(func() { released = true })
	if !released {
		t.Fatalf("expected cleanup on stale guard to release immediately")
	}
}

func TestGuard_ListenDropsDeliveriesAfterTeardown(t *testing.T) {
	hub := platform.NewHub()
	var b Binding
	calls := 0

	var fire func(platform.Event)
	// Capture the raw listener so we can simulate a misbehaving source
	// that calls back after removal.
	raw := rawTarget{hub: hub, captured: &fire}

	b.Activate(func(g *Guard) {
		g.Listen(raw, platform.EventOnline, func(platform.Event) { calls++ })
	})
	b.Deactivate()

	fire(platform.Event{Type: platform.EventOnline})
	if calls != 0 {
		t.Fatalf("expected delivery after teardown to be dropped, got %d", calls)
	}
}

type rawTarget struct {
	hub      *platform.Hub
	captured *func(platform.Event)
}

func (r rawTarget) AddListener(typ string, fn func(platform.Event)) func() {
	*r.captured = fn
	return r.hub.AddListener(typ, fn)
}
