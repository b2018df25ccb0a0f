package observe

import (
	"testing"

	"github.com/odvcencio/tether/platform"
)

type box struct {
	x, y, w, h int
}

func (b *box) Bounds() (int, int, int, int) { return b.x, b.y, b.w, b.h }

func TestVisibility_TogglesOnScroll(t *testing.T) {
	hub := platform.NewHub()
	viewport := &box{x: 0, y: 0, w: 80, h: 24}
	el := &box{x: 10, y: 100, w: 20, h: 5}

	obs := NewVisibility(hub, viewport)
	obs.SetElement(el)

	if obs.Cell().Get() {
		t.Fatalf("expected element below viewport to be hidden")
	}

	// Scrolling brings the element into the viewport.
	el.y = 10
	hub.Dispatch(platform.Event{Type: platform.EventScroll})
	if !obs.Cell().Get() {
		t.Fatalf("expected element visible after scroll")
	}

	el.y = 100
	hub.Dispatch(platform.Event{Type: platform.EventScroll})
	if obs.Cell().Get() {
		t.Fatalf("expected element hidden after scrolling away")
	}
}

func TestVisibility_RecomputesOnResize(t *testing.T) {
	hub := platform.NewHub()
	viewport := &box{x: 0, y: 0, w: 80, h: 24}
	el := &box{x: 0, y: 30, w: 10, h: 5}

	obs := NewVisibility(hub, viewport)
	obs.SetElement(el)
	if obs.Cell().Get() {
		t.Fatalf("expected element outside short viewport to be hidden")
	}

	viewport.h = 50
	hub.Dispatch(platform.Event{Type: platform.EventResize})
	if !obs.Cell().Get() {
		t.Fatalf("expected element visible after viewport grew")
	}
}

func TestVisibility_StopRemovesListeners(t *testing.T) {
	hub := platform.NewHub()
	obs := NewVisibility(hub, &box{w: 80, h: 24})

	obs.SetElement(&box{w: 10, h: 10})
	if hub.TotalListeners() == 0 {
		t.Fatalf("expected listeners while observing")
	}

	obs.Stop()
	if hub.TotalListeners() != 0 {
		t.Fatalf("expected 0 listeners after stop, got %d", hub.TotalListeners())
	}
}
