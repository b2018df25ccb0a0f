package observe

import (
	"testing"

	"github.com/odvcencio/tether/platform"
)

func dragEvent(typ, key, id string) platform.Event {
	return platform.Event{
		Type:   typ,
		Detail: platform.Transfer{Data: map[string]string{key: id}},
	}
}

func TestDragDrop_FullCycleCommitsDrop(t *testing.T) {
	hub := platform.NewHub()
	var gotSource, gotTarget string
	dd := NewDragDrop(func(source, target string) {
		gotSource, gotTarget = source, target
	})
	dd.Attach(hub)

	hub.Dispatch(dragEvent(platform.EventDragStart, TransferSourceID, "card-1"))
	snap := dd.Cell().Get()
	if snap.Phase != PhaseDragging || snap.SourceID != "card-1" {
		t.Fatalf("expected dragging card-1, got %+v", snap)
	}
	if snap.Session == "" {
		t.Fatalf("expected a session token per drag")
	}

	hub.Dispatch(dragEvent(platform.EventDragEnter, TransferDropID, "slot-a"))
	snap = dd.Cell().Get()
	if snap.Phase != PhaseOver || snap.OverDropID != "slot-a" {
		t.Fatalf("expected over slot-a, got %+v", snap)
	}

	hub.Dispatch(platform.Event{Type: platform.EventDragLeave})
	snap = dd.Cell().Get()
	if snap.Phase != PhaseDragging || snap.OverDropID != "" {
		t.Fatalf("expected leave to clear drop candidate, got %+v", snap)
	}

	hub.Dispatch(dragEvent(platform.EventDragEnter, TransferDropID, "slot-b"))
	hub.Dispatch(platform.Event{Type: platform.EventDrop})

	if gotSource != "card-1" || gotTarget != "slot-b" {
		t.Fatalf("expected drop card-1 onto slot-b, got %q onto %q", gotSource, gotTarget)
	}
	if got := dd.Cell().Get(); got.Phase != PhaseIdle || got.SourceID != "" {
		t.Fatalf("expected idle after drop, got %+v", got)
	}
}

func TestDragDrop_DropPayloadOverridesSnapshot(t *testing.T) {
	hub := platform.NewHub()
	var gotSource, gotTarget string
	dd := NewDragDrop(func(source, target string) {
		gotSource, gotTarget = source, target
	})
	dd.Attach(hub)

	hub.Dispatch(dragEvent(platform.EventDragStart, TransferSourceID, "card-1"))
	hub.Dispatch(dragEvent(platform.EventDragEnter, TransferDropID, "slot-a"))

	hub.Dispatch(platform.Event{
		Type: platform.EventDrop,
		Detail: platform.Transfer{Data: map[string]string{
			TransferSourceID: "card-9",
			TransferDropID:   "slot-z",
		}},
	})

	if gotSource != "card-9" || gotTarget != "slot-z" {
		t.Fatalf("expected payload IDs to win, got %q onto %q", gotSource, gotTarget)
	}
}

func TestDragDrop_DropOutsideTargetDoesNotCommit(t *testing.T) {
	hub := platform.NewHub()
	drops := 0
	dd := NewDragDrop(func(string, string) { drops++ })
	dd.Attach(hub)

	hub.Dispatch(dragEvent(platform.EventDragStart, TransferSourceID, "card-1"))
	hub.Dispatch(platform.Event{Type: platform.EventDrop})

	if drops != 0 {
		t.Fatalf("expected no commit without a drop candidate, got %d", drops)
	}
	if got := dd.Cell().Get(); got.Phase != PhaseIdle {
		t.Fatalf("expected idle after stray drop, got %+v", got)
	}
}

func TestDragDrop_EnterWhileIdleIsIgnored(t *testing.T) {
	hub := platform.NewHub()
	dd := NewDragDrop(nil)
	dd.Attach(hub)

	hub.Dispatch(dragEvent(platform.EventDragEnter, TransferDropID, "slot-a"))
	if got := dd.Cell().Get(); got.Phase != PhaseIdle {
		t.Fatalf("expected enter without drag to be ignored, got %+v", got)
	}
}

func TestDragDrop_DetachRemovesListenersAndResets(t *testing.T) {
	hub := platform.NewHub()
	dd := NewDragDrop(nil)
	dd.Attach(hub)

	hub.Dispatch(dragEvent(platform.EventDragStart, TransferSourceID, "card-1"))
	dd.Detach()

	if hub.TotalListeners() != 0 {
		t.Fatalf("expected 0 listeners after detach, got %d", hub.TotalListeners())
	}
	if got := dd.Cell().Get(); got.Phase != PhaseIdle {
		t.Fatalf("expected reset to idle on detach, got %+v", got)
	}
}
