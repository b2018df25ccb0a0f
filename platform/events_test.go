package platform

import "testing"

func TestHub_DispatchToTypedListeners(t *testing.T) {
	hub := NewHub()
	resizes := 0
	keys := 0

	hub.AddListener(EventResize, func(Event) { resizes++ })
	hub.AddListener(EventKeyDown, func(Event) { keys++ })

	hub.Dispatch(Event{Type: EventResize, Detail: Size{Width: 80, Height: 24}})
	if resizes != 1 || keys != 0 {
		t.Fatalf("expected resize listener only, got resizes=%d keys=%d", resizes, keys)
	}
}

func TestHub_RemoveIsIdempotent(t *testing.T) {
	hub := NewHub()
	calls := 0

	remove := hub.AddListener(EventOnline, func(Event) { calls++ })
	if hub.ListenerCount(EventOnline) != 1 {
		t.Fatalf("expected 1 listener, got %d", hub.ListenerCount(EventOnline))
	}

	remove()
	remove()
	if hub.ListenerCount(EventOnline) != 0 {
		t.Fatalf("expected 0 listeners after remove, got %d", hub.ListenerCount(EventOnline))
	}

	hub.Dispatch(Event{Type: EventOnline})
	if calls != 0 {
		t.Fatalf("expected no calls after removal, got %d", calls)
	}
}

func TestHub_DetailRoundTrip(t *testing.T) {
	hub := NewHub()
	var got KeyPress

	hub.AddListener(EventKeyDown, func(ev Event) {
		if kp, ok := ev.Detail.(KeyPress); ok {
			got = kp
		}
	})
	hub.Dispatch(Event{Type: EventKeyDown, Detail: KeyPress{Name: "Enter", Rune: '\r'}})

	if got.Name != "Enter" {
		t.Fatalf("expected Enter key press, got %q", got.Name)
	}
}
