package platform

import "sync"

// Well-known event types dispatched by providers.
const (
	EventResize     = "resize"
	EventKeyDown    = "keydown"
	EventScroll     = "scroll"
	EventVisibility = "visibilitychange"
	EventOnline     = "online"
	EventOffline    = "offline"
	EventFocusIn    = "focusin"
	EventPaste      = "paste"
	EventDragStart  = "dragstart"
	EventDragEnter  = "dragenter"
	EventDragLeave  = "dragleave"
	EventDrop       = "drop"
)

// Event is a notification delivered by an EventTarget. Detail carries a
// type-specific payload such as Size or KeyPress.
type Event struct {
	Type   string
	Detail any
}

// Size is the detail payload for resize events.
type Size struct {
	Width  int
	Height int
}

// KeyPress is the detail payload for keydown events.
type KeyPress struct {
	Name string
	Rune rune
}

// VisibilityChange is the detail payload for visibilitychange events.
type VisibilityChange struct {
	Visible bool
}

// FocusChange is the detail payload for focusin events.
type FocusChange struct {
	TargetID string
}

// Transfer is the detail payload for drag and drop events.
type Transfer struct {
	Data map[string]string
}

// EventTarget is a source of typed events. AddListener returns a removal
// callback; removal is synchronous, so a caller holding the returned func
// can guarantee no further deliveries after invoking it.
type EventTarget interface {
	AddListener(typ string, fn func(Event)) (remove func())
}

// Hub is an in-memory EventTarget. Providers embed it to fan events out
// to listeners; tests use it as a mock source and assert on listener
// counts.
type Hub struct {
	mu        sync.Mutex
	listeners map[string]map[int]func(Event)
	next      int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// AddListener registers fn for events of the given type.
func (h *Hub) AddListener(typ string, fn func(Event)) func() {
	if h == nil || fn == nil {
		return func() {}
	}
	h.mu.Lock()
	if h.listeners == nil {
		h.listeners = make(map[string]map[int]func(Event))
	}
	if h.listeners[typ] == nil {
		h.listeners[typ] = make(map[int]func(Event))
	}
	id := h.next
	h.next++
	h.listeners[typ][id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners[typ], id)
			h.mu.Unlock()
		})
	}
}

// Dispatch delivers ev to every listener registered for its type.
func (h *Hub) Dispatch(ev Event) {
	if h == nil {
		return
	}
	h.mu.Lock()
	fns := make([]func(Event), 0, len(h.listeners[ev.Type]))
	for _, fn := range h.listeners[ev.Type] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// ListenerCount returns the number of listeners for a type.
func (h *Hub) ListenerCount(typ string) int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	n := len(h.listeners[typ])
	h.mu.Unlock()
	return n
}

// TotalListeners returns the number of listeners across all types.
func (h *Hub) TotalListeners() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	n := 0
	for _, m := range h.listeners {
		n += len(m)
	}
	h.mu.Unlock()
	return n
}
