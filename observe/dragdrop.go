package observe

import (
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Transfer payload keys used by drag events.
const (
	TransferSourceID = "sourceID"
	TransferDropID   = "dropID"
)

// DragPhase is the drag machine's current phase.
type DragPhase int

const (
	PhaseIdle DragPhase = iota
	PhaseDragging
	PhaseOver
)

func (p DragPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// DragSnapshot is the observable drag state. Session is a token minted
// per drag so consumers can correlate the events of one gesture.
type DragSnapshot struct {
	Phase      DragPhase
	SourceID   string
	OverDropID string
	Session    string
}

// DragDrop is the idle → dragging → over → idle machine driven by drag
// events. A drop while over a target commits by invoking the consumer's
// callback with the source and target IDs from the transfer payload.
type DragDrop struct {
	binding bind.Binding
	sig     *state.Signal[DragSnapshot]
	onDrop  func(sourceID, targetID string)
}

// NewDragDrop creates a detached drag machine. onDrop may be nil if the
// consumer only observes phases.
func NewDragDrop(onDrop func(sourceID, targetID string)) *DragDrop {
	return &DragDrop{
		sig:    state.NewSignal(DragSnapshot{}),
		onDrop: onDrop,
	}
}

// Attach binds the machine to a drag event source, detaching from any
// previous one first.
func (d *DragDrop) Attach(target platform.EventTarget) {
	if d == nil || target == nil {
		return
	}
	d.binding.Activate(func(g *bind.Guard) {
		g.Cleanup(func() { d.sig.Set(DragSnapshot{}) })

		g.Listen(target, platform.EventDragStart, func(ev platform.Event) {
			d.sig.Set(DragSnapshot{
				Phase:    PhaseDragging,
				SourceID: transferValue(ev, TransferSourceID),
				Session:  ulid.Make().String(),
			})
		})

		g.Listen(target, platform.EventDragEnter, func(ev platform.Event) {
			d.sig.Update(func(s DragSnapshot) DragSnapshot {
				if s.Phase == PhaseIdle {
					return s
				}
				s.Phase = PhaseOver
				s.OverDropID = transferValue(ev, TransferDropID)
				return s
			})
		})

		g.Listen(target, platform.EventDragLeave, func(ev platform.Event) {
			d.sig.Update(func(s DragSnapshot) DragSnapshot {
				if s.Phase != PhaseOver {
					return s
				}
				s.Phase = PhaseDragging
				s.OverDropID = ""
				return s
			})
		})

		g.Listen(target, platform.EventDrop, func(ev platform.Event) {
			snap := d.sig.Get()
			if snap.Phase == PhaseOver && d.onDrop != nil {
				// The drop's own transfer payload is authoritative; the
				// snapshot fills in whatever the payload omits.
				src := transferValue(ev, TransferSourceID)
				if src == "" {
					src = snap.SourceID
				}
				dst := transferValue(ev, TransferDropID)
				if dst == "" {
					dst = snap.OverDropID
				}
				d.onDrop(src, dst)
			}
			d.sig.Set(DragSnapshot{})
		})
	})
}

// Detach unbinds the machine and resets it to idle.
func (d *DragDrop) Detach() {
	if d == nil {
		return
	}
	d.binding.Deactivate()
}

// Cell returns the observable drag state.
func (d *DragDrop) Cell() state.Readable[DragSnapshot] {
	if d == nil {
		return nil
	}
	return d.sig
}

func transferValue(ev platform.Event, key string) string {
	tr, ok := ev.Detail.(platform.Transfer)
	if !ok {
		return ""
	}
	return tr.Data[key]
}
