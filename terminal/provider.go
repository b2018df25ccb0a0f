// Package terminal adapts a tcell screen into the platform event
// source: resize, key, focus, and paste events from the terminal are
// republished as platform events for the watch adapters to consume.
package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/tether/platform"
)

// Provider pumps tcell events into a platform hub.
type Provider struct {
	screen tcell.Screen
	hub    *platform.Hub
	done   chan struct{}
	once   sync.Once
}

// New creates a provider over an initialized screen.
func New(screen tcell.Screen) *Provider {
	return &Provider{
		screen: screen,
		hub:    platform.NewHub(),
		done:   make(chan struct{}),
	}
}

// Events returns the event source fed by Run.
func (p *Provider) Events() platform.EventTarget {
	if p == nil {
		return nil
	}
	return p.hub
}

// Capabilities returns the baseline capability set with this provider's
// event source filled in.
func (p *Provider) Capabilities() platform.Capabilities {
	caps := platform.Detect()
	if p != nil {
		caps.Events = p.hub
	}
	return caps
}

// Run pumps screen events until Stop is called or the screen is
// finalized. It blocks; run it on a dedicated goroutine.
func (p *Provider) Run() {
	if p == nil || p.screen == nil {
		return
	}
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			select {
			case <-p.done:
				return
			default:
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			p.hub.Dispatch(platform.Event{
				Type:   platform.EventResize,
				Detail: platform.Size{Width: w, Height: h},
			})
		case *tcell.EventKey:
			p.hub.Dispatch(platform.Event{
				Type:   platform.EventKeyDown,
				Detail: platform.KeyPress{Name: ev.Name(), Rune: ev.Rune()},
			})
		case *tcell.EventFocus:
			p.hub.Dispatch(platform.Event{
				Type:   platform.EventVisibility,
				Detail: platform.VisibilityChange{Visible: ev.Focused},
			})
		case *tcell.EventPaste:
			if ev.Start() {
				p.hub.Dispatch(platform.Event{Type: platform.EventPaste})
			}
		}
	}
}

// Stop interrupts the poll loop. Safe to call more than once.
func (p *Provider) Stop() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		close(p.done)
		_ = p.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
}
