package watch

import (
	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Clipboard mirrors the last text copied through it. Write failures
// populate Err; an unavailable clipboard reports Supported=false.
type Clipboard struct {
	cb  platform.Clipboard
	sig *state.Signal[state.Async[string]]
}

// NewClipboard creates an adapter over cb.
func NewClipboard(cb platform.Clipboard) *Clipboard {
	c := &Clipboard{cb: cb, sig: state.NewSignal(state.Unsupported[string]())}
	if cb != nil && cb.Available() {
		c.sig.Set(state.Async[string]{Supported: true})
	}
	return c
}

// Copy writes text to the clipboard and records it in the cell.
func (c *Clipboard) Copy(text string) {
	if c == nil {
		return
	}
	if c.cb == nil || !c.cb.Available() {
		c.sig.Set(state.Unsupported[string]())
		return
	}
	if err := c.cb.Write(text); err != nil {
		c.sig.Set(state.AsyncErr[string](err))
		return
	}
	c.sig.Set(state.AsyncValue(text))
}

// Read returns the clipboard contents directly.
func (c *Clipboard) Read() (string, error) {
	if c == nil || c.cb == nil {
		return "", nil
	}
	return c.cb.Read()
}

// Cell returns the last-copied cell.
func (c *Clipboard) Cell() state.Readable[state.Async[string]] {
	if c == nil {
		return nil
	}
	return c.sig
}
