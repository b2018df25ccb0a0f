package platform

import "sync"

// Clipboard is an optional text clipboard capability.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
	Available() bool
}

// MemoryClipboard is an in-process clipboard. A nil receiver behaves as
// an empty clipboard, so callers need not guard.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// Read returns the stored text.
func (c *MemoryClipboard) Read() (string, error) {
	if c == nil {
		return "", nil
	}
	c.mu.Lock()
	text := c.text
	c.mu.Unlock()
	return text, nil
}

// Write stores text.
func (c *MemoryClipboard) Write(text string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	return nil
}

// Available reports true; the memory clipboard always works.
func (c *MemoryClipboard) Available() bool { return true }

// UnavailableClipboard reports the capability as absent. Reads and writes
// are silent no-ops.
type UnavailableClipboard struct{}

// Read returns an empty string.
func (UnavailableClipboard) Read() (string, error) { return "", nil }

// Write discards the text.
func (UnavailableClipboard) Write(string) error { return nil }

// Available reports false.
func (UnavailableClipboard) Available() bool { return false }
