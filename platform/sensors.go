package platform

import (
	"context"
	"sync"
)

// Position is a geolocation fix.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

// Geolocator streams position fixes. Watch delivers either a fix or an
// acquisition error (permission denied, no signal); stop detaches the
// watcher synchronously.
type Geolocator interface {
	Watch(fn func(Position, error)) (stop func())
}

// BatteryStatus is a point-in-time battery reading.
type BatteryStatus struct {
	Level    float64
	Charging bool
}

// BatteryMeter reports battery state and streams changes.
type BatteryMeter interface {
	Status() (BatteryStatus, error)
	Watch(fn func(BatteryStatus)) (stop func())
}

// MediaQuerier evaluates media queries and streams match changes.
type MediaQuerier interface {
	Matches(query string) bool
	Watch(query string, fn func(matched bool)) (stop func())
}

// Speaker is a speech-synthesis capability. Speak blocks until the
// utterance completes, the context is cancelled, or Cancel is called.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Cancel()
}

// SimGeolocator is a scriptable Geolocator for tests.
type SimGeolocator struct {
	mu       sync.Mutex
	watchers map[int]func(Position, error)
	next     int
}

// Watch registers fn for position updates.
func (g *SimGeolocator) Watch(fn func(Position, error)) func() {
	if g == nil || fn == nil {
		return func() {}
	}
	g.mu.Lock()
	if g.watchers == nil {
		g.watchers = make(map[int]func(Position, error))
	}
	id := g.next
	g.next++
	g.watchers[id] = fn
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.watchers, id)
			g.mu.Unlock()
		})
	}
}

// Move delivers a fix to all watchers.
func (g *SimGeolocator) Move(pos Position) { g.deliver(pos, nil) }

// Fail delivers an acquisition error to all watchers.
func (g *SimGeolocator) Fail(err error) { g.deliver(Position{}, err) }

// Watchers returns the number of attached watchers.
func (g *SimGeolocator) Watchers() int {
	if g == nil {
		return 0
	}
	g.mu.Lock()
	n := len(g.watchers)
	g.mu.Unlock()
	return n
}

func (g *SimGeolocator) deliver(pos Position, err error) {
	if g == nil {
		return
	}
	g.mu.Lock()
	fns := make([]func(Position, error), 0, len(g.watchers))
	for _, fn := range g.watchers {
		fns = append(fns, fn)
	}
	g.mu.Unlock()
	for _, fn := range fns {
		fn(pos, err)
	}
}

// SimBattery is a scriptable BatteryMeter for tests.
type SimBattery struct {
	mu       sync.Mutex
	status   BatteryStatus
	err      error
	watchers map[int]func(BatteryStatus)
	next     int
}

// SetStatus updates the reading and notifies watchers.
func (b *SimBattery) SetStatus(s BatteryStatus) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.status = s
	fns := make([]func(BatteryStatus), 0, len(b.watchers))
	for _, fn := range b.watchers {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// SetError makes Status return err.
func (b *SimBattery) SetError(err error) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.err = err
	b.mu.Unlock()
}

// Status returns the current reading.
func (b *SimBattery) Status() (BatteryStatus, error) {
	if b == nil {
		return BatteryStatus{}, nil
	}
	b.mu.Lock()
	s, err := b.status, b.err
	b.mu.Unlock()
	return s, err
}

// Watch registers fn for status changes.
func (b *SimBattery) Watch(fn func(BatteryStatus)) func() {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	if b.watchers == nil {
		b.watchers = make(map[int]func(BatteryStatus))
	}
	id := b.next
	b.next++
	b.watchers[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.watchers, id)
			b.mu.Unlock()
		})
	}
}

// SimMedia is a scriptable MediaQuerier for tests.
type SimMedia struct {
	mu       sync.Mutex
	matches  map[string]bool
	watchers map[string]map[int]func(bool)
	next     int
}

// SetMatch updates a query result and notifies its watchers.
func (m *SimMedia) SetMatch(query string, matched bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	if m.matches == nil {
		m.matches = make(map[string]bool)
	}
	m.matches[query] = matched
	fns := make([]func(bool), 0, len(m.watchers[query]))
	for _, fn := range m.watchers[query] {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(matched)
	}
}

// Matches returns the current result for a query.
func (m *SimMedia) Matches(query string) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	matched := m.matches[query]
	m.mu.Unlock()
	return matched
}

// Watch registers fn for match changes on a query.
func (m *SimMedia) Watch(query string, fn func(bool)) func() {
	if m == nil || fn == nil {
		return func() {}
	}
	m.mu.Lock()
	if m.watchers == nil {
		m.watchers = make(map[string]map[int]func(bool))
	}
	if m.watchers[query] == nil {
		m.watchers[query] = make(map[int]func(bool))
	}
	id := m.next
	m.next++
	m.watchers[query][id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.watchers[query], id)
			m.mu.Unlock()
		})
	}
}
