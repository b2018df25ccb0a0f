// Package loader tracks the load status of shared keyed resources so
// that any number of bindings for the same key acquire it exactly once.
// Entries advance monotonically from loading to a terminal ready or
// error status and are never cleared; a binding activating against a key
// that is already terminal short-circuits to the cached status.
package loader

import (
	"log/slog"
	"sync"
)

// Status is the load state of a keyed resource.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

// Terminal reports whether no further transition can occur.
func (s Status) Terminal() bool {
	return s == StatusReady || s == StatusError
}

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the observable state of one keyed resource.
type Result struct {
	Status Status
	Err    error
}

// Registry is the shared key-to-status map. It is injectable so tests
// isolate instances; Default serves callers that share process scope.
type Registry struct {
	mu       sync.Mutex
	entries  map[string]Result
	watchers map[string]map[int]func(Result)
	next     int
	log      *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger for acquisition failures.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries:  make(map[string]Result),
		watchers: make(map[string]map[int]func(Result)),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default is the process-wide registry.
var Default = NewRegistry()

// Get returns the current status of a key.
func (r *Registry) Get(key string) Result {
	if r == nil {
		return Result{}
	}
	r.mu.Lock()
	res := r.entries[key]
	r.mu.Unlock()
	return res
}

// Begin moves an idle key to loading and reports whether the caller won
// the acquisition. Keys already loading or terminal report false, so
// only one acquisition per key is ever in flight.
func (r *Registry) Begin(key string) (Result, bool) {
	if r == nil {
		return Result{}, false
	}
	r.mu.Lock()
	res := r.entries[key]
	if res.Status != StatusIdle {
		r.mu.Unlock()
		return res, false
	}
	res = Result{Status: StatusLoading}
	r.entries[key] = res
	watchers := r.copyWatchersLocked(key)
	r.mu.Unlock()

	for _, fn := range watchers {
		fn(res)
	}
	return res, true
}

// Finish settles a key to ready or error. Terminal entries never
// regress: a Finish against an already terminal key is ignored.
func (r *Registry) Finish(key string, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if r.entries[key].Status.Terminal() {
		r.mu.Unlock()
		return
	}
	res := Result{Status: StatusReady}
	if err != nil {
		res = Result{Status: StatusError, Err: err}
	}
	r.entries[key] = res
	watchers := r.copyWatchersLocked(key)
	r.mu.Unlock()

	if err != nil {
		r.log.Warn("resource load failed", "key", key, "err", err)
	}
	for _, fn := range watchers {
		fn(res)
	}
}

// Watch registers fn for status changes on a key.
func (r *Registry) Watch(key string, fn func(Result)) (remove func()) {
	if r == nil || fn == nil {
		return func() {}
	}
	r.mu.Lock()
	if r.watchers[key] == nil {
		r.watchers[key] = make(map[int]func(Result))
	}
	id := r.next
	r.next++
	r.watchers[key][id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.watchers[key], id)
			r.mu.Unlock()
		})
	}
}

// Watchers returns the number of watchers on a key.
func (r *Registry) Watchers(key string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	n := len(r.watchers[key])
	r.mu.Unlock()
	return n
}

func (r *Registry) copyWatchersLocked(key string) []func(Result) {
	fns := make([]func(Result), 0, len(r.watchers[key]))
	for _, fn := range r.watchers[key] {
		fns = append(fns, fn)
	}
	return fns
}
