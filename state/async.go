package state

// Async is the result shape published by bindings whose value arrives
// asynchronously or comes from an optional platform capability. Failures
// land in Err and missing capabilities clear Supported; neither is ever
// surfaced as a panic, so cells can be read unconditionally from render
// logic.
type Async[T any] struct {
	Data      T
	Err       error
	Loading   bool
	Supported bool
}

// AsyncLoading returns a supported, in-flight result.
func AsyncLoading[T any]() Async[T] {
	return Async[T]{Loading: true, Supported: true}
}

// AsyncValue returns a supported, settled result carrying v.
func AsyncValue[T any](v T) Async[T] {
	return Async[T]{Data: v, Supported: true}
}

// AsyncErr returns a supported, settled result carrying err.
// The previous data, if any, is dropped.
func AsyncErr[T any](err error) Async[T] {
	return Async[T]{Err: err, Supported: true}
}

// Unsupported marks the capability as absent in this environment.
func Unsupported[T any]() Async[T] {
	return Async[T]{}
}
