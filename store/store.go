// Package store binds reactive cells to keyed external stores with a
// read-through/write-through contract: the initial value is read
// synchronously when the binding is created, every update is written
// back synchronously, and read or parse failures degrade to the default
// value and a log line, never an error surfaced to render logic.
package store

import (
	"log/slog"

	"github.com/odvcencio/tether/platform"
	"github.com/odvcencio/tether/state"
)

// Option configures a Bound cell.
type Option func(*options)

type options struct {
	codec Codec
	log   *slog.Logger
}

// WithCodec selects the serialization codec. Defaults to JSON.
func WithCodec(c Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithLogger sets the logger for swallowed read/write failures.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Bound is a reactive cell mirrored into one key of a KV store.
type Bound[T any] struct {
	kv    platform.KV
	key   string
	codec Codec
	log   *slog.Logger
	def   T
	sig   *state.Signal[T]
}

// Bind creates a cell over kv[key], seeded from the store. A missing or
// unparseable stored value seeds the cell with def. A nil kv yields a
// memory-only cell, so callers in storage-less environments still get a
// working cell rather than an error.
func Bind[T any](kv platform.KV, key string, def T, opts ...Option) *Bound[T] {
	o := options{codec: JSON, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	b := &Bound[T]{
		kv:    kv,
		key:   key,
		codec: o.codec,
		log:   o.log,
		def:   def,
	}
	b.sig = state.NewSignal(b.read())
	return b
}

// Get returns the current value.
func (b *Bound[T]) Get() T {
	if b == nil {
		var zero T
		return zero
	}
	return b.sig.Get()
}

// Set updates the cell and writes the value through to the store.
func (b *Bound[T]) Set(v T) {
	if b == nil {
		return
	}
	b.write(v)
	b.sig.Set(v)
}

// Update applies fn to the current value and writes the result through.
func (b *Bound[T]) Update(fn func(T) T) {
	if b == nil || fn == nil {
		return
	}
	b.Set(fn(b.sig.Get()))
}

// Clear deletes the stored key and resets the cell to the default.
func (b *Bound[T]) Clear() {
	if b == nil {
		return
	}
	if b.kv != nil {
		if err := b.kv.Delete(b.key); err != nil {
			b.log.Warn("store delete failed", "key", b.key, "err", err)
		}
	}
	b.sig.Set(b.def)
}

// Cell returns the cell for subscription.
func (b *Bound[T]) Cell() state.Readable[T] {
	if b == nil {
		return nil
	}
	return b.sig
}

func (b *Bound[T]) read() T {
	if b.kv == nil {
		return b.def
	}
	raw, ok := b.kv.Get(b.key)
	if !ok {
		return b.def
	}
	var v T
	if err := b.codec.Unmarshal([]byte(raw), &v); err != nil {
		b.log.Warn("store parse failed, using default", "key", b.key, "err", err)
		return b.def
	}
	return v
}

func (b *Bound[T]) write(v T) {
	if b.kv == nil {
		return
	}
	raw, err := b.codec.Marshal(v)
	if err != nil {
		b.log.Warn("store marshal failed", "key", b.key, "err", err)
		return
	}
	if err := b.kv.Set(b.key, string(raw)); err != nil {
		b.log.Warn("store write failed", "key", b.key, "err", err)
	}
}
