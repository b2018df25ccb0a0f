package fetch

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"github.com/sourcegraph/conc"

	"github.com/odvcencio/tether/bind"
	"github.com/odvcencio/tether/state"
)

// Call binds a cell to the decoded result of one HTTP request. Each
// Start supersedes the previous one: the in-flight request is cancelled,
// the attempt counter resets, and the new target is fetched with up to
// Retries immediate attempts. Late responses from a superseded or
// stopped activation never reach the cell.
type Call[T any] struct {
	binding bind.Binding
	client  *Client
	retries int
	sig     *state.Signal[state.Async[T]]
	wg      conc.WaitGroup

	mu       sync.Mutex
	attempts int
}

// CallOption configures a Call.
type CallOption func(*callOptions)

type callOptions struct {
	retries int
}

// WithRetries bounds the attempts per target. The default is a single
// attempt; failures retry immediately with no backoff until the bound
// is exhausted, then the final error is committed.
func WithRetries(n int) CallOption {
	return func(o *callOptions) {
		if n > 0 {
			o.retries = n
		}
	}
}

// NewCall creates a Call against client.
func NewCall[T any](client *Client, opts ...CallOption) *Call[T] {
	o := callOptions{retries: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return &Call[T]{
		client:  client,
		retries: o.retries,
		sig:     state.NewSignal(state.Async[T]{Supported: true}),
	}
}

// Start fetches req, replacing any in-flight fetch for a prior target.
func (c *Call[T]) Start(ctx context.Context, req Request) {
	if c == nil || c.client == nil {
		return
	}
	c.binding.Activate(func(g *bind.Guard) {
		c.mu.Lock()
		c.attempts = 0
		c.mu.Unlock()

		ctx, cancel := context.WithCancel(ctx)
		g.Cleanup(cancel)

		c.sig.Set(state.AsyncLoading[T]())

		id := ulid.Make().String()
		c.wg.Go(func() {
			c.run(ctx, g, id, req)
		})
	})
}

// Stop cancels the in-flight fetch, if any.
func (c *Call[T]) Stop() {
	if c == nil {
		return
	}
	c.binding.Deactivate()
}

// Wait blocks until spawned fetches have finished. Intended for shutdown
// and tests.
func (c *Call[T]) Wait() {
	if c == nil {
		return
	}
	c.wg.Wait()
}

// Attempts returns the attempt count for the current target.
func (c *Call[T]) Attempts() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	n := c.attempts
	c.mu.Unlock()
	return n
}

// Cell returns the result cell.
func (c *Call[T]) Cell() state.Readable[state.Async[T]] {
	if c == nil {
		return nil
	}
	return c.sig
}

func (c *Call[T]) run(ctx context.Context, g *bind.Guard, id string, req Request) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		c.mu.Lock()
		c.attempts = attempt
		c.mu.Unlock()

		data, err := c.client.do(ctx, req)
		if err != nil {
			lastErr = err
			c.client.log.Debug("fetch attempt failed",
				"id", id, "path", req.Path, "attempt", attempt, "err", err)
			if ctx.Err() != nil {
				return
			}
			continue
		}

		var value T
		if len(data) > 0 {
			if err := json.Unmarshal(data, &value); err != nil {
				lastErr = err
				c.client.log.Debug("fetch decode failed",
					"id", id, "path", req.Path, "attempt", attempt, "err", err)
				continue
			}
		}
		g.Commit(func() { c.sig.Set(state.AsyncValue(value)) })
		return
	}
	g.Commit(func() { c.sig.Set(state.AsyncErr[T](lastErr)) })
}
