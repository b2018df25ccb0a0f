// Package netstatus reports connectivity by keeping a lightweight
// websocket session alive against a known endpoint. Connection
// transitions are dispatched as online/offline platform events, so
// watch.Online consumes a prober unchanged.
package netstatus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/coder/websocket"
	"github.com/sourcegraph/conc"

	"github.com/odvcencio/tether/platform"
)

const defaultPingInterval = 15 * time.Second

// Prober maintains the probe session.
type Prober struct {
	url      string
	interval time.Duration
	log      *slog.Logger
	hub      *platform.Hub

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      conc.WaitGroup
	running bool
}

// Option configures a Prober.
type Option func(*Prober)

// WithPingInterval sets the keepalive ping period.
func WithPingInterval(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the transition logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Prober) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a stopped prober against url.
func New(url string, opts ...Option) *Prober {
	p := &Prober{
		url:      url,
		interval: defaultPingInterval,
		log:      slog.New(slog.DiscardHandler),
		hub:      platform.NewHub(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Events returns the online/offline event source.
func (p *Prober) Events() platform.EventTarget {
	if p == nil {
		return nil
	}
	return p.hub
}

// Start launches the probe loop. A second Start while running is a
// no-op.
func (p *Prober) Start(ctx context.Context) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true
	p.mu.Unlock()

	p.wg.Go(func() { p.run(ctx) })
}

// Stop cancels the probe loop and waits for it to exit.
func (p *Prober) Stop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.running = false
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	p.wg.Wait()
}

// run keeps a single probe session alive until the context terminates,
// backing off exponentially between failed dials.
func (p *Prober) run(ctx context.Context) {
	backoffCfg := backoff.NewExponentialBackOff()
	backoffCfg.MaxInterval = time.Minute

	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.Dial(ctx, p.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.log.Debug("probe dial failed", "url", p.url, "err", err)
			p.hub.Dispatch(platform.Event{Type: platform.EventOffline})
			sleep := backoffCfg.NextBackOff()
			if sleep == backoff.Stop {
				sleep = time.Minute
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(sleep):
				continue
			}
		}

		backoffCfg.Reset()
		p.log.Debug("probe connected", "url", p.url)
		p.hub.Dispatch(platform.Event{Type: platform.EventOnline})

		p.keepalive(ctx, conn)
		_ = conn.CloseNow()

		if ctx.Err() != nil {
			return
		}
		p.log.Debug("probe lost connection", "url", p.url)
		p.hub.Dispatch(platform.Event{Type: platform.EventOffline})
	}
}

func (p *Prober) keepalive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.Ping(ctx); err != nil {
				return
			}
		}
	}
}
