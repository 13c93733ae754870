package source

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDelay is the minimum spacing between requests to one host.
const DefaultDelay = 2 * time.Second

// Pacer enforces a minimum inter-request delay per external host. One
// limiter exists per host, so different hosts proceed independently while
// requests to the same host stay spaced apart. This is a politeness
// contract, not a correctness one, and it holds under both sequential and
// concurrent execution.
type Pacer struct {
	delay time.Duration

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewPacer creates a pacer with the given per-host delay. A non-positive
// delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{
		delay: delay,
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host is allowed, or the context is done.
func (p *Pacer) Wait(ctx context.Context, host string) error {
	return p.limiter(host).Wait(ctx)
}

func (p *Pacer) limiter(host string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.hosts[host]
	if !ok {
		limit := rate.Inf
		if p.delay > 0 {
			limit = rate.Every(p.delay)
		}
		l = rate.NewLimiter(limit, 1)
		p.hosts[host] = l
	}
	return l
}
