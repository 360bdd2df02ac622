package crawl

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/docsnip"
	"golang.org/x/time/rate"
)

var _ docsnip.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRequestsPerSecond is the default per-host render rate.
const DefaultRequestsPerSecond = 1.0

// DomainLimiter spaces out renders against the same documentation host.
// Hosts are matched case-insensitively and each gets its own token bucket.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	every   rate.Limit
	burst   int
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst lets up to n renders per host start back to back before the
// rate applies. Defaults to 1.
func WithBurst(n int) LimiterOption {
	return func(d *DomainLimiter) {
		if n > 0 {
			d.burst = n
		}
	}
}

// NewDomainLimiter allows rps renders per second per host.
// A non-positive rps disables limiting.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		every:   rate.Limit(rps),
		burst:   1,
	}
	if rps <= 0 {
		d.every = rate.Inf
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until a render against host may start.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if err := d.bucket(host).Wait(ctx); err != nil {
		return fmt.Errorf("waiting for %s: %w", host, err)
	}
	return nil
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	key := strings.ToLower(host)

	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buckets[key]
	if !ok {
		b = rate.NewLimiter(d.every, d.burst)
		d.buckets[key] = b
	}
	return b
}
