// Package resilience provides fault-tolerance patterns:
// retry with exponential backoff, circuit breaker, and bulkhead.
package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/domain"
)

// Config holds resilience parameters.
type Config struct {
	MaxRetries     int
	InitialBackoff time.Duration
	// MaxBackoff caps the per-attempt wait. Dashboard requests are
	// interactive; waiting longer than this is worse than failing.
	MaxBackoff     time.Duration
	MaxConcurrency int
}

const defaultMaxBackoff = 2 * time.Second

// permanent reports whether the backend has already given a definitive
// answer that a retry cannot change.
func permanent(err error) bool {
	var notFound *domain.ErrNotFound
	var unauthorized *domain.ErrUnauthorized
	var validation *domain.ErrValidation
	return errors.As(err, &notFound) ||
		errors.As(err, &unauthorized) ||
		errors.As(err, &validation)
}

// RetryWithBackoff executes fn with capped exponential backoff + jitter.
// It respects context cancellation and gives up immediately on errors a
// retry cannot change (not-found, auth rejection, validation).
func RetryWithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	maxBackoff := cfg.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = defaultMaxBackoff
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if permanent(lastErr) {
			return lastErr
		}

		if attempt < cfg.MaxRetries {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * cfg.InitialBackoff
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			jitter := time.Duration(rand.Int63n(int64(backoff/2) + 1))
			wait := backoff + jitter

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return lastErr
}

// NewCircuitBreaker creates a circuit breaker tuned for one interactive
// backend: probe again quickly, a stuck-open breaker blanks the whole
// dashboard.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,                // half-open: allow 2 probes
		Interval:    30 * time.Second, // closed: reset counters every 30s
		Timeout:     5 * time.Second,  // open -> half-open after 5s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
	})
}

// Bulkhead limits concurrent access to a resource.
type Bulkhead struct {
	sem chan struct{}
}

// NewBulkhead creates a bulkhead with the given max concurrency.
func NewBulkhead(maxConcurrency int) *Bulkhead {
	return &Bulkhead{sem: make(chan struct{}, maxConcurrency)}
}

// Acquire blocks until a slot is available or context is cancelled.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot.
func (b *Bulkhead) Release() {
	<-b.sem
}

// Guard layers the three patterns around a single downstream dependency:
// bulkhead on the outside, then circuit breaker, then retry.
type Guard struct {
	cfg Config
	cb  *gobreaker.CircuitBreaker
	bh  *Bulkhead
}

// NewGuard builds a Guard for the named dependency.
func NewGuard(name string, cfg Config) *Guard {
	return &Guard{
		cfg: cfg,
		cb:  NewCircuitBreaker(name),
		bh:  NewBulkhead(cfg.MaxConcurrency),
	}
}

// Execute runs fn under the bulkhead, circuit breaker, and retry policy.
func (g *Guard) Execute(ctx context.Context, fn func() error) error {
	if err := g.bh.Acquire(ctx); err != nil {
		return err
	}
	defer g.bh.Release()

	_, err := g.cb.Execute(func() (any, error) {
		return nil, RetryWithBackoff(ctx, g.cfg, fn)
	})
	return err
}
