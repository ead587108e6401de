package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config describes a token bucket.
type Config struct {
	Capacity       int
	RefillRate     int
	RefillInterval time.Duration
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %s", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Store keeps bucket state per key.
type Store interface {
	// ConsumeTokens refills the bucket of key and takes tokens from it when
	// enough are available. It returns whether the tokens were taken, the
	// tokens left and the time of the next refill.
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (ok bool, remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// Result reports the outcome of an Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	allowed   bool
	now       time.Time
}

func (r Result) Allowed() bool { return r.allowed }

// RetryAfter is how long a rejected caller should wait. Zero when allowed.
func (r Result) RetryAfter() time.Duration {
	if r.allowed {
		return 0
	}
	return max(r.ResetAt.Sub(r.now), 0)
}

// Bucket is a token bucket limiter.
type Bucket struct {
	store Store
	cfg   Config
	now   func() time.Time
}

type BucketOption func(*Bucket)

// WithClock replaces time.Now for RetryAfter calculations.
func WithClock(now func() time.Time) BucketOption {
	return func(b *Bucket) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBucket creates a limiter backed by store.
func NewBucket(store Store, cfg Config, opts ...BucketOption) (*Bucket, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	b := &Bucket{store: store, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Allow consumes one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens for key.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 || n > b.cfg.Capacity {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTokenCount, n)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	ok, remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.cfg)
	if err != nil {
		return Result{}, fmt.Errorf("ratelimiter: consume tokens: %w", err)
	}
	return Result{
		Limit:     b.cfg.Capacity,
		Remaining: remaining,
		ResetAt:   resetAt,
		allowed:   ok,
		now:       b.now(),
	}, nil
}

// Reset clears the bucket of key.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}
