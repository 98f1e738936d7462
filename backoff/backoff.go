// Package backoff retries transient collaborator failures with
// exponential backoff.
//
// Only EUPSTREAM failures are retried. Every other error, including
// context cancellation, is returned after the first attempt.
package backoff

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/forgeads/forgeads"
)

// Compile-time interface verification.
var (
	_ forgeads.TextGenerator  = (*TextGenerator)(nil)
	_ forgeads.ImageGenerator = (*ImageGenerator)(nil)
)

// Retry defaults: 1s, 2s, 4s between four attempts.
const (
	DefaultMaxRetries      = 3
	DefaultInitialInterval = time.Second
	DefaultMaxInterval     = 8 * time.Second
)

// Option configures retries.
type Option func(*policy)

// WithMaxRetries sets the number of retries after the first attempt.
func WithMaxRetries(n uint64) Option {
	return func(p *policy) {
		p.maxRetries = n
	}
}

// WithInitialInterval sets the delay before the first retry. Each later
// delay doubles, capped at DefaultMaxInterval.
func WithInitialInterval(d time.Duration) Option {
	return func(p *policy) {
		p.initial = d
	}
}

// WithNotify sets a function called before every retry with the failed
// attempt's error and the delay until the next one.
func WithNotify(fn func(err error, next time.Duration)) Option {
	return func(p *policy) {
		p.notify = fn
	}
}

type policy struct {
	maxRetries uint64
	initial    time.Duration
	notify     backoff.Notify
}

func newPolicy(opts []Option) policy {
	p := policy{
		maxRetries: DefaultMaxRetries,
		initial:    DefaultInitialInterval,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p policy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initial
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = max(DefaultMaxInterval, p.initial)
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, p.maxRetries), ctx)
}

// permanent marks every error that is not a collaborator failure as not
// worth retrying.
func permanent(err error) error {
	if err == nil || forgeads.ErrorCode(err) == forgeads.EUPSTREAM {
		return err
	}
	return backoff.Permanent(err)
}

func retry[T any](ctx context.Context, p policy, op func() (T, error)) (T, error) {
	return backoff.RetryNotifyWithData(func() (T, error) {
		v, err := op()
		return v, permanent(err)
	}, p.backOff(ctx), p.notify)
}

// TextGenerator retries a TextGenerator.
type TextGenerator struct {
	next   forgeads.TextGenerator
	policy policy
}

// NewTextGenerator wraps next with retries.
func NewTextGenerator(next forgeads.TextGenerator, opts ...Option) *TextGenerator {
	return &TextGenerator{next: next, policy: newPolicy(opts)}
}

// Generate calls the wrapped generator until it succeeds, fails with a
// non-retryable error, or the retries are spent.
func (g *TextGenerator) Generate(ctx context.Context, req *forgeads.GenerateRequest) (string, error) {
	return retry(ctx, g.policy, func() (string, error) {
		return g.next.Generate(ctx, req)
	})
}

// ImageGenerator retries an ImageGenerator.
type ImageGenerator struct {
	next   forgeads.ImageGenerator
	policy policy
}

// NewImageGenerator wraps next with retries.
func NewImageGenerator(next forgeads.ImageGenerator, opts ...Option) *ImageGenerator {
	return &ImageGenerator{next: next, policy: newPolicy(opts)}
}

// GenerateImage calls the wrapped generator with the same retry rule as
// TextGenerator.Generate.
func (g *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return retry(ctx, g.policy, func() (string, error) {
		return g.next.GenerateImage(ctx, prompt)
	})
}
