// Package throttle throttles calls to collaborators with token buckets.
package throttle

import (
	"context"
	"net/url"
	"sync"

	"github.com/forgeads/forgeads"
	"golang.org/x/time/rate"
)

// Compile-time interface verification.
var (
	_ forgeads.Fetcher        = (*Fetcher)(nil)
	_ forgeads.TextGenerator  = (*TextGenerator)(nil)
	_ forgeads.ImageGenerator = (*ImageGenerator)(nil)
)

// HostLimiter provides per-host rate limiting. Each host gets its own
// token bucket with a burst of 1, so requests to different hosts do not
// wait on each other.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second
// to each host. A non-positive rps is unlimited.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}

// limit converts rps to a rate limit. Zero or less means no limit.
func limit(rps float64) rate.Limit {
	if rps <= 0 {
		return rate.Inf
	}
	return rate.Limit(rps)
}

// Fetcher limits fetches per host.
type Fetcher struct {
	next    forgeads.Fetcher
	limiter *HostLimiter
}

// NewFetcher wraps next so each host is fetched at most rps times per
// second.
func NewFetcher(next forgeads.Fetcher, rps float64) *Fetcher {
	return &Fetcher{next: next, limiter: NewHostLimiter(rps)}
}

// Fetch waits for the URL host's turn and delegates. Unparseable URLs
// are passed through for the wrapped fetcher to reject.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	var host string
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}
	if err := f.limiter.Wait(ctx, host); err != nil {
		return "", err
	}
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}

// TextGenerator limits generation requests. Concurrent copy requests
// share the one limiter.
type TextGenerator struct {
	next    forgeads.TextGenerator
	limiter *rate.Limiter
}

// NewTextGenerator wraps next with a limit of rps requests per second
// and the given burst.
func NewTextGenerator(next forgeads.TextGenerator, rps float64, burst int) *TextGenerator {
	return &TextGenerator{next: next, limiter: rate.NewLimiter(limit(rps), burst)}
}

func (g *TextGenerator) Generate(ctx context.Context, req *forgeads.GenerateRequest) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return g.next.Generate(ctx, req)
}

// ImageGenerator limits image requests.
type ImageGenerator struct {
	next    forgeads.ImageGenerator
	limiter *rate.Limiter
}

// NewImageGenerator wraps next with a limit of rps requests per second.
func NewImageGenerator(next forgeads.ImageGenerator, rps float64) *ImageGenerator {
	return &ImageGenerator{next: next, limiter: rate.NewLimiter(limit(rps), 1)}
}

func (g *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return g.next.GenerateImage(ctx, prompt)
}
