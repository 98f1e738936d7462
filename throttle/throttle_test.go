package throttle_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/forgeads/forgeads"
	"github.com/forgeads/forgeads/mock"
	"github.com/forgeads/forgeads/throttle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("non-positive rate never waits", func(t *testing.T) {
		t.Parallel()

		limiter := throttle.NewHostLimiter(0)

		start := time.Now()
		for range 5 {
			require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("allows immediate first request", func(t *testing.T) {
		t.Parallel()

		limiter := throttle.NewHostLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("limits requests to same host", func(t *testing.T) {
		t.Parallel()

		limiter := throttle.NewHostLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("keeps hosts independent", func(t *testing.T) {
		t.Parallel()

		limiter := throttle.NewHostLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "other.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := throttle.NewHostLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "example.com"))
	})

	t.Run("serializes concurrent requests", func(t *testing.T) {
		t.Parallel()

		limiter := throttle.NewHostLimiter(100)
		var wg sync.WaitGroup
		var completed atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Wait(context.Background(), "example.com") == nil {
					completed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(5), completed.Load())
	})
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("delegates to wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>" + url + "</html>", nil
			},
		}

		html, err := throttle.NewFetcher(inner, 10).Fetch(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "<html>https://example.com/a</html>", html)
	})

	t.Run("does not call wrapped fetcher when context is done", func(t *testing.T) {
		t.Parallel()

		var calls int
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "", nil
			},
		}
		f := throttle.NewFetcher(inner, 0.1)
		_, err := f.Fetch(context.Background(), "https://example.com/a")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = f.Fetch(ctx, "https://example.com/b")

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
	t.Run("zero rate is unlimited", func(t *testing.T) {
		t.Parallel()

		var calls int
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "<html></html>", nil
			},
		}
		f := throttle.NewFetcher(inner, 0)

		for range 3 {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			_, err := f.Fetch(ctx, "https://example.com/")
			cancel()
			require.NoError(t, err)
		}
		assert.Equal(t, 3, calls)
	})
}

func TestTextGenerator_Generate(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	inner := &mock.TextGenerator{
		GenerateFn: func(context.Context, *forgeads.GenerateRequest) (string, error) {
			calls.Add(1)
			return "ok", nil
		},
	}
	g := throttle.NewTextGenerator(inner, 1, 3)

	start := time.Now()
	for range 3 {
		_, err := g.Generate(context.Background(), &forgeads.GenerateRequest{})
		require.NoError(t, err)
	}

	assert.Less(t, time.Since(start), 100*time.Millisecond, "burst should not wait")
	assert.EqualValues(t, 3, calls.Load())
}

func TestImageGenerator_GenerateImage(t *testing.T) {
	t.Parallel()

	inner := &mock.ImageGenerator{
		GenerateImageFn: func(context.Context, string) (string, error) {
			return "data:image/png;base64,AAAA", nil
		},
	}
	g := throttle.NewImageGenerator(inner, 0.1)
	_, err := g.GenerateImage(context.Background(), "foto")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = g.GenerateImage(ctx, "foto")

	assert.Error(t, err)
}
