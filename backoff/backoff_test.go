package backoff_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forgeads/forgeads"
	"github.com/forgeads/forgeads/backoff"
	"github.com/forgeads/forgeads/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flaky fails with errs in order, then succeeds.
func flaky(calls *int, errs ...error) *mock.TextGenerator {
	return &mock.TextGenerator{
		GenerateFn: func(context.Context, *forgeads.GenerateRequest) (string, error) {
			*calls++
			if *calls <= len(errs) {
				return "", errs[*calls-1]
			}
			return "ok", nil
		},
	}
}

func fast(opts ...backoff.Option) []backoff.Option {
	return append([]backoff.Option{backoff.WithInitialInterval(time.Millisecond)}, opts...)
}

func TestTextGenerator_Generate(t *testing.T) {
	t.Parallel()

	upstream := forgeads.Errorf(forgeads.EUPSTREAM, "model overloaded")

	t.Run("retries collaborator failures", func(t *testing.T) {
		t.Parallel()

		var calls int
		g := backoff.NewTextGenerator(flaky(&calls, upstream, upstream), fast()...)

		text, err := g.Generate(context.Background(), &forgeads.GenerateRequest{})

		require.NoError(t, err)
		assert.Equal(t, "ok", text)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		t.Parallel()

		var calls int
		g := backoff.NewTextGenerator(flaky(&calls, upstream, upstream, upstream), fast(backoff.WithMaxRetries(1))...)

		_, err := g.Generate(context.Background(), &forgeads.GenerateRequest{})

		require.Error(t, err)
		assert.Equal(t, forgeads.EUPSTREAM, forgeads.ErrorCode(err))
		assert.Equal(t, 2, calls)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		t.Parallel()

		var calls int
		invalid := forgeads.Errorf(forgeads.EINVALID, "empty prompt")
		g := backoff.NewTextGenerator(flaky(&calls, invalid), fast()...)

		_, err := g.Generate(context.Background(), &forgeads.GenerateRequest{})

		assert.Equal(t, invalid, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("does not retry plain errors", func(t *testing.T) {
		t.Parallel()

		var calls int
		g := backoff.NewTextGenerator(flaky(&calls, errors.New("boom")), fast()...)

		_, err := g.Generate(context.Background(), &forgeads.GenerateRequest{})

		assert.EqualError(t, err, "boom")
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var calls int
		inner := &mock.TextGenerator{
			GenerateFn: func(context.Context, *forgeads.GenerateRequest) (string, error) {
				calls++
				cancel()
				return "", upstream
			},
		}
		g := backoff.NewTextGenerator(inner, backoff.WithInitialInterval(time.Hour))

		_, err := g.Generate(ctx, &forgeads.GenerateRequest{})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("notifies before each retry", func(t *testing.T) {
		t.Parallel()

		var calls int
		var notified []error
		g := backoff.NewTextGenerator(flaky(&calls, upstream), fast(backoff.WithNotify(func(err error, _ time.Duration) {
			notified = append(notified, err)
		}))...)

		_, err := g.Generate(context.Background(), &forgeads.GenerateRequest{})

		require.NoError(t, err)
		assert.Equal(t, []error{upstream}, notified)
	})
}

func TestImageGenerator_GenerateImage(t *testing.T) {
	t.Parallel()

	var calls int
	inner := &mock.ImageGenerator{
		GenerateImageFn: func(context.Context, string) (string, error) {
			calls++
			if calls == 1 {
				return "", forgeads.Errorf(forgeads.EUPSTREAM, "no image returned")
			}
			return "data:image/png;base64,AAAA", nil
		},
	}
	g := backoff.NewImageGenerator(inner, backoff.WithInitialInterval(time.Millisecond))

	url, err := g.GenerateImage(context.Background(), "foto")

	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", url)
	assert.Equal(t, 2, calls)
}
