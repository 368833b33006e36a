package extract_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/enrich/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDelays is used for fast unit tests.
var noDelays = []time.Duration{0, 0}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "<html>content</html>", nil
		}

		html, err := extract.FetchWithRetryDelays(context.Background(), "https://example.com", fetcher, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries on failure and succeeds", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("transient error")
			}
			return "<html>success</html>", nil
		}

		html, err := extract.FetchWithRetryDelays(context.Background(), "https://example.com", fetcher, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html>success</html>", html)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns last error after max attempts", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", errors.New("persistent error")
		}

		_, err := extract.FetchWithRetryDelays(context.Background(), "https://example.com", fetcher, nil, noDelays)

		require.Error(t, err)
		assert.Equal(t, "persistent error", err.Error())
		assert.Equal(t, 3, attempts)
	})

	t.Run("does not retry a non-HTML result", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", nil
		}

		html, err := extract.FetchWithRetryDelays(context.Background(), "https://example.com", fetcher, nil, noDelays)

		require.NoError(t, err)
		assert.Empty(t, html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("makes a single attempt without delays", func(t *testing.T) {
		t.Parallel()

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			return "", errors.New("persistent error")
		}

		_, err := extract.FetchWithRetryDelays(context.Background(), "https://example.com", fetcher, nil, []time.Duration{})

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var attempts int
		fetcher := func(ctx context.Context, url string) (string, error) {
			attempts++
			cancel()
			return "", errors.New("transient error")
		}

		_, err := extract.FetchWithRetryDelays(ctx, "https://example.com", fetcher, nil, noDelays)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops waiting when context is canceled during backoff", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		fetcher := func(ctx context.Context, url string) (string, error) {
			return "", errors.New("transient error")
		}

		start := time.Now()
		_, err := extract.FetchWithRetryDelays(ctx, "https://example.com", fetcher, nil, []time.Duration{time.Minute})

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("logs each retry with its attempt number", func(t *testing.T) {
		t.Parallel()

		fetcher := func(ctx context.Context, url string) (string, error) {
			return "", errors.New("transient error")
		}

		var logs []string
		logger := func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		}

		_, _ = extract.FetchWithRetryDelays(context.Background(), "https://example.com/page", fetcher, logger, noDelays)

		assert.Equal(t, []string{
			"retry https://example.com/page (attempt 2): transient error",
			"retry https://example.com/page (attempt 3): transient error",
		}, logs)
	})
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, extract.DefaultRetryDelays())
}
