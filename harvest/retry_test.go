package harvest_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docharvest"
	"github.com/fwojciec/docharvest/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays_FirstAttemptSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(ctx context.Context, url string) (string, error) {
		calls++
		return "<html>ok</html>", nil
	}

	html, err := harvest.FetchWithRetryDelays(context.Background(), "https://example.com", fetch,
		[]time.Duration{time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", html)
	assert.Equal(t, 1, calls)
}

func TestFetchWithRetryDelays_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(ctx context.Context, url string) (string, error) {
		calls++
		if calls < 3 {
			return "", docharvest.Errorf(docharvest.EUNAVAILABLE, "navigation timeout")
		}
		return "<html>ok</html>", nil
	}

	html, err := harvest.FetchWithRetryDelays(context.Background(), "https://example.com", fetch,
		[]time.Duration{time.Millisecond, time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", html)
	assert.Equal(t, 3, calls)
}

func TestFetchWithRetryDelays_ExhaustsRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(ctx context.Context, url string) (string, error) {
		calls++
		return "", docharvest.Errorf(docharvest.EUNAVAILABLE, "navigation timeout")
	}

	_, err := harvest.FetchWithRetryDelays(context.Background(), "https://example.com", fetch,
		[]time.Duration{time.Millisecond, time.Millisecond})
	assert.Equal(t, docharvest.EUNAVAILABLE, docharvest.ErrorCode(err))
	assert.Equal(t, 3, calls)
}

func TestFetchWithRetryDelays_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	fetch := func(ctx context.Context, url string) (string, error) {
		cancel()
		return "", docharvest.Errorf(docharvest.EUNAVAILABLE, "navigation timeout")
	}

	_, err := harvest.FetchWithRetryDelays(ctx, "https://example.com", fetch,
		[]time.Duration{time.Minute})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDomainLimiter_SeparateDomains(t *testing.T) {
	t.Parallel()

	limiter := harvest.NewDomainLimiter(1000)

	for _, domain := range []string{"a.example.com", "b.example.com", "a.example.com"} {
		require.NoError(t, limiter.Wait(context.Background(), domain))
	}
}

func TestDomainLimiter_CanceledContext(t *testing.T) {
	t.Parallel()

	limiter := harvest.NewDomainLimiter(0.001)
	require.NoError(t, limiter.Wait(context.Background(), "example.com"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, limiter.Wait(ctx, "example.com"))
}
