package providers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenalabs/arena/pkg/aierrors"
)

func fastRetries(t *testing.T) {
	t.Helper()
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })
}

func TestWithRetry_TransientThenSuccess(t *testing.T) {
	fastRetries(t)

	attempts := 0
	content, err := withRetry(context.Background(), 2, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", fmt.Errorf("attempt %d: %w", attempts, aierrors.ErrRateLimited)
		}
		return "finally", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "finally", content)
	assert.Equal(t, 3, attempts)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	fastRetries(t)

	attempts := 0
	_, err := withRetry(context.Background(), 2, func() (string, error) {
		attempts++
		return "", fmt.Errorf("down: %w", aierrors.ErrServer)
	})

	require.ErrorIs(t, err, aierrors.ErrServer)
	assert.Equal(t, 3, attempts, "1 initial + 2 retries")
}

// Auth, bad-request, and malformed-response failures must not be retried.
func TestWithRetry_NonTransientReturnsImmediately(t *testing.T) {
	fastRetries(t)

	for _, sentinel := range []error{aierrors.ErrAuthentication, aierrors.ErrBadRequest, aierrors.ErrMalformedResponse} {
		attempts := 0
		_, err := withRetry(context.Background(), 5, func() (string, error) {
			attempts++
			return "", fmt.Errorf("nope: %w", sentinel)
		})

		require.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, attempts)
	}
}

func TestWithRetry_StopsWhenContextDone(t *testing.T) {
	old := retryDelay
	retryDelay = time.Hour // backoff would block forever without the ctx check
	t.Cleanup(func() { retryDelay = old })

	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	done := make(chan error, 1)
	go func() {
		_, err := withRetry(ctx, 3, func() (string, error) {
			attempts++
			return "", fmt.Errorf("flaky: %w", aierrors.ErrNetwork)
		})
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, aierrors.ErrNetwork)
		assert.Equal(t, 1, attempts)
	case <-time.After(time.Second):
		t.Fatal("retry loop did not observe context cancellation")
	}
}

func TestWithRetry_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	attempts := 0
	_, err := withRetry(context.Background(), 0, func() (string, error) {
		attempts++
		return "", fmt.Errorf("down: %w", aierrors.ErrServer)
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
