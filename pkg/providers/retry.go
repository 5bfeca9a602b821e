package providers

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/arenalabs/arena/pkg/aierrors"
)

const (
	backoffMultiplier = 2.0
	jitterFactor      = 0.1
	maxBackoff        = 10 * time.Second
)

// withRetry runs op up to 1+maxRetries times, backing off between
// attempts. Only transient error classes are retried; auth and
// malformed-response failures return immediately, as does a done
// context. The per-call deadline lives in ctx, so retries never extend
// past it.
func withRetry(ctx context.Context, maxRetries int, op func() (string, error)) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", lastErr
			case <-time.After(backoff(attempt)):
			}
		}

		content, err := op()
		if err == nil {
			return content, nil
		}
		lastErr = err

		if !aierrors.Transient(err) {
			return "", err
		}
	}

	return "", lastErr
}

// backoff computes the delay before the given attempt with exponential
// growth and a little jitter to avoid thundering herds.
func backoff(attempt int) time.Duration {
	d := float64(retryDelay) * math.Pow(backoffMultiplier, float64(attempt-1))
	if d > float64(maxBackoff) {
		d = float64(maxBackoff)
	}
	d *= 1 + (rand.Float64()*2-1)*jitterFactor
	return time.Duration(d)
}
