package compare

import (
	"context"
	"errors"
	"time"

	"github.com/arenalabs/arena/pkg/aierrors"
)

// Normalize converts one raw adapter outcome into a ModelResult. It is
// a pure function: same inputs, same result, no I/O. Model-generated
// text passes through verbatim; only the envelope changes.
func Normalize(modelID, content string, err error, latency time.Duration) ModelResult {
	result := ModelResult{
		ModelID:   modelID,
		LatencyMs: latency.Milliseconds(),
	}

	if err == nil {
		result.Status = StatusSucceeded
		result.Content = content
		return result
	}

	result.ErrorKind = aierrors.Kind(err)
	result.ErrorMessage = err.Error()

	if errors.Is(err, aierrors.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		result.Status = StatusTimedOut
	} else {
		result.Status = StatusFailed
	}
	return result
}
