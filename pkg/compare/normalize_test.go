package compare

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenalabs/arena/pkg/aierrors"
)

func TestNormalize_Success(t *testing.T) {
	result := Normalize("model-a", "the answer", nil, 125*time.Millisecond)

	assert.Equal(t, ModelResult{
		ModelID:   "model-a",
		Status:    StatusSucceeded,
		Content:   "the answer",
		LatencyMs: 125,
	}, result)
}

// Model-generated text must pass through verbatim, whitespace and all.
func TestNormalize_ContentVerbatim(t *testing.T) {
	content := "  line one\n\n\tline two  \n$$x^2$$\n"
	result := Normalize("m", content, nil, 0)
	assert.Equal(t, content, result.Content)
}

func TestNormalize_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus Status
		wantKind   string
	}{
		{"timeout sentinel", fmt.Errorf("call: %w", aierrors.ErrTimeout), StatusTimedOut, aierrors.KindTimeout},
		{"deadline exceeded", context.DeadlineExceeded, StatusTimedOut, aierrors.KindTimeout},
		{"auth", fmt.Errorf("call: %w", aierrors.ErrAuthentication), StatusFailed, aierrors.KindAuth},
		{"rate limited", fmt.Errorf("call: %w", aierrors.ErrRateLimited), StatusFailed, aierrors.KindRateLimited},
		{"server", fmt.Errorf("call: %w", aierrors.ErrServer), StatusFailed, aierrors.KindServer},
		{"malformed", fmt.Errorf("call: %w", aierrors.ErrMalformedResponse), StatusFailed, aierrors.KindMalformedResponse},
		{"network", fmt.Errorf("call: %w", aierrors.ErrNetwork), StatusFailed, aierrors.KindNetwork},
		{"unclassified", fmt.Errorf("something odd"), StatusFailed, aierrors.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize("m", "", tt.err, 10*time.Millisecond)

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantKind, result.ErrorKind)
			assert.NotEmpty(t, result.ErrorMessage)
			assert.Empty(t, result.Content)
		})
	}
}

// Wrapping through a ProviderError must not defeat classification.
func TestNormalize_WrappedProviderError(t *testing.T) {
	err := aierrors.New("anthropic", "submit",
		fmt.Errorf("status 429: %w", aierrors.ErrRateLimited))

	result := Normalize("m", "", err, 0)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, aierrors.KindRateLimited, result.ErrorKind)
}

// Same inputs, bit-identical output: Normalize holds no hidden state.
func TestNormalize_Idempotent(t *testing.T) {
	err := fmt.Errorf("call: %w", aierrors.ErrServer)

	first := Normalize("model-a", "content", nil, 42*time.Millisecond)
	second := Normalize("model-a", "content", nil, 42*time.Millisecond)
	require.Equal(t, first, second)

	firstErr := Normalize("model-a", "", err, 42*time.Millisecond)
	secondErr := Normalize("model-a", "", err, 42*time.Millisecond)
	require.Equal(t, firstErr, secondErr)
}
