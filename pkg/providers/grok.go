package providers

import (
	"context"
	"fmt"

	"github.com/arenalabs/arena/pkg/aierrors"
)

const (
	defaultGrokURL   = "https://api.x.ai/v1/chat/completions"
	defaultGrokModel = "grok-2-latest"
)

// NewGrok creates an adapter for xAI's Grok. The API is wire-compatible
// with OpenAI chat completions, so only defaults and the name differ.
func NewGrok(_ context.Context, cfg Config) (Adapter, error) {
	if cfg.APIKey == "" {
		return nil, aierrors.New("grok", "create",
			fmt.Errorf("api key is required: %w", aierrors.ErrInvalidConfig))
	}
	cfg = cfg.withDefaults()
	if cfg.Model == "" {
		cfg.Model = defaultGrokModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGrokURL
	}
	return &OpenAIAdapter{name: "grok", cfg: cfg}, nil
}
