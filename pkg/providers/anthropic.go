package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arenalabs/arena/pkg/aierrors"
	"github.com/arenalabs/arena/pkg/httputil"
)

const (
	defaultAnthropicURL   = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel = "claude-3-5-sonnet-20240620"
	anthropicVersion      = "2023-06-01"
)

// AnthropicAdapter talks to Anthropic's Messages API.
type AnthropicAdapter struct {
	cfg Config
}

// NewAnthropic creates an Anthropic adapter from explicit configuration.
func NewAnthropic(_ context.Context, cfg Config) (Adapter, error) {
	if cfg.APIKey == "" {
		return nil, aierrors.New("anthropic", "create",
			fmt.Errorf("api key is required: %w", aierrors.ErrInvalidConfig))
	}
	cfg = cfg.withDefaults()
	if cfg.Model == "" {
		cfg.Model = defaultAnthropicModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAnthropicURL
	}
	return &AnthropicAdapter{cfg: cfg}, nil
}

// Name returns the provider name
func (a *AnthropicAdapter) Name() string {
	return "anthropic"
}

// Model returns the configured model
func (a *AnthropicAdapter) Model() string {
	return a.cfg.Model
}

// Submit sends the prompt and returns the response text verbatim.
func (a *AnthropicAdapter) Submit(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"model": a.cfg.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  a.cfg.MaxTokens,
		"temperature": *a.cfg.Temperature,
	}

	details := httputil.RequestDetails{
		URL:         a.cfg.BaseURL,
		RequestBody: requestBody,
		AdditionalHeaders: map[string]string{
			"x-api-key":         a.cfg.APIKey,
			"anthropic-version": anthropicVersion,
		},
	}

	content, err := withRetry(ctx, a.cfg.MaxRetries, func() (string, error) {
		body, err := httputil.Post(ctx, details)
		if err != nil {
			return "", err
		}
		return parseAnthropicResponse(body)
	})
	if err != nil {
		return "", aierrors.Wrap(err, "anthropic", "submit")
	}
	return content, nil
}

func parseAnthropicResponse(body []byte) (string, error) {
	var resp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing response: %v: %w", err, aierrors.ErrMalformedResponse)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no content in response: %w", aierrors.ErrMalformedResponse)
	}
	return strings.TrimSpace(resp.Content[0].Text), nil
}
