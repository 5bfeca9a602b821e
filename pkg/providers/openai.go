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
	defaultOpenAIURL   = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel = "gpt-4o"
)

// OpenAIAdapter talks to OpenAI's chat completions API.
type OpenAIAdapter struct {
	name string
	cfg  Config
}

// NewOpenAI creates an OpenAI adapter from explicit configuration.
func NewOpenAI(_ context.Context, cfg Config) (Adapter, error) {
	if cfg.APIKey == "" {
		return nil, aierrors.New("openai", "create",
			fmt.Errorf("api key is required: %w", aierrors.ErrInvalidConfig))
	}
	cfg = cfg.withDefaults()
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIURL
	}
	return &OpenAIAdapter{name: "openai", cfg: cfg}, nil
}

// Name returns the provider name
func (o *OpenAIAdapter) Name() string {
	return o.name
}

// Model returns the configured model
func (o *OpenAIAdapter) Model() string {
	return o.cfg.Model
}

// Submit sends the prompt and returns the response text verbatim.
func (o *OpenAIAdapter) Submit(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"model": o.cfg.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  o.cfg.MaxTokens,
		"temperature": *o.cfg.Temperature,
	}

	details := httputil.RequestDetails{
		URL:         o.cfg.BaseURL,
		APIKey:      o.cfg.APIKey,
		RequestBody: requestBody,
	}

	content, err := withRetry(ctx, o.cfg.MaxRetries, func() (string, error) {
		body, err := httputil.Post(ctx, details)
		if err != nil {
			return "", err
		}
		return parseChatCompletion(body)
	})
	if err != nil {
		return "", aierrors.Wrap(err, o.name, "submit")
	}
	return content, nil
}

// parseChatCompletion extracts the message text from an
// OpenAI-compatible chat completion payload. Grok shares this shape.
func parseChatCompletion(body []byte) (string, error) {
	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing response: %v: %w", err, aierrors.ErrMalformedResponse)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response: %w", aierrors.ErrMalformedResponse)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
