package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/arenalabs/arena/pkg/aierrors"
	"github.com/arenalabs/arena/pkg/httputil"
)

const defaultGeminiModel = "gemini-1.5-pro"

// GeminiAdapter talks to Google's Gemini API through the official SDK.
type GeminiAdapter struct {
	cfg   Config
	model *genai.GenerativeModel
}

// NewGemini creates a Gemini adapter from explicit configuration.
func NewGemini(ctx context.Context, cfg Config) (Adapter, error) {
	if cfg.APIKey == "" {
		return nil, aierrors.New("gemini", "create",
			fmt.Errorf("api key is required: %w", aierrors.ErrInvalidConfig))
	}
	cfg = cfg.withDefaults()
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, aierrors.New("gemini", "create",
			fmt.Errorf("failed to create Gemini client: %w", err))
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(float32(*cfg.Temperature))
	model.SetMaxOutputTokens(int32(cfg.MaxTokens))

	return &GeminiAdapter{cfg: cfg, model: model}, nil
}

// Name returns the provider name
func (g *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns the configured model
func (g *GeminiAdapter) Model() string {
	return g.cfg.Model
}

// Submit sends the prompt and returns the response text verbatim.
func (g *GeminiAdapter) Submit(ctx context.Context, prompt string) (string, error) {
	content, err := withRetry(ctx, g.cfg.MaxRetries, func() (string, error) {
		resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", classifyGeminiError(ctx, err)
		}
		return extractGeminiText(resp)
	})
	if err != nil {
		return "", aierrors.Wrap(err, "gemini", "submit")
	}
	return content, nil
}

// classifyGeminiError maps SDK errors onto the shared taxonomy. The
// SDK surfaces HTTP failures as *googleapi.Error with the status code.
func classifyGeminiError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("generate content: %w", aierrors.ErrTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("generate content: %v: %w", err, httputil.ClassifyStatus(apiErr.Code))
	}
	return fmt.Errorf("generate content: %v: %w", err, aierrors.ErrNetwork)
}

func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			b.WriteString(fmt.Sprintf("%v", part))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("no content in response: %w", aierrors.ErrMalformedResponse)
	}
	return text, nil
}
