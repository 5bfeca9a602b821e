// Package providers contains the adapters that talk to external AI
// model services and the registry that maps model ids onto them.
package providers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/arenalabs/arena/pkg/aierrors"
)

// Adapter submits a prompt to exactly one external provider. The
// context carries the per-call deadline assigned by the dispatcher;
// implementations must return promptly once it is done. Errors are
// classified into the package error classes.
type Adapter interface {
	Submit(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name (e.g., "anthropic")
	Name() string

	// Model returns the upstream model this adapter targets
	Model() string
}

// Config provides explicit configuration for one adapter instance.
// It is constructed once at startup and never mutated afterwards.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string

	// MaxRetries bounds additional attempts for transient failures.
	MaxRetries int

	// MaxTokens caps the response length. Zero means the default.
	MaxTokens int

	// Temperature is the sampling temperature. A pointer so an
	// explicit 0 survives defaulting; nil means the default.
	Temperature *float64
}

const (
	defaultMaxTokens   = 4096
	defaultTemperature = 0.7
)

func (c Config) withDefaults() Config {
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Temperature == nil {
		t := defaultTemperature
		c.Temperature = &t
	}
	return c
}

// FactoryFunc builds an adapter from a configuration. The context is
// used only for construction-time work such as SDK client setup.
type FactoryFunc func(ctx context.Context, cfg Config) (Adapter, error)

var factories = map[string]FactoryFunc{
	"anthropic": NewAnthropic,
	"openai":    NewOpenAI,
	"gemini":    NewGemini,
	"grok":      NewGrok,
}

// New builds an adapter for the named provider. Unknown names are a
// configuration error, not a runtime one.
func New(ctx context.Context, provider string, cfg Config) (Adapter, error) {
	factory, ok := factories[provider]
	if !ok {
		return nil, aierrors.New(provider, "create",
			fmt.Errorf("unknown provider %q (have %v): %w", provider, Names(), aierrors.ErrInvalidConfig))
	}
	return factory(ctx, cfg)
}

// Names returns the registered provider names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// retryDelay is the base backoff unit between transient-failure attempts.
var retryDelay = time.Second
