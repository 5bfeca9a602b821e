// Package config builds the explicit configuration passed into the
// dispatcher and adapters at startup. Business logic never reads
// ambient process state; everything it needs is resolved here once.
package config

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/arenalabs/arena/pkg/compare"
	"github.com/arenalabs/arena/pkg/providers"
)

const defaultCallTimeout = 30 * time.Second

// ServerConfig holds HTTP transport settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// ModelConfig describes one selectable model: which provider serves it
// and the per-call settings for that provider.
type ModelConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature *float64      `mapstructure:"temperature"`
}

// Config is the complete application configuration. It is constructed
// once and treated as immutable afterwards.
type Config struct {
	Server        ServerConfig           `mapstructure:"server"`
	MaxConcurrent int64                  `mapstructure:"max_concurrent"`
	Models        map[string]ModelConfig `mapstructure:"models"`
}

// Load unmarshals and validates the configuration from an already
// initialized viper instance.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling configuration")
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.MaxConcurrent == 0 {
		cfg.MaxConcurrent = compare.DefaultMaxConcurrent
	}

	for id, mc := range cfg.Models {
		if mc.Timeout == 0 {
			mc.Timeout = defaultCallTimeout
		}
		if mc.APIKey == "" {
			// Fall back to the conventional environment variable for
			// the provider, e.g. ANTHROPIC_API_KEY.
			mc.APIKey = os.Getenv(strings.ToUpper(mc.Provider) + "_API_KEY")
		}
		cfg.Models[id] = mc
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for mistakes that would otherwise
// surface as confusing runtime failures.
func (c *Config) Validate() error {
	if c.MaxConcurrent < 0 {
		return errors.Errorf("max_concurrent must not be negative, got %d", c.MaxConcurrent)
	}
	if len(c.Models) == 0 {
		return errors.New("at least one model must be configured")
	}

	known := make(map[string]struct{}, len(providers.Names()))
	for _, name := range providers.Names() {
		known[name] = struct{}{}
	}

	for id, mc := range c.Models {
		if mc.Provider == "" {
			return errors.Errorf("model %q: provider is required", id)
		}
		if _, ok := known[mc.Provider]; !ok {
			return errors.Errorf("model %q: unknown provider %q (have %v)", id, mc.Provider, providers.Names())
		}
		if mc.APIKey == "" {
			return errors.Errorf("model %q: no api key configured and %s_API_KEY is not set",
				id, strings.ToUpper(mc.Provider))
		}
		if mc.Timeout < 0 {
			return errors.Errorf("model %q: timeout must not be negative", id)
		}
		if mc.MaxRetries < 0 {
			return errors.Errorf("model %q: max_retries must not be negative", id)
		}
	}
	return nil
}

// BuildRegistry constructs one adapter per configured model and
// registers it under the model id.
func BuildRegistry(ctx context.Context, cfg *Config) (*providers.Registry, error) {
	registry := providers.NewRegistry()

	for id, mc := range cfg.Models {
		adapter, err := providers.New(ctx, mc.Provider, providers.Config{
			APIKey:      mc.APIKey,
			Model:       mc.Model,
			BaseURL:     mc.BaseURL,
			MaxRetries:  mc.MaxRetries,
			MaxTokens:   mc.MaxTokens,
			Temperature: mc.Temperature,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "building adapter for model %q", id)
		}

		if err := registry.Register(id, providers.Entry{
			Adapter: adapter,
			Timeout: mc.Timeout,
		}); err != nil {
			return nil, errors.Wrapf(err, "registering model %q", id)
		}
	}

	return registry, nil
}
