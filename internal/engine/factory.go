package engine

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Provider identifies an engine backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Options configures the factory.
type Options struct {
	Provider Provider
	APIKey   string
	BaseURL  string
	Timeout  time.Duration

	// Models maps tiers to provider model names; missing entries use the
	// provider defaults.
	Models map[ModelTier]string
}

// Engines bundles the two engine roles. A single client usually serves both.
type Engines struct {
	Completion     CompletionEngine
	Classification ClassificationEngine
}

// New builds engines for the configured provider.
func New(ctx context.Context, opts Options) (*Engines, error) {
	switch opts.Provider {
	case ProviderOpenAI, "":
		cfg := DefaultOpenAIConfig(opts.APIKey)
		if opts.BaseURL != "" {
			cfg.BaseURL = opts.BaseURL
		}
		if opts.Timeout > 0 {
			cfg.Timeout = opts.Timeout
		}
		for tier, model := range opts.Models {
			cfg.Models[tier] = model
		}
		client := NewOpenAIClientWithConfig(cfg)
		return &Engines{Completion: client, Classification: client}, nil

	case ProviderGemini:
		cfg := DefaultGeminiConfig(opts.APIKey)
		for tier, model := range opts.Models {
			cfg.Models[tier] = model
		}
		eng, err := NewGeminiEngine(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Engines{Completion: eng, Classification: eng}, nil

	default:
		return nil, fmt.Errorf("unknown provider %q", opts.Provider)
	}
}

// DetectProvider resolves a provider and API key from the environment.
// Priority: OPENAI_API_KEY, then GEMINI_API_KEY.
func DetectProvider() (Options, error) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return Options{Provider: ProviderOpenAI, APIKey: key}, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return Options{Provider: ProviderGemini, APIKey: key}, nil
	}
	return Options{}, fmt.Errorf("no API key found; set OPENAI_API_KEY or GEMINI_API_KEY")
}
