// Package llm adapts hosted text-generation APIs to a single Generate call.
// Each call builds its client from the supplied key, so a caller's own key
// never outlives the request that carried it.
package llm

import (
	"context"
	"fmt"

	"github.com/heartmarshall/mindcure-backend/internal/config"
)

// Generator produces text for a prompt using the given API key.
type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
	Provider() string
}

// Option tweaks a generator, mainly for tests.
type Option func(*options)

type options struct {
	baseURL string
}

// WithBaseURL points the generator at a different API endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// New returns the generator selected by cfg.Provider.
func New(cfg config.AnalysisConfig, opts ...Option) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(cfg.DefaultModel(), cfg.MaxTokens, opts...), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg.DefaultModel(), cfg.MaxTokens, opts...), nil
	default:
		return nil, fmt.Errorf("llm.New: unknown provider %q", cfg.Provider)
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
