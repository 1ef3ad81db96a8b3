package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"google.golang.org/genai"

	"github.com/heartmarshall/mindcure-backend/internal/config"
)

// Gemini calls the Gemini API through google.golang.org/genai.
type Gemini struct {
	model     string
	maxTokens int32
	baseURL   string
}

// NewGemini creates a Gemini generator.
func NewGemini(model string, maxTokens int64, opts ...Option) *Gemini {
	o := applyOptions(opts)
	return &Gemini{model: model, maxTokens: int32(min(maxTokens, math.MaxInt32)), baseURL: o.baseURL}
}

// Provider returns the provider name.
func (g *Gemini) Provider() string { return config.ProviderGemini }

// Generate sends prompt as a single user turn and returns the response text.
func (g *Gemini) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("llm.Gemini: create client: %w", err)
	}

	res, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens:  g.maxTokens,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("llm.Gemini: generate: %w", err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", errors.New("llm.Gemini: empty response")
	}
	return text, nil
}
