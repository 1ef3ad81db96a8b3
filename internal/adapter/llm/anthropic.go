package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/mindcure-backend/internal/config"
)

// Anthropic calls the Messages API through anthropic-sdk-go.
type Anthropic struct {
	model     string
	maxTokens int64
	baseURL   string
}

// NewAnthropic creates an Anthropic generator.
func NewAnthropic(model string, maxTokens int64, opts ...Option) *Anthropic {
	o := applyOptions(opts)
	return &Anthropic{model: model, maxTokens: maxTokens, baseURL: o.baseURL}
}

// Provider returns the provider name.
func (a *Anthropic) Provider() string { return config.ProviderAnthropic }

// Generate sends prompt as a single user message and joins the text blocks
// of the reply.
func (a *Anthropic) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if a.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(a.baseURL))
	}
	client := anthropic.NewClient(reqOpts...)

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm.Anthropic: messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("llm.Anthropic: empty response")
	}
	return text, nil
}
