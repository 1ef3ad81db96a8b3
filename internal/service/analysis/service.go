// Package analysis turns a finished transcript into a structured AnalysisResult
// using an external text-generation service.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

//go:generate moq -out generator_mock_test.go -pkg analysis . generator

type generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// Request is one analysis job.
type Request struct {
	Transcript            []domain.TranscriptMessage
	UserAPIKey            string
	MoodBefore            string
	RefinementInstruction string
}

// Pipeline runs a single generation attempt per request. There is no retry;
// AnalyzeOrFallback is the recovery path.
type Pipeline struct {
	gen       generator
	serverKey string
	timeout   time.Duration
	log       *slog.Logger
}

// NewPipeline creates a Pipeline. serverKey may be empty, in which case every
// request must carry its own key.
func NewPipeline(logger *slog.Logger, gen generator, serverKey string, timeout time.Duration) *Pipeline {
	return &Pipeline{
		gen:       gen,
		serverKey: serverKey,
		timeout:   timeout,
		log:       logger.With("service", "analysis"),
	}
}

// ResolveKey applies key precedence: the caller's key, then the server key.
func (p *Pipeline) ResolveKey(userKey string) (string, error) {
	if k := strings.TrimSpace(userKey); k != "" {
		return k, nil
	}
	if p.serverKey != "" {
		return p.serverKey, nil
	}
	return "", domain.ErrMissingCredential
}

// Analyze produces a result or an error classified as ErrMissingCredential,
// ErrUpstream or ErrAnalysisParse.
func (p *Pipeline) Analyze(ctx context.Context, req Request) (*domain.AnalysisResult, error) {
	key, err := p.ResolveKey(req.UserAPIKey)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}

	prompt := BuildPrompt(req.Transcript, req.MoodBefore, req.RefinementInstruction)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	raw, err := p.gen.Generate(ctx, key, prompt)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w: %w", domain.ErrUpstream, err)
	}

	res, err := ParseResult(raw)
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}

	p.log.InfoContext(ctx, "analysis completed",
		slog.Int("messages", len(req.Transcript)),
		slog.Bool("refinement", req.RefinementInstruction != ""),
		slog.Int("sentiment_score", res.SentimentScore),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// AnalyzeOrFallback never fails: any error is logged and replaced by Fallback.
func (p *Pipeline) AnalyzeOrFallback(ctx context.Context, req Request) *domain.AnalysisResult {
	res, err := p.Analyze(ctx, req)
	if err == nil {
		return res
	}

	level := slog.LevelWarn
	if errors.Is(err, domain.ErrMissingCredential) {
		level = slog.LevelError
	}
	p.log.Log(ctx, level, "analysis failed, using fallback",
		slog.String("error", err.Error()),
		slog.Int("messages", len(req.Transcript)),
	)
	return Fallback(req.MoodBefore)
}
