package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/service/analysis"
	"github.com/heartmarshall/mindcure-backend/pkg/ctxutil"
)

// Analyze runs a strict analysis of a transcript supplied by the caller, who
// may be anonymous. Key precedence: the request key, the caller's stored key,
// then the server key.
func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) (*domain.AnalysisResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var owner *uuid.UUID
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		owner = &userID
	}

	res, err := s.analyzer.Analyze(ctx, analysis.Request{
		Transcript:            input.Transcript,
		UserAPIKey:            s.userKey(ctx, input.UserAPIKey, owner),
		MoodBefore:            input.MoodBefore,
		RefinementInstruction: input.RefinementInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("conversation.Analyze: %w", err)
	}
	return res, nil
}

// Reanalyze analyzes a stored conversation again, optionally with a
// refinement instruction, and stores the new result.
func (s *Service) Reanalyze(ctx context.Context, id uuid.UUID, input ReanalyzeInput) (*domain.AnalysisResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	cs, err := s.sessions.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("conversation.Reanalyze: %w", err)
	}
	if len(cs.Transcript) == 0 {
		return nil, domain.NewValidationError("transcript", "conversation has no messages")
	}

	res, err := s.analyzer.Analyze(ctx, analysis.Request{
		Transcript:            cs.Transcript,
		UserAPIKey:            s.userKey(ctx, input.UserAPIKey, &userID),
		MoodBefore:            cs.MoodBefore,
		RefinementInstruction: input.RefinementInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("conversation.Reanalyze: %w", err)
	}

	if _, err := s.sessions.Update(ctx, userID, id, domain.ChatSessionUpdateParams{Analysis: res}); err != nil {
		return nil, fmt.Errorf("conversation.Reanalyze: store: %w", err)
	}
	return res, nil
}
