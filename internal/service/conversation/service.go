// Package conversation persists conversation records and produces their analysis.
package conversation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/service/analysis"
)

//go:generate moq -out session_repo_mock_test.go -pkg conversation . sessionRepo
//go:generate moq -out analyzer_mock_test.go -pkg conversation . analyzer
//go:generate moq -out key_resolver_mock_test.go -pkg conversation . keyResolver
//go:generate moq -out tx_manager_mock_test.go -pkg conversation . txManager

type sessionRepo interface {
	Create(ctx context.Context, s *domain.ChatSession) (*domain.ChatSession, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.ChatSession, error)
	List(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.ChatSession, error)
	Finish(ctx context.Context, id uuid.UUID, p domain.ChatSessionFinishParams) (*domain.ChatSession, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, p domain.ChatSessionUpdateParams) (*domain.ChatSession, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*domain.AnalysisResult, error)
	AnalyzeOrFallback(ctx context.Context, req analysis.Request) *domain.AnalysisResult
}

type keyResolver interface {
	ResolveAPIKey(ctx context.Context, userID uuid.UUID) (string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides conversation record operations.
type Service struct {
	sessions sessionRepo
	analyzer analyzer
	keys     keyResolver
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new conversation Service.
func NewService(
	logger *slog.Logger,
	sessions sessionRepo,
	analyzer analyzer,
	keys keyResolver,
	tx txManager,
) *Service {
	return &Service{
		sessions: sessions,
		analyzer: analyzer,
		keys:     keys,
		tx:       tx,
		log:      logger.With("service", "conversation"),
	}
}

// userKey picks the key for an analysis run: an explicit key wins, then the
// owner's stored key. An empty result lets the pipeline fall back to the
// server key.
func (s *Service) userKey(ctx context.Context, explicit string, ownerID *uuid.UUID) string {
	if k := strings.TrimSpace(explicit); k != "" {
		return k
	}
	if ownerID == nil {
		return ""
	}
	k, err := s.keys.ResolveAPIKey(ctx, *ownerID)
	if err != nil {
		s.log.WarnContext(ctx, "stored api key lookup failed",
			slog.String("user_id", ownerID.String()),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return k
}
