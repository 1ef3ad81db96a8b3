package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/pkg/ctxutil"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// List returns the caller's conversations, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]*domain.ChatSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	sessions, err := s.sessions.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("conversation.List: %w", err)
	}
	return sessions, nil
}

// Get returns one of the caller's conversations.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	cs, err := s.sessions.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("conversation.Get: %w", err)
	}
	return cs, nil
}

// Create stores a conversation recorded by the client. It is stored as ended.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.ChatSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = DefaultTitle
	}
	endedAt := time.Now().UTC()

	var result *domain.ChatSession
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.sessions.Create(ctx, &domain.ChatSession{
			OwnerID:    &userID,
			Title:      title,
			MoodBefore: strings.TrimSpace(input.MoodBefore),
			Transcript: input.Transcript,
			Metadata:   input.Metadata,
			StartedAt:  startedAtFor(endedAt, input.DurationSeconds),
		})
		if err != nil {
			return fmt.Errorf("create: %w", err)
		}

		result, err = s.sessions.Finish(ctx, created.ID, domain.ChatSessionFinishParams{
			EndedAt:    endedAt,
			Transcript: input.Transcript,
			MoodAfter:  strings.TrimSpace(input.MoodAfter),
		})
		if err != nil {
			return fmt.Errorf("finish: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("conversation.Create: %w", err)
	}

	s.log.InfoContext(ctx, "conversation stored",
		slog.String("session_id", result.ID.String()),
		slog.Int("messages", len(result.Transcript)),
	)
	return result, nil
}

// Update edits one of the caller's conversations.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.ChatSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var title *string
	if input.Title != nil {
		t := strings.TrimSpace(*input.Title)
		title = &t
	}

	cs, err := s.sessions.Update(ctx, userID, id, domain.ChatSessionUpdateParams{
		Title:     title,
		MoodAfter: input.MoodAfter,
		Metadata:  input.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("conversation.Update: %w", err)
	}
	return cs, nil
}

// Delete removes one of the caller's conversations.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.sessions.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("conversation.Delete: %w", err)
	}
	return nil
}
