package peer

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/pkg/ctxutil"
)

// CheckStatus reports the caller's newest active connection. Without one the
// caller is waiting while still queued and idle otherwise.
func (s *Service) CheckStatus(ctx context.Context) (*domain.MatchResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	conn, err := s.memberships.LatestActive(ctx, userID)
	if err == nil {
		return matchFor(conn, userID), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("peer.CheckStatus: %w", err)
	}

	waiting, err := s.queue.IsWaiting(ctx, userID.String())
	if err != nil {
		return nil, fmt.Errorf("peer.CheckStatus: %w", err)
	}
	if !waiting {
		return &domain.MatchResult{Status: domain.MatchIdle}, nil
	}
	return &domain.MatchResult{Status: domain.MatchWaiting}, nil
}
