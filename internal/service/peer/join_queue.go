package peer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/roomid"
	"github.com/heartmarshall/mindcure-backend/pkg/ctxutil"
)

// JoinQueue pairs the caller with the longest waiting user, or leaves the
// caller waiting. A match creates the membership record for a fresh room.
func (s *Service) JoinQueue(ctx context.Context, input JoinInput) (*domain.MatchResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	pair, matched, err := s.queue.Join(ctx, userID.String(), input.normalized())
	if err != nil {
		return nil, fmt.Errorf("peer.JoinQueue: %w", err)
	}
	if !matched {
		return &domain.MatchResult{Status: domain.MatchWaiting}, nil
	}

	peerID, err := uuid.Parse(pair.PeerID)
	if err != nil {
		return nil, fmt.Errorf("peer.JoinQueue: queued id %q: %w", pair.PeerID, err)
	}

	conn, err := s.memberships.Create(ctx, &domain.PeerConnection{
		User1ID:   userID,
		User2ID:   peerID,
		RoomName:  roomid.MakeRoomNameULID(roomid.PurposePeer, userID.String()),
		MatchedOn: pair.SharedInterests,
	})
	if err != nil {
		// The peer already left the queue inside the match script.
		s.log.ErrorContext(ctx, "peer match lost",
			slog.String("user_id", userID.String()),
			slog.String("peer_id", peerID.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("peer.JoinQueue: %w", err)
	}

	s.log.InfoContext(ctx, "peers matched",
		slog.String("room", conn.RoomName),
		slog.String("user_id", userID.String()),
		slog.String("peer_id", peerID.String()),
		slog.Int("shared_interests", len(conn.MatchedOn)),
	)

	return matchFor(conn, userID), nil
}

func matchFor(c *domain.PeerConnection, userID uuid.UUID) *domain.MatchResult {
	return &domain.MatchResult{
		Status:    domain.MatchMatched,
		PeerID:    c.PeerOf(userID),
		RoomName:  c.RoomName,
		MatchedOn: c.MatchedOn,
	}
}
