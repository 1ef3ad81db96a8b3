package peer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/pkg/ctxutil"
)

// LeaveQueue removes the caller from the waiting room. Leaving when not
// queued is not an error.
func (s *Service) LeaveQueue(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.queue.Leave(ctx, userID.String()); err != nil {
		return fmt.Errorf("peer.LeaveQueue: %w", err)
	}
	return nil
}

// EndConnection closes the caller's membership of roomName. Afterwards
// neither party can obtain a grant for the room.
func (s *Service) EndConnection(ctx context.Context, roomName string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	roomName = strings.TrimSpace(roomName)
	if roomName == "" {
		return domain.NewValidationError("roomName", "Room name is required")
	}

	if err := s.memberships.End(ctx, roomName, userID); err != nil {
		return fmt.Errorf("peer.EndConnection: %w", err)
	}

	s.log.InfoContext(ctx, "peer connection ended",
		slog.String("room", roomName),
		slog.String("user_id", userID.String()),
	)
	return nil
}
