// Package peer pairs users for peer support sessions.
package peer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

//go:generate moq -out waiting_room_mock_test.go -pkg peer . waitingRoom
//go:generate moq -out membership_repo_mock_test.go -pkg peer . membershipRepo

type waitingRoom interface {
	Join(ctx context.Context, userID string, interests []string) (domain.PeerPair, bool, error)
	Leave(ctx context.Context, userID string) error
	IsWaiting(ctx context.Context, userID string) (bool, error)
}

type membershipRepo interface {
	Create(ctx context.Context, c *domain.PeerConnection) (*domain.PeerConnection, error)
	LatestActive(ctx context.Context, userID uuid.UUID) (*domain.PeerConnection, error)
	End(ctx context.Context, roomName string, userID uuid.UUID) error
}

// Service provides matchmaking operations.
type Service struct {
	queue       waitingRoom
	memberships membershipRepo
	log         *slog.Logger
}

// NewService creates a new peer Service.
func NewService(
	logger *slog.Logger,
	queue waitingRoom,
	memberships membershipRepo,
) *Service {
	return &Service{
		queue:       queue,
		memberships: memberships,
		log:         logger.With("service", "peer"),
	}
}
