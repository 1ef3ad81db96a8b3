package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProfile creates a profile with a unique email and the given full name.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, fullName string) domain.Profile {
	t.Helper()

	p := domain.Profile{
		ID:       uuid.New(),
		Email:    "testuser-" + uniqueSuffix() + "@example.com",
		FullName: fullName,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO profiles (id, email, full_name) VALUES ($1, $2, $3)`,
		p.ID, p.Email, p.FullName,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}

	return p
}

// SeedPeerConnection creates an active membership record for two users.
func SeedPeerConnection(t *testing.T, pool *pgxpool.Pool, user1, user2 uuid.UUID) domain.PeerConnection {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.PeerConnection{
		ID:        uuid.New(),
		User1ID:   user1,
		User2ID:   user2,
		RoomName:  "peer-" + user1.String() + "-" + uniqueSuffix(),
		MatchedOn: []string{},
		Status:    domain.PeerConnectionActive,
		CreatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO peer_connections (id, user1_id, user2_id, room_name, matched_on, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.User1ID, c.User2ID, c.RoomName, c.MatchedOn, string(c.Status), c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPeerConnection: %v", err)
	}

	return c
}

// SeedChatSession creates an active chat session owned by ownerID, started at startedAt.
func SeedChatSession(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, startedAt time.Time) domain.ChatSession {
	t.Helper()

	startedAt = startedAt.UTC().Truncate(time.Microsecond)
	s := domain.ChatSession{
		ID:                  uuid.New(),
		OwnerID:             &ownerID,
		RoomName:            "mindcure-" + ownerID.String() + "-" + uniqueSuffix(),
		ParticipantIdentity: "mindcure_user_" + ownerID.String()[:8],
		Status:              domain.ChatSessionActive,
		StartedAt:           startedAt,
		CreatedAt:           startedAt,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO chat_sessions (id, owner_id, room_name, participant_identity, status, started_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, ownerID, s.RoomName, s.ParticipantIdentity, string(s.Status), s.StartedAt, s.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedChatSession: %v", err)
	}

	return s
}
