package domain

import (
	"time"

	"github.com/google/uuid"
)

// PeerConnectionStatus is the state of a membership record.
type PeerConnectionStatus string

const (
	PeerConnectionActive PeerConnectionStatus = "active"
	PeerConnectionEnded  PeerConnectionStatus = "ended"
)

func (s PeerConnectionStatus) String() string { return string(s) }

// PeerConnection is the membership record binding two users to one peer room.
// It is the only source of truth for peer room authorization.
type PeerConnection struct {
	ID        uuid.UUID
	User1ID   uuid.UUID
	User2ID   uuid.UUID
	RoomName  string
	MatchedOn []string
	Status    PeerConnectionStatus
	CreatedAt time.Time
	EndedAt   *time.Time
}

// IsParty reports whether userID is one of the two members.
func (c PeerConnection) IsParty(userID uuid.UUID) bool {
	return userID != uuid.Nil && (c.User1ID == userID || c.User2ID == userID)
}

// PeerOf returns the other member of the connection.
func (c PeerConnection) PeerOf(userID uuid.UUID) uuid.UUID {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// MatchStatus is the result of a matchmaking request.
type MatchStatus string

const (
	MatchWaiting MatchStatus = "waiting"
	MatchMatched MatchStatus = "matched"
	// MatchIdle means the caller is neither queued nor matched, for example
	// after the queue entry expired.
	MatchIdle MatchStatus = "idle"
)

// PeerPair is what the waiting room returns when two users meet.
type PeerPair struct {
	PeerID          string
	SharedInterests []string
}

// MatchResult describes where a caller stands in matchmaking.
type MatchResult struct {
	Status    MatchStatus
	PeerID    uuid.UUID
	RoomName  string
	MatchedOn []string
}
