package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// Snapshot is an immutable copy of a session's state.
type Snapshot struct {
	ID                  uuid.UUID
	RoomName            string
	ParticipantIdentity string
	OwnerID             *uuid.UUID
	MoodBefore          string
	State               domain.SessionState
	Transcript          []domain.TranscriptMessage
	StartedAt           time.Time
	EndedAt             time.Time
}

// Handle is the view of a session exposed to transport code.
type Handle interface {
	ID() uuid.UUID
	State() domain.SessionState
	AddMessage(msg domain.TranscriptMessage) bool
	Snapshot() Snapshot
}

// Nop is the Handle used when no session has been started. It accepts nothing.
type Nop struct{}

var _ Handle = Nop{}

func (Nop) ID() uuid.UUID { return uuid.Nil }
func (Nop) State() domain.SessionState { return domain.SessionIdle }
func (Nop) AddMessage(domain.TranscriptMessage) bool { return false }
func (Nop) Snapshot() Snapshot { return Snapshot{State: domain.SessionIdle} }
