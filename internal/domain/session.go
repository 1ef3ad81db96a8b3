package domain

import (
	"time"

	"github.com/google/uuid"
)

// SpeakerRole identifies who produced a transcript line.
type SpeakerRole string

const (
	SpeakerLocal  SpeakerRole = "local"
	SpeakerRemote SpeakerRole = "remote"
)

func (r SpeakerRole) String() string { return string(r) }

func (r SpeakerRole) IsValid() bool {
	return r == SpeakerLocal || r == SpeakerRemote
}

// TranscriptMessage is one line of a conversation. Ordering is arrival order.
type TranscriptMessage struct {
	SpeakerRole SpeakerRole
	Text        string
	Timestamp   time.Time
}

// SessionState is the lifecycle state of a conversation.
type SessionState int32

const (
	SessionIdle SessionState = iota
	SessionActive
	SessionEnded
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionActive:
		return "active"
	case SessionEnded:
		return "ended"
	}
	return "unknown"
}

// ChatSessionStatus is the persisted status of a conversation record.
type ChatSessionStatus string

const (
	ChatSessionActive    ChatSessionStatus = "active"
	ChatSessionEnded     ChatSessionStatus = "ended"
	ChatSessionAbandoned ChatSessionStatus = "abandoned"
)

func (s ChatSessionStatus) String() string { return string(s) }

// ChatSession is the stored record of a conversation.
// OwnerID is nil for anonymous callers.
type ChatSession struct {
	ID                  uuid.UUID
	OwnerID             *uuid.UUID
	RoomName            string
	ParticipantIdentity string
	Title               string
	Status              ChatSessionStatus
	MoodBefore          string
	MoodAfter           string
	Transcript          []TranscriptMessage
	Analysis            *AnalysisResult
	Metadata            map[string]any
	StartedAt           time.Time
	EndedAt             *time.Time
	CreatedAt           time.Time
}

// DurationSeconds returns the wall time of an ended session, or 0.
func (s ChatSession) DurationSeconds() int {
	if s.EndedAt == nil {
		return 0
	}
	return int(s.EndedAt.Sub(s.StartedAt).Seconds())
}

// ChatSessionUpdateParams lists the owner-editable fields. Nil fields are left unchanged.
type ChatSessionUpdateParams struct {
	Title     *string
	MoodAfter *string
	Metadata  map[string]any
	Analysis  *AnalysisResult
}

// ChatSessionFinishParams carries the outcome of an ended conversation.
type ChatSessionFinishParams struct {
	EndedAt    time.Time
	Transcript []TranscriptMessage
	Analysis   *AnalysisResult
	MoodAfter  string
}
