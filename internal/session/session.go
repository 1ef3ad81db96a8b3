// Package session tracks the lifecycle of one conversation: start, transcript
// accumulation and a single finalization however the conversation ends.
package session

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// Info identifies where a session runs and for whom.
type Info struct {
	RoomName            string
	ParticipantIdentity string
	OwnerID             *uuid.UUID
	MoodBefore          string
}

// Session is one conversation. State only moves forward
// (Idle -> Active -> Ended) through compare-and-swap; the transcript is
// guarded by a lock owned by this session alone.
type Session struct {
	id    uuid.UUID
	info  Info
	state atomic.Int32

	mu         sync.Mutex
	transcript []domain.TranscriptMessage
	startedAt  time.Time
	endedAt    time.Time

	finalizer Finalizer
	now       func() time.Time
}

var _ Handle = (*Session)(nil)

// New creates an idle session. A nil finalizer is allowed.
func New(info Info, finalizer Finalizer) *Session {
	return &Session{
		id:        uuid.New(),
		info:      info,
		finalizer: finalizer,
		now:       time.Now,
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) State() domain.SessionState {
	return domain.SessionState(s.state.Load())
}

// Start moves Idle to Active. It reports false if the session was already started.
func (s *Session) Start(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CompareAndSwap(int32(domain.SessionIdle), int32(domain.SessionActive)) {
		return false
	}
	s.startedAt = now
	return true
}

// AddMessage appends msg while the session is Active and reports whether it
// was accepted. A zero timestamp is replaced with the current time.
func (s *Session) AddMessage(msg domain.TranscriptMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State() != domain.SessionActive {
		return false
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	s.transcript = append(s.transcript, msg)
	return true
}

// End moves Active to Ended and runs the finalizer with the final snapshot.
// Only the first call wins; later and concurrent calls return false at once.
// The finalizer error is returned to the winning caller.
func (s *Session) End(ctx context.Context) (bool, error) {
	if !s.state.CompareAndSwap(int32(domain.SessionActive), int32(domain.SessionEnded)) {
		return false, nil
	}

	// Any AddMessage that saw Active holds the lock until its append is done.
	s.mu.Lock()
	s.endedAt = s.now()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if s.finalizer == nil {
		return true, nil
	}
	return true, s.finalizer.Finalize(ctx, snap)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:                  s.id,
		RoomName:            s.info.RoomName,
		ParticipantIdentity: s.info.ParticipantIdentity,
		OwnerID:             s.info.OwnerID,
		MoodBefore:          s.info.MoodBefore,
		State:               s.State(),
		Transcript:          slices.Clone(s.transcript),
		StartedAt:           s.startedAt,
		EndedAt:             s.endedAt,
	}
}
