package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// ErrNotActive is returned when a message arrives with no active session.
var ErrNotActive = errors.New("session not active")

// Manager owns the current session of one client connection.
type Manager struct {
	info            Info
	finalizer       Finalizer
	finalizeTimeout time.Duration
	log             *slog.Logger

	current atomic.Pointer[Session]
}

// NewManager creates a Manager for one client. info.MoodBefore is ignored;
// it is supplied per session by StartSession.
func NewManager(logger *slog.Logger, info Info, finalizer Finalizer, finalizeTimeout time.Duration) *Manager {
	return &Manager{
		info:            info,
		finalizer:       finalizer,
		finalizeTimeout: finalizeTimeout,
		log:             logger.With("service", "session", "room", info.RoomName),
	}
}

// StartSession returns the active session, or starts a new one if there is
// none or the previous one has ended.
func (m *Manager) StartSession(ctx context.Context, moodBefore string) Handle {
	for {
		cur := m.current.Load()
		if cur != nil && cur.State() == domain.SessionActive {
			return cur
		}

		info := m.info
		info.MoodBefore = strings.TrimSpace(moodBefore)
		next := New(info, m.finalizer)
		next.Start(next.now())

		if !m.current.CompareAndSwap(cur, next) {
			continue
		}

		m.log.InfoContext(ctx, "session started", slog.String("session_id", next.ID().String()))
		if b, ok := m.finalizer.(Beginner); ok {
			if err := b.Begin(ctx, next.Snapshot()); err != nil {
				m.log.ErrorContext(ctx, "record session start", slog.String("error", err.Error()))
			}
		}
		return next
	}
}

// AddMessage appends a transcript line to the active session.
func (m *Manager) AddMessage(role domain.SpeakerRole, text string) error {
	if !role.IsValid() {
		return domain.NewValidationError("speakerRole", "must be local or remote")
	}
	if strings.TrimSpace(text) == "" {
		return domain.NewValidationError("text", "required")
	}
	if !m.Current().AddMessage(domain.TranscriptMessage{SpeakerRole: role, Text: text}) {
		return ErrNotActive
	}
	return nil
}

// EndSession ends the active session and waits for finalization. It reports
// whether this call performed the transition. The finalizer runs on a context
// detached from ctx so a departing client cannot cut it short.
func (m *Manager) EndSession(ctx context.Context) bool {
	cur := m.current.Load()
	if cur == nil {
		return false
	}

	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.finalizeTimeout)
	defer cancel()

	ended, err := cur.End(fctx)
	if !ended {
		return false
	}

	snap := cur.Snapshot()
	attrs := []any{
		slog.String("session_id", snap.ID.String()),
		slog.Int("messages", len(snap.Transcript)),
		slog.Duration("duration", snap.EndedAt.Sub(snap.StartedAt)),
	}
	if err != nil {
		m.log.ErrorContext(ctx, "session finalization failed", append(attrs, slog.String("error", err.Error()))...)
	} else {
		m.log.InfoContext(ctx, "session ended", attrs...)
	}
	return true
}

// Current returns the current session, or Nop if none was started.
func (m *Manager) Current() Handle {
	if cur := m.current.Load(); cur != nil {
		return cur
	}
	return Nop{}
}

// WatchDisconnect blocks until disconnected is closed or ctx is done and then
// ends the active session. It is the transport-side trigger for EndSession;
// either path finalizes a session at most once.
func (m *Manager) WatchDisconnect(ctx context.Context, disconnected <-chan struct{}) bool {
	select {
	case <-disconnected:
		m.log.DebugContext(ctx, "client disconnected")
	case <-ctx.Done():
	}
	return m.EndSession(ctx)
}
