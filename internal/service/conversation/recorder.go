package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/service/analysis"
	"github.com/heartmarshall/mindcure-backend/internal/session"
)

// Publisher delivers the analysis of a finished session to its client.
type Publisher func(ctx context.Context, sessionID uuid.UUID, res *domain.AnalysisResult)

// Recorder connects live sessions to the store. It is the session.Finalizer
// of one client connection. Sessions without an owner are analyzed but not
// stored.
type Recorder struct {
	svc     *Service
	publish Publisher
}

var (
	_ session.Finalizer = (*Recorder)(nil)
	_ session.Beginner  = (*Recorder)(nil)
)

// Recorder returns a finalizer that reports results through publish, which may be nil.
func (s *Service) Recorder(publish Publisher) *Recorder {
	return &Recorder{svc: s, publish: publish}
}

// Begin inserts the active record for a new session.
func (r *Recorder) Begin(ctx context.Context, snap session.Snapshot) error {
	if snap.OwnerID == nil {
		return nil
	}
	if _, err := r.svc.sessions.Create(ctx, recordFor(snap)); err != nil {
		return fmt.Errorf("conversation.Begin: %w", err)
	}
	return nil
}

// attachTimeout bounds the analysis update, which runs after the finalize
// deadline may already have been spent on the model call.
const attachTimeout = 10 * time.Second

// Finalize stores the ended transcript, then analyzes it, attaches the
// analysis to the stored record and publishes it. An empty transcript is
// stored without analysis.
func (r *Recorder) Finalize(ctx context.Context, snap session.Snapshot) error {
	stored := false
	var storeErr error
	if snap.OwnerID != nil {
		stored, storeErr = r.svc.finish(ctx, snap)
	}

	if len(snap.Transcript) == 0 {
		return storeErr
	}

	res := r.svc.analyzer.AnalyzeOrFallback(ctx, analysis.Request{
		Transcript: snap.Transcript,
		UserAPIKey: r.svc.userKey(ctx, "", snap.OwnerID),
		MoodBefore: snap.MoodBefore,
	})

	if res == nil {
		return storeErr
	}
	if stored {
		storeErr = r.svc.attach(ctx, *snap.OwnerID, snap.ID, res)
	}

	if r.publish != nil {
		r.publish(ctx, snap.ID, res)
	}
	return storeErr
}

// finish marks the record ended with its transcript. It reports whether this
// call stored the outcome.
func (s *Service) finish(ctx context.Context, snap session.Snapshot) (bool, error) {
	params := domain.ChatSessionFinishParams{
		EndedAt:    snap.EndedAt,
		Transcript: snap.Transcript,
	}

	_, err := s.sessions.Finish(ctx, snap.ID, params)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("conversation.Finalize: %w", err)
	}

	// The start was never recorded, or the record was already closed.
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.sessions.Create(ctx, recordFor(snap)); err != nil {
			return err
		}
		_, err := s.sessions.Finish(ctx, snap.ID, params)
		return err
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		s.log.WarnContext(ctx, "session already finalized", slog.String("session_id", snap.ID.String()))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("conversation.Finalize: %w", err)
	}
	return true, nil
}

func (s *Service) attach(ctx context.Context, ownerID, id uuid.UUID, res *domain.AnalysisResult) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), attachTimeout)
	defer cancel()

	after := res.MoodShift.After
	if _, err := s.sessions.Update(ctx, ownerID, id, domain.ChatSessionUpdateParams{
		Analysis:  res,
		MoodAfter: &after,
	}); err != nil {
		return fmt.Errorf("conversation.Finalize: attach analysis: %w", err)
	}
	return nil
}

func recordFor(snap session.Snapshot) *domain.ChatSession {
	return &domain.ChatSession{
		ID:                  snap.ID,
		OwnerID:             snap.OwnerID,
		RoomName:            snap.RoomName,
		ParticipantIdentity: snap.ParticipantIdentity,
		Title:               DefaultTitle,
		MoodBefore:          snap.MoodBefore,
		StartedAt:           snap.StartedAt,
	}
}
