// Package chatsession implements conversation record persistence using PostgreSQL.
// Fixed statements are raw SQL; the owner-scoped list and partial update are
// built with squirrel. Transcript, analysis and metadata live in JSONB columns.
package chatsession

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mindcure-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// Repo provides chat session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

// New creates a new chat session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const table = "chat_sessions"

var columns = []string{
	"id", "owner_id", "room_name", "participant_identity", "title", "status",
	"mood_before", "mood_after", "transcript", "analysis", "metadata",
	"started_at", "ended_at", "created_at",
}

const sessionColumns = `id, owner_id, room_name, participant_identity, title, status,
	mood_before, mood_after, transcript, analysis, metadata,
	started_at, ended_at, created_at`

const createSQL = `
INSERT INTO chat_sessions (id, owner_id, room_name, participant_identity, title, status, mood_before, transcript, metadata, started_at, created_at)
VALUES ($1, $2, $3, $4, $5, 'active', $6, $7, $8, $9, $10)
RETURNING ` + sessionColumns

const getByIDSQL = `
SELECT ` + sessionColumns + `
FROM chat_sessions
WHERE id = $1 AND owner_id = $2`

const finishSQL = `
UPDATE chat_sessions
SET status = 'ended', ended_at = $2, transcript = $3, analysis = $4,
    mood_after = CASE WHEN $5::text = '' THEN mood_after ELSE $5::text END
WHERE id = $1 AND status = 'active'
RETURNING ` + sessionColumns

const deleteSQL = `
DELETE FROM chat_sessions
WHERE id = $1 AND owner_id = $2`

const abandonStaleSQL = `
UPDATE chat_sessions
SET status = 'abandoned', ended_at = now()
WHERE status = 'active' AND started_at < $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a session owned by ownerID.
// Returns domain.ErrNotFound if it does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.ChatSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSession(querier.QueryRow(ctx, getByIDSQL, id, ownerID))
	if err != nil {
		return nil, postgres.MapError(err, "chat session", id)
	}
	return s, nil
}

// List returns the owner's sessions, newest first.
func (r *Repo) List(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.ChatSession, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	query, args, err := r.psql.
		Select(columns...).
		From(table).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("chatsession.List: build: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("chatsession.List: %w", err)
	}
	defer rows.Close()

	sessions := []*domain.ChatSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("chatsession.List: scan: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chatsession.List: %w", err)
	}

	return sessions, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts an active session. A zero ID is replaced by a new UUID.
func (r *Repo) Create(ctx context.Context, s *domain.ChatSession) (*domain.ChatSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	startedAt := s.StartedAt.UTC().Truncate(time.Microsecond)
	if s.StartedAt.IsZero() {
		startedAt = now
	}

	transcript, err := marshalTranscript(s.Transcript)
	if err != nil {
		return nil, fmt.Errorf("chat session %s: %w", s.ID, err)
	}
	metadata, err := marshalMetadata(s.Metadata)
	if err != nil {
		return nil, fmt.Errorf("chat session %s: %w", s.ID, err)
	}

	row := querier.QueryRow(ctx, createSQL,
		s.ID,
		s.OwnerID,
		s.RoomName,
		s.ParticipantIdentity,
		s.Title,
		s.MoodBefore,
		transcript,
		metadata,
		startedAt,
		now,
	)

	created, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "chat session", s.ID)
	}
	return created, nil
}

// Finish moves an active session to ended and stores its transcript and analysis.
// Finishing an already ended session returns domain.ErrNotFound and changes nothing.
func (r *Repo) Finish(ctx context.Context, id uuid.UUID, p domain.ChatSessionFinishParams) (*domain.ChatSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	transcript, err := marshalTranscript(p.Transcript)
	if err != nil {
		return nil, fmt.Errorf("chat session %s: %w", id, err)
	}
	analysis, err := marshalAnalysis(p.Analysis)
	if err != nil {
		return nil, fmt.Errorf("chat session %s: %w", id, err)
	}

	row := querier.QueryRow(ctx, finishSQL,
		id,
		p.EndedAt.UTC().Truncate(time.Microsecond),
		transcript,
		analysis,
		p.MoodAfter,
	)

	finished, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "chat session", id)
	}
	return finished, nil
}

// Update applies the non-nil fields of p to a session owned by ownerID.
func (r *Repo) Update(ctx context.Context, ownerID, id uuid.UUID, p domain.ChatSessionUpdateParams) (*domain.ChatSession, error) {
	b := r.psql.Update(table).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		Suffix("RETURNING " + sessionColumns)

	changed := false
	if p.Title != nil {
		b = b.Set("title", *p.Title)
		changed = true
	}
	if p.MoodAfter != nil {
		b = b.Set("mood_after", *p.MoodAfter)
		changed = true
	}
	if p.Metadata != nil {
		metadata, err := marshalMetadata(p.Metadata)
		if err != nil {
			return nil, fmt.Errorf("chat session %s: %w", id, err)
		}
		// Merge so clients can patch individual keys.
		b = b.Set("metadata", sq.Expr("metadata || ?::jsonb", metadata))
		changed = true
	}
	if p.Analysis != nil {
		analysis, err := marshalAnalysis(p.Analysis)
		if err != nil {
			return nil, fmt.Errorf("chat session %s: %w", id, err)
		}
		b = b.Set("analysis", analysis)
		changed = true
	}
	if !changed {
		return r.GetByID(ctx, ownerID, id)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("chatsession.Update: build: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	updated, err := scanSession(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "chat session", id)
	}
	return updated, nil
}

// Delete removes a session owned by ownerID.
func (r *Repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteSQL, id, ownerID)
	if err != nil {
		return postgres.MapError(err, "chat session", id)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("chat session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AbandonStale marks active sessions started before cutoff as abandoned.
func (r *Repo) AbandonStale(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, abandonStaleSQL, cutoff)
	if err != nil {
		return 0, fmt.Errorf("chatsession.AbandonStale: %w", err)
	}
	return ct.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanSession(row pgx.Row) (*domain.ChatSession, error) {
	var (
		s              domain.ChatSession
		status         string
		transcriptJSON []byte
		analysisJSON   []byte
		metadataJSON   []byte
	)

	if err := row.Scan(
		&s.ID, &s.OwnerID, &s.RoomName, &s.ParticipantIdentity, &s.Title, &status,
		&s.MoodBefore, &s.MoodAfter, &transcriptJSON, &analysisJSON, &metadataJSON,
		&s.StartedAt, &s.EndedAt, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.Status = domain.ChatSessionStatus(status)

	var err error
	if s.Transcript, err = unmarshalTranscript(transcriptJSON); err != nil {
		return nil, fmt.Errorf("chat session %s: %w", s.ID, err)
	}
	if s.Analysis, err = unmarshalAnalysis(analysisJSON); err != nil {
		return nil, fmt.Errorf("chat session %s: %w", s.ID, err)
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &s.Metadata); err != nil {
			return nil, fmt.Errorf("chat session %s: unmarshal metadata: %w", s.ID, err)
		}
	}

	return &s, nil
}
