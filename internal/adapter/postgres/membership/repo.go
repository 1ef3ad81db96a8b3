// Package membership stores peer room membership records. A record is the only
// proof that a user may join a peer room.
package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mindcure-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// Repo provides peer connection persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new membership repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const connectionColumns = `id, user1_id, user2_id, room_name, matched_on, status, created_at, ended_at`

const createSQL = `
INSERT INTO peer_connections (id, user1_id, user2_id, room_name, matched_on, status, created_at)
VALUES ($1, $2, $3, $4, $5, 'active', $6)
RETURNING ` + connectionColumns

const findActiveSQL = `
SELECT ` + connectionColumns + `
FROM peer_connections
WHERE room_name = $1 AND (user1_id = $2 OR user2_id = $2) AND status = 'active'`

const latestActiveSQL = `
SELECT ` + connectionColumns + `
FROM peer_connections
WHERE (user1_id = $1 OR user2_id = $1) AND status = 'active'
ORDER BY created_at DESC
LIMIT 1`

const endSQL = `
UPDATE peer_connections
SET status = 'ended', ended_at = now()
WHERE room_name = $1 AND (user1_id = $2 OR user2_id = $2) AND status = 'active'`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts an active membership record for two users.
func (r *Repo) Create(ctx context.Context, c *domain.PeerConnection) (*domain.PeerConnection, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	matchedOn := c.MatchedOn
	if matchedOn == nil {
		matchedOn = []string{}
	}

	row := querier.QueryRow(ctx, createSQL,
		c.ID, c.User1ID, c.User2ID, c.RoomName, matchedOn,
		time.Now().UTC().Truncate(time.Microsecond),
	)

	created, err := scanConnection(row)
	if err != nil {
		return nil, postgres.MapError(err, "peer connection", c.ID)
	}
	return created, nil
}

// FindActive returns the active record for roomName that lists userID as a party.
// Returns domain.ErrNotFound when there is none.
func (r *Repo) FindActive(ctx context.Context, roomName string, userID uuid.UUID) (*domain.PeerConnection, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanConnection(querier.QueryRow(ctx, findActiveSQL, roomName, userID))
	if err != nil {
		return nil, postgres.MapError(err, "peer connection", roomName)
	}
	return c, nil
}

// LatestActive returns the newest active record for userID.
func (r *Repo) LatestActive(ctx context.Context, userID uuid.UUID) (*domain.PeerConnection, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanConnection(querier.QueryRow(ctx, latestActiveSQL, userID))
	if err != nil {
		return nil, postgres.MapError(err, "peer connection", userID)
	}
	return c, nil
}

// End marks the caller's active record for roomName as ended.
func (r *Repo) End(ctx context.Context, roomName string, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, endSQL, roomName, userID)
	if err != nil {
		return postgres.MapError(err, "peer connection", roomName)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("peer connection %s: %w", roomName, domain.ErrNotFound)
	}
	return nil
}

func scanConnection(row pgx.Row) (*domain.PeerConnection, error) {
	var (
		c      domain.PeerConnection
		status string
	)
	if err := row.Scan(&c.ID, &c.User1ID, &c.User2ID, &c.RoomName, &c.MatchedOn, &status, &c.CreatedAt, &c.EndedAt); err != nil {
		return nil, err
	}
	c.Status = domain.PeerConnectionStatus(status)
	return &c, nil
}
