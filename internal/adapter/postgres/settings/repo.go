// Package settings persists per-user settings, currently the sealed model API key.
package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mindcure-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// Repo provides user settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT user_id, sealed_api_key, updated_at
FROM user_settings
WHERE user_id = $1`

const setSealedKeySQL = `
INSERT INTO user_settings (user_id, sealed_api_key, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE
SET sealed_api_key = EXCLUDED.sealed_api_key, updated_at = now()`

const clearSealedKeySQL = `
UPDATE user_settings
SET sealed_api_key = NULL, updated_at = now()
WHERE user_id = $1 AND sealed_api_key IS NOT NULL`

// Get returns the user's settings or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.UserSettings
	if err := querier.QueryRow(ctx, getSQL, userID).Scan(&s.UserID, &s.SealedAPIKey, &s.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "user settings", userID)
	}
	return &s, nil
}

// SetSealedAPIKey stores an already sealed key.
func (r *Repo) SetSealedAPIKey(ctx context.Context, userID uuid.UUID, sealed []byte) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, setSealedKeySQL, userID, sealed); err != nil {
		return postgres.MapError(err, "user settings", userID)
	}
	return nil
}

// ClearAPIKey removes the stored key. Returns domain.ErrNotFound when none is stored.
func (r *Repo) ClearAPIKey(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, clearSealedKeySQL, userID)
	if err != nil {
		return postgres.MapError(err, "user settings", userID)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("user settings %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}
