// Package profile reads and upserts the local copy of identity-provider profiles.
package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mindcure-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByIDSQL = `
SELECT id, email, full_name
FROM profiles
WHERE id = $1`

const upsertSQL = `
INSERT INTO profiles (id, email, full_name)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE
SET email = EXCLUDED.email, full_name = EXCLUDED.full_name, updated_at = now()
RETURNING id, email, full_name`

// GetByID returns the profile or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.Profile
	if err := querier.QueryRow(ctx, getByIDSQL, id).Scan(&p.ID, &p.Email, &p.FullName); err != nil {
		return nil, postgres.MapError(err, "profile", id)
	}
	return &p, nil
}

// Upsert inserts or replaces a profile.
func (r *Repo) Upsert(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var out domain.Profile
	if err := querier.QueryRow(ctx, upsertSQL, p.ID, p.Email, p.FullName).Scan(&out.ID, &out.Email, &out.FullName); err != nil {
		return nil, postgres.MapError(err, "profile", p.ID)
	}
	return &out, nil
}
