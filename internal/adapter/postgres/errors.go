package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// SQLSTATE codes MapError understands.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeInvalidText         = "22P02"
	codeSerialization       = "40001"
	codeDeadlock            = "40P01"
)

// MapError translates driver errors into domain sentinels, prefixed with the
// entity and key that was addressed. Context cancellation is never remapped.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}
	prefix := fmt.Sprintf("%s %v", entity, key)

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%s: %w", prefix, domain.ErrAlreadyExists)
	case codeForeignKeyViolation:
		return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
	case codeCheckViolation, codeNotNullViolation, codeInvalidText:
		return fmt.Errorf("%s: %w", prefix, domain.ErrValidation)
	case codeSerialization, codeDeadlock:
		return fmt.Errorf("%s: %w", prefix, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
