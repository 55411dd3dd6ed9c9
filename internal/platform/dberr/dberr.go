// Copyright (c) 2026 Motorpool. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Error Mapping
//
//   - pgx.ErrNoRows              → apperr.NotFound
//   - SQLSTATE 23505 (unique)    → apperr.Conflict naming the violated field
//   - anything else              → apperr.Internal (cause kept for logging)
//
// The unique-violation mapping is what turns the storage-level uniqueness
// guarantee (concurrent duplicate inserts: exactly one wins) into a
// client-facing 409 instead of a raw driver error.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/motorpoolhq/motorpool/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Unique describes one unique constraint a repository relies on, so that a
// SQLSTATE 23505 can be translated into a field-level conflict message.
type Unique struct {
	// Constraint is the Postgres constraint name (e.g. "cars_vin_key").
	Constraint string
	// Field is the JSON field name surfaced to the client.
	Field string
	// Message is the client-facing conflict description.
	Message string
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the
// error type. The uniques list lets callers declare which constraints their
// statement can trip.
func Wrap(err error, action string, uniques ...Unique) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Unique-constraint mapping
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		for _, unique := range uniques {
			if pgErr.ConstraintName == unique.Constraint {
				return apperr.Conflict(unique.Message, apperr.FieldError{
					Field:   unique.Field,
					Message: unique.Message,
				})
			}
		}
		// A 23505 from a constraint the caller didn't declare still must not
		// leak SQL details.
		return apperr.Conflict("Duplicate value violates a uniqueness rule")
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
