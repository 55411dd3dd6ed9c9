// Copyright (c) 2026 Motorpool. All rights reserved.

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorpoolhq/motorpool/internal/platform/apperr"
	"github.com/motorpoolhq/motorpool/internal/platform/dberr"
)

/*
TestWrap_NoRows maps pgx.ErrNoRows to a NOT_FOUND application error.
*/
func TestWrap_NoRows(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "find car")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestWrap_UniqueViolation_Declared maps a 23505 on a declared constraint to
a field-level CONFLICT.
*/
func TestWrap_UniqueViolation_Declared(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "cars_vin_key",
	}

	err := dberr.Wrap(pgErr, "insert car", dberr.Unique{
		Constraint: "cars_vin_key",
		Field:      "vin",
		Message:    "VIN must be unique",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	assert.Equal(t, "VIN must be unique", ae.Message)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "vin", ae.Details[0].Field)
}

/*
TestWrap_UniqueViolation_Undeclared still yields a CONFLICT, but without
leaking the constraint name.
*/
func TestWrap_UniqueViolation_Undeclared(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "some_unexpected_key",
	}

	err := dberr.Wrap(pgErr, "insert car", dberr.Unique{
		Constraint: "cars_vin_key",
		Field:      "vin",
		Message:    "VIN must be unique",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.NotContains(t, ae.Message, "some_unexpected_key")
	assert.Empty(t, ae.Details)
}

/*
TestWrap_Unknown maps everything else to INTERNAL_ERROR while preserving
the cause for logging.
*/
func TestWrap_Unknown(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := dberr.Wrap(cause, "list cars")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatus)
	assert.ErrorIs(t, err, cause)
	// The client-safe message must not expose the driver error.
	assert.NotContains(t, ae.Message, "connection reset")
}

/*
TestWrap_Nil passes nil through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}
