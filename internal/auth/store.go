// Copyright (c) 2026 Motorpool. All rights reserved.

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently.
//
// # Implementations
//
// The canonical implementation for Motorpool is PostgreSQL ([PostgresUserRepository]).
type UserRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername returns the account with the given username.
	//
	// Returns [apperr.NotFound] if the username is available.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new user account to the storage.
	//
	// Returns [apperr.Conflict] if the username unique constraint fails.
	// The constraint is the uniqueness guarantee; any service-level
	// pre-check is only an optimization for a friendlier message.
	Create(ctx context.Context, user *User) error
}

// SessionStore defines the contract for the volatile session-token mapping.
//
// # Security Concept
//
// The store holds token fingerprints, never raw tokens, mapped to user ids
// with a TTL. Deleting the key is the entire "forget identity" operation:
// the cookie value in the wild becomes meaningless the moment the key is gone.
type SessionStore interface {
	// Set binds a token fingerprint to a userID for the given duration.
	Set(ctx context.Context, tokenHash string, userID string, ttl time.Duration) error

	// Get retrieves the userID bound to a token fingerprint.
	//
	// Returns [apperr.NotFound] if the session is absent or expired.
	Get(ctx context.Context, tokenHash string) (string, error)

	// Delete removes a session binding. Deleting an absent binding is not
	// an error — logout is idempotent.
	Delete(ctx context.Context, tokenHash string) error
}
