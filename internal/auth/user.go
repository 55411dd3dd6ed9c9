// Copyright (c) 2026 Motorpool. All rights reserved.

// Package auth owns user accounts and session identity for Motorpool.
//
// # Architecture
//
// The entity in this file represents the "Truth" of the system. It has no
// dependencies on outer layers (databases, APIs, or libraries), which keeps
// the core logic testable and resilient to technology changes.
package auth

import (
	"time"
)

// User represents a registered operator of the Motorpool inventory.
//
// # Rules
//   - Username is unique — enforced by the storage layer's unique index,
//     never by application-level locking.
//   - PasswordHash is generated exclusively via [Service.Register]; it is a
//     base64-wrapped bcrypt digest and never the plaintext password.
//   - Accounts are immutable after creation and never deleted by this core.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Field names used in validation messages.
const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// Username and password bounds checked at registration.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 50
	MinPasswordLen = 8
)
