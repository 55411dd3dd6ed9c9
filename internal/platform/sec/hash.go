// Copyright (c) 2026 Motorpool. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, session
// tokens, JWT signing) from the domain logic. It is injected into the
// application layer through narrow interfaces so services never touch
// crypto libraries directly.
package sec

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when no explicit cost is
// configured. Cost 10 keeps a single hash in the tens of milliseconds on
// current hardware: expensive enough to make offline brute force impractical,
// cheap enough not to stall interactive login.
const DefaultHashCost = 10

// HashPassword hashes a plain-text password with bcrypt at the given cost and
// wraps the result in base64 for storage as an opaque string.
//
// The bcrypt output already embeds its salt and cost factor; the base64 layer
// is a plain reversible text encoding so the stored value survives any
// column collation or copy-paste handling untouched.
func HashPassword(plainTextPassword string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}

	return base64.StdEncoding.EncodeToString(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its stored encoded hash.
//
// # Failure Mode
//
// It never returns an error: a malformed or truncated stored value simply
// yields false, the same as a wrong password. bcrypt's comparison is
// constant-time with respect to the password, so no timing signal leaks.
func CheckPasswordHash(plainTextPassword, encodedHash string) bool {
	hashedBytes, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil {
		return false
	}

	return bcrypt.CompareHashAndPassword(hashedBytes, []byte(plainTextPassword)) == nil
}
