// Copyright (c) 2026 Motorpool. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// SessionTokenLength is the byte length of a raw session token before
// encoding. 32 bytes gives 256 bits of entropy, which is well beyond
// guessable for an opaque bearer credential.
const SessionTokenLength = 32

// GenerateSecureToken creates a cryptographically secure random token of the
// given byte length, returned as a base64url string (URL- and cookie-safe,
// no padding).
func GenerateSecureToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("sec: token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken returns a deterministic SHA-256 fingerprint of a token, encoded
// as base64url.
//
// # Why store fingerprints?
//
// Session stores keep only the fingerprint, never the raw token. Someone who
// reads the store contents cannot reconstruct a usable cookie value, while
// lookups by the genuine token remain a single hash away.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
