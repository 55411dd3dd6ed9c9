// Copyright (c) 2026 Motorpool. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorpoolhq/motorpool/internal/platform/sec"
)

/*
TestHashPassword_Roundtrip verifies that a hashed password verifies against
its own plaintext and rejects everything else.
*/
func TestHashPassword_Roundtrip(t *testing.T) {
	encoded, err := sec.HashPassword("correct horse battery", sec.DefaultHashCost)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	assert.True(t, sec.CheckPasswordHash("correct horse battery", encoded))
	assert.False(t, sec.CheckPasswordHash("wrong horse battery", encoded))
	assert.False(t, sec.CheckPasswordHash("", encoded))
}

/*
TestHashPassword_Salted verifies that hashing the same plaintext twice
yields different encodings (bcrypt salts internally).
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("same-password", sec.DefaultHashCost)
	require.NoError(t, err)

	second, err := sec.HashPassword("same-password", sec.DefaultHashCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("same-password", first))
	assert.True(t, sec.CheckPasswordHash("same-password", second))
}

/*
TestHashPassword_CostClamped verifies that an out-of-range cost falls back
to the default instead of failing.
*/
func TestHashPassword_CostClamped(t *testing.T) {
	encoded, err := sec.HashPassword("clamp-me", 0)
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("clamp-me", encoded))
}

/*
TestCheckPasswordHash_Malformed verifies that garbage stored hashes never
panic or verify — they simply fail the check.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not_base64", "!!!not-base64!!!"},
		{"base64_but_not_bcrypt", "aGVsbG8gd29ybGQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.CheckPasswordHash("anything", tt.encoded))
		})
	}
}

/*
TestGenerateSecureToken verifies token generation produces distinct,
non-empty, URL-safe values.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(sec.SessionTokenLength)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := sec.GenerateSecureToken(sec.SessionTokenLength)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")
}

/*
TestHashToken verifies that token fingerprinting is deterministic and
one-way (fingerprint differs from the token).
*/
func TestHashToken(t *testing.T) {
	token := "some-opaque-session-token"

	assert.Equal(t, sec.HashToken(token), sec.HashToken(token))
	assert.NotEqual(t, token, sec.HashToken(token))
	assert.NotEqual(t, sec.HashToken(token), sec.HashToken(token+"x"))
}
