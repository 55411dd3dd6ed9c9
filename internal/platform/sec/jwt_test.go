// Copyright (c) 2026 Motorpool. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorpoolhq/motorpool/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

/*
TestNewTokenService_SecretLength rejects secrets too short for HS256.
*/
func TestNewTokenService_SecretLength(t *testing.T) {
	_, err := sec.NewTokenService("short", "motorpool.app")
	assert.Error(t, err)

	svc, err := sec.NewTokenService(testSecret, "motorpool.app")
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

/*
TestTokenService_Roundtrip generates a token and verifies its claims.
*/
func TestTokenService_Roundtrip(t *testing.T) {
	svc, err := sec.NewTokenService(testSecret, "motorpool.app")
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("user-123", "garage_admin", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "garage_admin", claims.Username)
	assert.Equal(t, "motorpool.app", claims.Issuer)
}

/*
TestTokenService_Expired rejects tokens whose TTL has elapsed.
*/
func TestTokenService_Expired(t *testing.T) {
	svc, err := sec.NewTokenService(testSecret, "motorpool.app")
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("user-123", "garage_admin", -time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret rejects tokens signed with another key.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	signer, err := sec.NewTokenService(testSecret, "motorpool.app")
	require.NoError(t, err)

	verifier, err := sec.NewTokenService("ffffffffffffffffffffffffffffffff", "motorpool.app")
	require.NoError(t, err)

	token, err := signer.GenerateAccessToken("user-123", "garage_admin", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Garbage rejects strings that are not JWTs at all.
*/
func TestTokenService_Garbage(t *testing.T) {
	svc, err := sec.NewTokenService(testSecret, "motorpool.app")
	require.NoError(t, err)

	_, err = svc.VerifyToken("not-a-jwt")
	assert.Error(t, err)
}
