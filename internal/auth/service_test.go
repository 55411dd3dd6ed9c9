// Copyright (c) 2026 Motorpool. All rights reserved.

package auth_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorpoolhq/motorpool/internal/auth"
	"github.com/motorpoolhq/motorpool/internal/platform/apperr"
	"github.com/motorpoolhq/motorpool/internal/platform/sec"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository.
type fakeUserRepository struct {
	byID       map[string]*auth.User
	byUsername map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:       make(map[string]*auth.User),
		byUsername: make(map[string]*auth.User),
	}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := f.byUsername[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, taken := f.byUsername[user.Username]; taken {
		return apperr.Conflict("Username is already taken")
	}
	f.byID[user.ID] = user
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepository) remove(id string) {
	if user, ok := f.byID[id]; ok {
		delete(f.byUsername, user.Username)
		delete(f.byID, id)
	}
}

// fakeSessionStore is an in-memory SessionStore. TTLs are accepted but not
// enforced; expiry behavior belongs to Redis.
type fakeSessionStore struct {
	bindings map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{bindings: make(map[string]string)}
}

func (f *fakeSessionStore) Set(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	f.bindings[tokenHash] = userID
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, tokenHash string) (string, error) {
	if userID, ok := f.bindings[tokenHash]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Session")
}

func (f *fakeSessionStore) Delete(_ context.Context, tokenHash string) error {
	delete(f.bindings, tokenHash)
	return nil
}

// fakeTokenProvider issues predictable "signed" tokens.
type fakeTokenProvider struct {
	claims map[string]*sec.AuthClaims
}

func newFakeTokenProvider() *fakeTokenProvider {
	return &fakeTokenProvider{claims: make(map[string]*sec.AuthClaims)}
}

func (f *fakeTokenProvider) GenerateAccessToken(userID, username string, _ time.Duration) (string, error) {
	token := "access-" + userID
	f.claims[token] = &sec.AuthClaims{UserID: userID, Username: username}
	return token, nil
}

func (f *fakeTokenProvider) VerifyToken(tokenString string) (*sec.AuthClaims, error) {
	if claims, ok := f.claims[tokenString]; ok {
		return claims, nil
	}
	return nil, apperr.Unauthorized("Invalid token")
}

type serviceFixture struct {
	service  *auth.Service
	users    *fakeUserRepository
	sessions *fakeSessionStore
	tokens   *fakeTokenProvider
}

func newServiceFixture() *serviceFixture {
	users := newFakeUserRepository()
	sessions := newFakeSessionStore()
	tokens := newFakeTokenProvider()
	// bcrypt cost 4 keeps the suite fast; production uses the config default.
	service := auth.NewService(users, sessions, tokens, 4, slog.Default())

	return &serviceFixture{service: service, users: users, sessions: sessions, tokens: tokens}
}

// # Registration

/*
TestService_Register creates an account and verifies the stored hash is not
the plaintext.
*/
func TestService_Register(t *testing.T) {
	fixture := newServiceFixture()

	user, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Username: "garage_admin",
		Password: "super-secret-1",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "garage_admin", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "super-secret-1", user.PasswordHash)
}

/*
TestService_Register_Validation rejects credentials outside the schema
without touching storage.
*/
func TestService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty_username", "", "super-secret-1"},
		{"short_username", "ab", "super-secret-1"},
		{"long_username", strings.Repeat("a", 51), "super-secret-1"},
		{"empty_password", "garage_admin", ""},
		{"short_password", "garage_admin", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newServiceFixture()

			_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
				Username: tt.username,
				Password: tt.password,
			})

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Empty(t, fixture.users.byID, "nothing may be stored on validation failure")
		})
	}
}

/*
TestService_Register_DuplicateUsername rejects a second account with the
same username.
*/
func TestService_Register_DuplicateUsername(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	_, err := fixture.service.Register(ctx, auth.RegisterInput{Username: "garage_admin", Password: "super-secret-1"})
	require.NoError(t, err)

	_, err = fixture.service.Register(ctx, auth.RegisterInput{Username: "garage_admin", Password: "different-secret"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

// # Login

/*
TestService_Authenticate covers the three-way login outcome: success,
unknown username, wrong password.
*/
func TestService_Authenticate(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	registered, err := fixture.service.Register(ctx, auth.RegisterInput{Username: "garage_admin", Password: "super-secret-1"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := fixture.service.Authenticate(ctx, "garage_admin", "super-secret-1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("unknown_username", func(t *testing.T) {
		_, err := fixture.service.Authenticate(ctx, "nobody", "super-secret-1")
		assert.ErrorIs(t, err, auth.ErrUnknownUser)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := fixture.service.Authenticate(ctx, "garage_admin", "not-the-password")
		assert.ErrorIs(t, err, auth.ErrWrongPassword)
	})
}

// # Sessions

/*
TestService_SessionLifecycle issues a session, resolves it, logs out, and
verifies the token is dead afterwards.
*/
func TestService_SessionLifecycle(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	user, err := fixture.service.Register(ctx, auth.RegisterInput{Username: "garage_admin", Password: "super-secret-1"})
	require.NoError(t, err)

	session, err := fixture.service.IssueSession(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, session.SessionToken)
	require.NotEmpty(t, session.AccessToken)

	// The raw token must never be a storage key.
	_, rawStored := fixture.sessions.bindings[session.SessionToken]
	assert.False(t, rawStored, "session store must hold fingerprints, not raw tokens")

	identity, err := fixture.service.ResolveSession(ctx, session.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, user.Username, identity.Username)

	require.NoError(t, fixture.service.Logout(ctx, session.SessionToken))

	_, err = fixture.service.ResolveSession(ctx, session.SessionToken)
	assert.Error(t, err, "token must resolve to nothing after logout")
}

/*
TestService_Logout_Idempotent verifies repeated and bogus logouts succeed.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	assert.NoError(t, fixture.service.Logout(ctx, "never-issued"))
	assert.NoError(t, fixture.service.Logout(ctx, ""))
	assert.NoError(t, fixture.service.Logout(ctx, "never-issued"))
}

/*
TestService_ResolveSession_DeletedUser verifies a live session of a deleted
account resolves to nothing.
*/
func TestService_ResolveSession_DeletedUser(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	user, err := fixture.service.Register(ctx, auth.RegisterInput{Username: "garage_admin", Password: "super-secret-1"})
	require.NoError(t, err)

	session, err := fixture.service.IssueSession(ctx, user)
	require.NoError(t, err)

	fixture.users.remove(user.ID)

	_, err = fixture.service.ResolveSession(ctx, session.SessionToken)
	assert.Error(t, err)
}

/*
TestService_ResolveAccessToken verifies Bearer resolution, including the
deleted-account check.
*/
func TestService_ResolveAccessToken(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	user, err := fixture.service.Register(ctx, auth.RegisterInput{Username: "garage_admin", Password: "super-secret-1"})
	require.NoError(t, err)

	session, err := fixture.service.IssueSession(ctx, user)
	require.NoError(t, err)

	identity, err := fixture.service.ResolveAccessToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)

	t.Run("forged_token", func(t *testing.T) {
		_, err := fixture.service.ResolveAccessToken(ctx, "forged")
		assert.Error(t, err)
	})

	t.Run("deleted_user", func(t *testing.T) {
		fixture.users.remove(user.ID)
		_, err := fixture.service.ResolveAccessToken(ctx, session.AccessToken)
		assert.Error(t, err)
	})
}
