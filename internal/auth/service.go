// Copyright (c) 2026 Motorpool. All rights reserved.

// Service layer for registration, login, and identity resolution.
//
// # Architecture
//
// The service orchestrates domain entities and talks to storage through the
// interfaces in store.go. It is technology-agnostic and knows nothing about
// HTTP or SQL.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/motorpoolhq/motorpool/internal/platform/apperr"
	"github.com/motorpoolhq/motorpool/internal/platform/constants"
	"github.com/motorpoolhq/motorpool/internal/platform/sec"
	"github.com/motorpoolhq/motorpool/internal/platform/validate"
	"github.com/motorpoolhq/motorpool/pkg/uuidv7"
)

// Authentication failure outcomes.
//
// These are deliberately distinct values with distinct messages: the product
// decision (inherited and confirmed, not accidental) is that login feedback
// tells the caller whether the username exists. Collapsing both into one
// generic message would be a one-line change at the two return sites below.
var (
	// ErrUnknownUser means no account matches the supplied username.
	ErrUnknownUser = apperr.Unauthorized("No account matches this username")

	// ErrWrongPassword means the account exists but the password does not match.
	ErrWrongPassword = apperr.Unauthorized("Incorrect password")
)

// TokenProvider defines the contract for stateless access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed token string for the given user.
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)

	// VerifyToken checks a token's signature and expiry and returns its claims.
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	users    UserRepository
	sessions SessionStore
	tokens   TokenProvider
	hashCost int
	logger   *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
//
// hashCost is the bcrypt work factor; values outside bcrypt's accepted range
// fall back to [sec.DefaultHashCost].
func NewService(users UserRepository, sessions SessionStore, tokens TokenProvider, hashCost int, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hashCost: hashCost,
		logger:   logger,
	}
}

// RegisterInput holds the data required to enroll a new operator.
type RegisterInput struct {
	Username string
	Password string
}

// Register validates, hashes, and persists a brand new user account.
//
// # Returns
//   - A pointer to the newly created [*User].
//   - [apperr.ValidationError] if the credentials fail the schema.
//   - [apperr.Conflict] if the username already exists.
//
// # Business Rules
//   - Usernames are unique; the unique index is the guarantee. The
//     FindByUsername pre-check below only buys a friendlier error without
//     burning a write — two concurrent registrations can both pass it, and
//     the index still admits exactly one.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	// ── 1. Schema Validation ──────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLen).
		MaxLen(FieldUsername, input.Username, MaxUsernameLen).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLen)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness Pre-Check (optimization only) ───────────────────────

	if _, err := service.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken", apperr.FieldError{
			Field:   FieldUsername,
			Message: "Username is already taken",
		})
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password, service.hashCost)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	user := &User{
		ID:           uuidv7.New(), // Time-sortable ID keeps the PK index append-friendly.
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("username", user.Username))
	return user, nil
}

// Authenticate checks a username/password pair.
//
// # Returns
//
// A three-way outcome, distinct from a boolean, so callers can present
// different messages:
//   - (*User, nil) on success
//   - (nil, [ErrUnknownUser]) when the username is not registered
//   - (nil, [ErrWrongPassword]) when the password does not match
func (service *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	// bcrypt comparison is constant-time with respect to the password.
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrWrongPassword
	}

	return user, nil
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	// SessionToken is the opaque value set as the session cookie.
	SessionToken string
	// AccessToken is a short-lived stateless token for non-browser clients.
	AccessToken string
	// ExpiresAt is when the cookie session lapses.
	ExpiresAt time.Time
	// User is the authenticated account.
	User *User
}

// IssueSession establishes a fresh session for an already-authenticated user.
//
// Called after both successful login and successful registration. The raw
// token goes to the client; only its fingerprint is stored.
func (service *Service) IssueSession(ctx context.Context, user *User) (*LoginSession, error) {
	sessionToken, err := sec.GenerateSecureToken(sec.SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(constants.SessionTTL)
	if err := service.sessions.Set(ctx, sec.HashToken(sessionToken), user.ID, constants.SessionTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_store_failed: %w", err)
	}

	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	service.logger.Info("session_issued", slog.String("user_id", user.ID))

	return &LoginSession{
		SessionToken: sessionToken,
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

// Logout forgets the session bound to the given raw token.
//
// If the session is already gone or the token never existed, logout is still
// considered successful (idempotent operation).
func (service *Service) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}

	if err := service.sessions.Delete(ctx, sec.HashToken(sessionToken)); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// GetUser returns the account with the given id.
func (service *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return service.users.FindByID(ctx, id)
}

// ResolveSession maps an opaque cookie token to an [sec.Identity].
//
// # Flow
//  1. Fingerprint the token and look up the bound user id.
//  2. Confirm the account still exists — a session left behind by a deleted
//     account resolves to nothing.
//
// Any failure returns an error; the caller (middleware) treats every error
// as "no identity", never as a request failure.
func (service *Service) ResolveSession(ctx context.Context, token string) (*sec.Identity, error) {
	userID, err := service.sessions.Get(ctx, sec.HashToken(token))
	if err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &sec.Identity{UserID: user.ID, Username: user.Username}, nil
}

// ResolveAccessToken maps a Bearer access token to an [sec.Identity].
//
// The signature check alone is not trusted: the account's existence is
// re-confirmed so that even unexpired tokens of deleted users resolve to
// nothing.
func (service *Service) ResolveAccessToken(ctx context.Context, token string) (*sec.Identity, error) {
	claims, err := service.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &sec.Identity{UserID: user.ID, Username: user.Username}, nil
}
