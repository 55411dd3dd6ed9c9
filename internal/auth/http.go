// Copyright (c) 2026 Motorpool. All rights reserved.

// HTTP delivery layer for the auth domain.
//
// # Architecture
//
// Handlers act as the "gatekeepers" to the system. They are responsible for:
//   - JSON request parsing and fast-fail input checks.
//   - Mapping HTTP contexts to service layer method calls.
//   - Session cookie issuance and teardown.
//
// They contain NO business logic or database queries.

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/motorpoolhq/motorpool/internal/platform/constants"
	"github.com/motorpoolhq/motorpool/internal/platform/middleware"
	requestutil "github.com/motorpoolhq/motorpool/internal/platform/request"
	"github.com/motorpoolhq/motorpool/internal/platform/respond"
	"github.com/motorpoolhq/motorpool/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a new [Handler] with its service dependency.
// secureCookies should be true everywhere except local development.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and starts a session.
//   - POST /login    : Authenticates, starts a session, returns an access token.
//   - POST /logout   : Forgets the current session (idempotent).
//   - GET  /me       : Returns the authenticated account (guarded).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.With(middleware.RequireAuth).Get("/me", handler.me)

	return router
}

// credentialsRequest represents the JSON payload for register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// register handles POST /api/v1/auth/register requests.
//
// # Returns
//   - HTTP 201 Created on success with the User profile; the session cookie
//     is set so a fresh registration is immediately logged in.
//   - HTTP 400 Bad Request if validation rules fail.
//   - HTTP 409 Conflict if the username is taken.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input credentialsRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	// The service runs the full schema (presence, lengths) in one pass and
	// reports every violation keyed by field.
	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.IssueSession(request.Context(), user)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	handler.setSessionCookie(writer, session)
	respond.Created(writer, map[string]any{
		"access_token": session.AccessToken,
		"user":         session.User,
	})
}

// login handles POST /api/v1/auth/login requests.
//
// # Returns
//   - HTTP 200 OK on success with AccessToken and User profile.
//   - HTTP 401 Unauthorized with distinct messages for an unknown username
//     versus a wrong password (the service's three-way outcome).
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input credentialsRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if input.Username == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("username/password", "are required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	user, err := handler.authService.Authenticate(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.IssueSession(request.Context(), user)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	handler.setSessionCookie(writer, session)
	respond.OK(writer, map[string]any{
		"access_token": session.AccessToken,
		"user":         session.User,
	})
}

// logout handles POST /api/v1/auth/logout requests.
//
// Always answers 204: forgetting an absent or already-forgotten session is
// a success by design.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var token string
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		token = cookie.Value
	}

	if err := handler.authService.Logout(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookie(writer)
	respond.NoContent(writer)
}

// me handles GET /api/v1/auth/me requests (guarded by RequireAuth).
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.GetUser(request.Context(), identity.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Cookie Handling

// setSessionCookie attaches the opaque session token to the response.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    session.SessionToken,
		Path:     constants.SessionCookiePath,
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie immediately.
func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
