// Copyright (c) 2026 Motorpool. All rights reserved.

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorpoolhq/motorpool/internal/platform/constants"
	"github.com/motorpoolhq/motorpool/internal/platform/ctxutil"
	"github.com/motorpoolhq/motorpool/internal/platform/middleware"
	"github.com/motorpoolhq/motorpool/internal/platform/sec"
)

// fakeResolver implements middleware.IdentityResolver with canned results.
type fakeResolver struct {
	sessions map[string]*sec.Identity
	tokens   map[string]*sec.Identity
}

func (f *fakeResolver) ResolveSession(_ context.Context, token string) (*sec.Identity, error) {
	if identity, ok := f.sessions[token]; ok {
		return identity, nil
	}
	return nil, errors.New("unknown session")
}

func (f *fakeResolver) ResolveAccessToken(_ context.Context, token string) (*sec.Identity, error) {
	if identity, ok := f.tokens[token]; ok {
		return identity, nil
	}
	return nil, errors.New("unknown token")
}

// identityEcho captures the identity seen by the innermost handler.
func identityEcho(into **sec.Identity) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*into = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate_SessionCookie resolves a valid session cookie into an identity.
*/
func TestAuthenticate_SessionCookie(t *testing.T) {
	resolver := &fakeResolver{
		sessions: map[string]*sec.Identity{
			"good-session": {UserID: "user-1", Username: "garage_admin"},
		},
	}

	var seen *sec.Identity
	handler := middleware.Authenticate(resolver)(identityEcho(&seen))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "good-session"})
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.UserID)
}

/*
TestAuthenticate_BearerToken resolves a valid Bearer token into an identity.
*/
func TestAuthenticate_BearerToken(t *testing.T) {
	resolver := &fakeResolver{
		tokens: map[string]*sec.Identity{
			"good-token": {UserID: "user-2", Username: "mechanic"},
		},
	}

	var seen *sec.Identity
	handler := middleware.Authenticate(resolver)(identityEcho(&seen))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	require.NotNil(t, seen)
	assert.Equal(t, "user-2", seen.UserID)
}

/*
TestAuthenticate_BrokenCredentials verifies that every resolution failure
yields an anonymous request — never an error response.
*/
func TestAuthenticate_BrokenCredentials(t *testing.T) {
	resolver := &fakeResolver{}

	tests := []struct {
		name    string
		prepare func(request *http.Request)
	}{
		{"no_credentials", func(*http.Request) {}},
		{"unknown_session", func(request *http.Request) {
			request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "stale"})
		}},
		{"unknown_bearer", func(request *http.Request) {
			request.Header.Set("Authorization", "Bearer forged")
		}},
		{"malformed_header", func(request *http.Request) {
			request.Header.Set("Authorization", "NotBearer")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *sec.Identity
			handler := middleware.Authenticate(resolver)(identityEcho(&seen))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(request)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Nil(t, seen)
			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}

/*
TestRequireAuth_BlocksAnonymous verifies the guard terminates anonymous
requests with 401 before the handler body runs.
*/
func TestRequireAuth_BlocksAnonymous(t *testing.T) {
	handlerRan := false
	handler := middleware.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		handlerRan = true
	}))

	request := httptest.NewRequest(http.MethodPost, "/cars", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.False(t, handlerRan, "guarded handler must not execute for anonymous requests")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "UNAUTHORIZED")
}

/*
TestRequireAuth_PassesAuthenticated verifies an authenticated request
reaches the handler.
*/
func TestRequireAuth_PassesAuthenticated(t *testing.T) {
	handlerRan := false
	handler := middleware.RequireAuth(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		handlerRan = true
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/cars", nil)
	ctx := ctxutil.WithIdentity(request.Context(), &sec.Identity{UserID: "user-1", Username: "garage_admin"})
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request.WithContext(ctx))

	assert.True(t, handlerRan)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
