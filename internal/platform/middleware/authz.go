// Copyright (c) 2026 Motorpool. All rights reserved.

// Package middleware provides the HTTP middleware chain for the Motorpool API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This file covers identity:
// [Authenticate] resolves who is calling, [RequireAuth] decides whether the
// call may proceed. The permission model is deliberately binary — a resolved
// identity may do anything, an absent identity may do nothing protected.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/motorpoolhq/motorpool/internal/platform/apperr"
	"github.com/motorpoolhq/motorpool/internal/platform/constants"
	"github.com/motorpoolhq/motorpool/internal/platform/ctxutil"
	"github.com/motorpoolhq/motorpool/internal/platform/respond"
	"github.com/motorpoolhq/motorpool/internal/platform/sec"
)

// IdentityResolver defines the interface needed to resolve identities in middleware.
//
// # Why an interface?
//
// Defining IdentityResolver here decouples the middleware from the auth
// service implementation, allowing us to easily inject fakes during unit
// testing. Both methods must confirm the underlying account still exists
// before returning a non-nil identity.
type IdentityResolver interface {
	// ResolveSession maps an opaque session-cookie token to an identity.
	ResolveSession(ctx context.Context, token string) (*sec.Identity, error)

	// ResolveAccessToken maps a Bearer access token to an identity.
	ResolveAccessToken(ctx context.Context, token string) (*sec.Identity, error)
}

// Authenticate resolves the caller's identity from the Authorization header
// or the session cookie and injects it into the request context.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>'; if present, resolve it.
//  2. Otherwise check for the session cookie; if present, resolve it.
//  3. Any resolution failure (missing cookie, malformed token, expired
//     session, deleted account) yields an anonymous request — never an
//     error response. Rejection is [RequireAuth]'s job, so public routes
//     behave identically for broken and absent credentials.
func Authenticate(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := resolveIdentity(request, resolver)
			if identity == nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// resolveIdentity tries the Bearer token first, then the session cookie.
// Returns nil for anonymous or unresolvable requests.
func resolveIdentity(request *http.Request, resolver IdentityResolver) *sec.Identity {
	if authHeader := request.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return nil
		}

		identity, err := resolver.ResolveAccessToken(request.Context(), parts[1])
		if err != nil {
			return nil
		}
		return identity
	}

	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	identity, err := resolver.ResolveSession(request.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return identity
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Contract
//
// If no identity was resolved, the wrapped handler never executes — the
// request terminates with HTTP 401 before any side effect can occur.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
