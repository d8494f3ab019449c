package httpx

import (
	"context"

	domainauth "github.com/edunexa/academy-api/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
func SetSessionInContext(ctx context.Context, session domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session from context and whether one is present.
// A present session is always authenticated; guests never carry one.
func SessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(domainauth.Session); ok {
		return session, true
	}
	return domainauth.Session{}, false
}

// RoleFromContext returns the effective role for the request. Requests
// without a session act as guests.
func RoleFromContext(ctx context.Context) domainauth.Role {
	if session, ok := SessionFromContext(ctx); ok {
		return session.Role
	}
	return domainauth.RoleGuest
}
