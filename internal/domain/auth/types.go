package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"encoding/json"
	"errors"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
	RoleGuest   Role = "guest"
)

// ValidRole reports whether r is one of the assignable account roles.
// Guest is a computed state (no session), never stored on an account.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return true
	}
	return false
}

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (e.g., sub or account email)
	Name      string
	Email     string
	Groups    []string
	ExpiresAt time.Time // absolute expiry from IdP token
}

// UserSnapshot is the account view embedded in a session. It is what the
// front-end receives from login and status responses; Details carries the
// role-specific profile blob untouched.
type UserSnapshot struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Role    Role            `json:"role"`
	Active  bool            `json:"active"`
	Avatar  string          `json:"avatar,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
// A Session value only exists for a logged-in user: NewSession enforces a
// non-empty user and a valid role, so holding one implies authenticated.
type Session struct {
	ID        string       `json:"id"`
	User      UserSnapshot `json:"user"`
	Role      Role         `json:"role"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// ErrInvalidSession is returned by NewSession when the inputs cannot form a
// valid authenticated session.
var ErrInvalidSession = errors.New("invalid session")

// NewSession builds a session for user expiring at expiresAt. The session
// role always mirrors the user's role.
func NewSession(id string, user UserSnapshot, expiresAt time.Time) (Session, error) {
	if id == "" || user.ID == "" || !ValidRole(user.Role) {
		return Session{}, ErrInvalidSession
	}
	return Session{
		ID:        id,
		User:      user,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	}, nil
}

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Expired reports whether the session has passed its expiry at time now.
func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
