//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	auth "github.com/edunexa/academy-api/internal/domain/auth"
)

const (
	maxUserNameLen  = 255
	minPasswordLen  = 8
	maxPasswordLen  = 72 // bcrypt input limit
	maxAvatarURLLen = 1024
)

// User represents an academy account that can sign in.
// PasswordHash never leaves the data layer in API responses.
type User struct {
	ID           string          `json:"id"                 db:"id"`
	Name         string          `json:"name"               db:"name"`
	Email        string          `json:"email"              db:"email"`
	PasswordHash string          `json:"-"                  db:"password_hash"`
	Role         auth.Role       `json:"role"               db:"role"`
	Active       bool            `json:"active"             db:"active"`
	Avatar       string          `json:"avatar,omitempty"   db:"avatar"`
	Details      json.RawMessage `json:"details,omitempty"  db:"details"`
	CreatedAt    time.Time       `json:"created_at"         db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"         db:"updated_at"`
}

// Snapshot returns the session-embedded view of the user.
func (u *User) Snapshot() auth.UserSnapshot {
	return auth.UserSnapshot{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Active:  u.Active,
		Avatar:  u.Avatar,
		Details: u.Details,
	}
}

// UsersListOptions controls paging and filtering for listing users.
// Sort supports "created_at", "name", "email"; Dir supports "asc"/"desc".
type UsersListOptions struct {
	Limit  int
	Offset int
	Q      *string    // substring match on name or email (ILIKE)
	Role   *auth.Role // exact match
	Active *bool      // exact match
	Sort   string
	Dir    string
}

// CreateUserRequest represents parameters to create a User.
// Password carries the plaintext only between transport and service layers.
type CreateUserRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     auth.Role       `json:"role"`
	Active   *bool           `json:"active,omitempty"`
	Avatar   string          `json:"avatar,omitempty"`
	Details  json.RawMessage `json:"details,omitempty"`
}

// UpdateUserRequest represents parameters to update a User.
type UpdateUserRequest struct {
	Name     *string          `json:"name,omitempty"`
	Email    *string          `json:"email,omitempty"`
	Password *string          `json:"password,omitempty"`
	Role     *auth.Role       `json:"role,omitempty"`
	Active   *bool            `json:"active,omitempty"`
	Avatar   *string          `json:"avatar,omitempty"`
	Details  *json.RawMessage `json:"details,omitempty"`
}

// UpdateProfileRequest is the self-service subset of UpdateUserRequest.
// Role and Active are deliberately absent.
type UpdateProfileRequest struct {
	Name    *string          `json:"name,omitempty"`
	Avatar  *string          `json:"avatar,omitempty"`
	Details *json.RawMessage `json:"details,omitempty"`
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxUserNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	email, err := normalizeEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email
	if err := validatePassword(r.Password); err != nil {
		return err
	}
	if !auth.ValidRole(r.Role) {
		return errors.New("invalid role")
	}
	if utf8.RuneCountInString(r.Avatar) > maxAvatarURLLen {
		return errors.New("avatar cannot exceed 1024 characters")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateUserRequest.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.Name != nil || r.Email != nil || r.Password != nil || r.Role != nil ||
		r.Active != nil ||
		r.Avatar != nil ||
		r.Details != nil
}

// Validate validates UpdateUserRequest, ensuring at least one field is set and values are sane.
func (r *UpdateUserRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxUserNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
		*r.Name = n
	}
	if r.Email != nil {
		email, err := normalizeEmail(*r.Email)
		if err != nil {
			return err
		}
		*r.Email = email
	}
	if r.Password != nil {
		if err := validatePassword(*r.Password); err != nil {
			return err
		}
	}
	if r.Role != nil && !auth.ValidRole(*r.Role) {
		return errors.New("invalid role")
	}
	if r.Avatar != nil && utf8.RuneCountInString(*r.Avatar) > maxAvatarURLLen {
		return errors.New("avatar cannot exceed 1024 characters")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateProfileRequest.
func (r *UpdateProfileRequest) HasUpdates() bool {
	return r.Name != nil || r.Avatar != nil || r.Details != nil
}

// Validate validates UpdateProfileRequest.
func (r *UpdateProfileRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxUserNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
		*r.Name = n
	}
	if r.Avatar != nil && utf8.RuneCountInString(*r.Avatar) > maxAvatarURLLen {
		return errors.New("avatar cannot exceed 1024 characters")
	}
	return nil
}

// AsUserUpdate converts the profile request into the general update shape.
func (r *UpdateProfileRequest) AsUserUpdate() UpdateUserRequest {
	return UpdateUserRequest{
		Name:    r.Name,
		Avatar:  r.Avatar,
		Details: r.Details,
	}
}

// normalizeEmail trims, lowercases, and syntax-checks an email address.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", errors.New("email is required and cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", errors.New("email is not a valid address")
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > maxPasswordLen {
		return errors.New("password cannot exceed 72 characters")
	}
	return nil
}
