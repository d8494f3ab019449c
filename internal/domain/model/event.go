//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxEventTitleLen = 255

// Event represents an academy event such as a seminar, workshop, or ceremony.
type Event struct {
	ID          string     `json:"id"                    db:"id"`
	Title       string     `json:"title"                 db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	Location    string     `json:"location,omitempty"    db:"location"`
	Image       string     `json:"image,omitempty"       db:"image"`
	BranchID    *string    `json:"branch_id,omitempty"   db:"branch_id"`
	StartsAt    time.Time  `json:"starts_at"             db:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"     db:"ends_at"`
	Published   bool       `json:"published"             db:"published"`
	CreatedAt   time.Time  `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"            db:"updated_at"`
}

// EventsListOptions controls paging and filtering for listing events.
// Sort supports "created_at", "title", "starts_at"; Dir supports "asc"/"desc".
type EventsListOptions struct {
	Limit     int
	Offset    int
	Q         *string    // substring match on title or location (ILIKE)
	BranchID  *string    // exact match
	Published *bool      // exact match
	After     *time.Time // starts_at >= After
	Sort      string
	Dir       string
}

// CreateEventRequest represents parameters to create an Event.
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Image       string     `json:"image,omitempty"`
	BranchID    *string    `json:"branch_id,omitempty"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Published   *bool      `json:"published,omitempty"`
}

// UpdateEventRequest represents parameters to update an Event.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Image       *string    `json:"image,omitempty"`
	BranchID    *string    `json:"branch_id,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Published   *bool      `json:"published,omitempty"`
}

// Validate validates CreateEventRequest.
func (r *CreateEventRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Title) > maxEventTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if r.StartsAt.IsZero() {
		return errors.New("starts_at is required")
	}
	if r.EndsAt != nil && r.EndsAt.Before(r.StartsAt) {
		return errors.New("ends_at cannot be before starts_at")
	}
	if r.BranchID != nil && strings.TrimSpace(*r.BranchID) == "" {
		return errors.New("branch_id cannot be empty")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateEventRequest.
func (r *UpdateEventRequest) HasUpdates() bool {
	return r.Title != nil || r.Description != nil || r.Location != nil || r.Image != nil ||
		r.BranchID != nil ||
		r.StartsAt != nil ||
		r.EndsAt != nil ||
		r.Published != nil
}

// Validate validates UpdateEventRequest, ensuring at least one field is set and values are sane.
// Start/end ordering across a partial update is enforced by the repository,
// which sees the merged row.
func (r *UpdateEventRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(t) > maxEventTitleLen {
			return errors.New("title cannot exceed 255 characters")
		}
		*r.Title = t
	}
	if r.StartsAt != nil && r.StartsAt.IsZero() {
		return errors.New("starts_at cannot be zero")
	}
	if r.StartsAt != nil && r.EndsAt != nil && r.EndsAt.Before(*r.StartsAt) {
		return errors.New("ends_at cannot be before starts_at")
	}
	// An empty BranchID on update clears the association.
	return nil
}
