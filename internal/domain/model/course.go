//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxCourseNameLen = 255

// Course represents a program of study offered by the academy.
// FeeCents is the total fee in the smallest currency unit.
type Course struct {
	ID             string    `json:"id"                    db:"id"`
	Name           string    `json:"name"                  db:"name"`
	Description    string    `json:"description,omitempty" db:"description"`
	DurationMonths int       `json:"duration_months"       db:"duration_months"`
	FeeCents       int64     `json:"fee_cents"             db:"fee_cents"`
	Image          string    `json:"image,omitempty"       db:"image"`
	BranchID       *string   `json:"branch_id,omitempty"   db:"branch_id"`
	Active         bool      `json:"active"                db:"active"`
	CreatedAt      time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"            db:"updated_at"`
}

// CoursesListOptions controls paging and filtering for listing courses.
// Sort supports "created_at", "name", "fee_cents"; Dir supports "asc"/"desc".
type CoursesListOptions struct {
	Limit    int
	Offset   int
	Q        *string // substring match on name (ILIKE)
	BranchID *string // exact match
	Active   *bool   // exact match
	Sort     string
	Dir      string
}

// CreateCourseRequest represents parameters to create a Course.
type CreateCourseRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	DurationMonths int     `json:"duration_months"`
	FeeCents       int64   `json:"fee_cents"`
	Image          string  `json:"image,omitempty"`
	BranchID       *string `json:"branch_id,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

// UpdateCourseRequest represents parameters to update a Course.
type UpdateCourseRequest struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	DurationMonths *int    `json:"duration_months,omitempty"`
	FeeCents       *int64  `json:"fee_cents,omitempty"`
	Image          *string `json:"image,omitempty"`
	BranchID       *string `json:"branch_id,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

// Validate validates CreateCourseRequest.
func (r *CreateCourseRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxCourseNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if r.DurationMonths <= 0 {
		return errors.New("duration_months must be > 0")
	}
	if r.FeeCents < 0 {
		return errors.New("fee_cents cannot be negative")
	}
	if r.BranchID != nil && strings.TrimSpace(*r.BranchID) == "" {
		return errors.New("branch_id cannot be empty")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateCourseRequest.
func (r *UpdateCourseRequest) HasUpdates() bool {
	return r.Name != nil || r.Description != nil || r.DurationMonths != nil ||
		r.FeeCents != nil ||
		r.Image != nil ||
		r.BranchID != nil ||
		r.Active != nil
}

// Validate validates UpdateCourseRequest, ensuring at least one field is set and values are sane.
func (r *UpdateCourseRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxCourseNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
		*r.Name = n
	}
	if r.DurationMonths != nil && *r.DurationMonths <= 0 {
		return errors.New("duration_months must be > 0")
	}
	if r.FeeCents != nil && *r.FeeCents < 0 {
		return errors.New("fee_cents cannot be negative")
	}
	// An empty BranchID on update clears the association.
	return nil
}
