//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// FacultyMember represents a teacher or staff profile shown on the site
// and managed by administrators.
type FacultyMember struct {
	ID            string    `json:"id"                      db:"id"`
	Name          string    `json:"name"                    db:"name"`
	Email         string    `json:"email"                   db:"email"`
	Phone         string    `json:"phone,omitempty"         db:"phone"`
	Designation   string    `json:"designation"             db:"designation"`
	Qualification string    `json:"qualification,omitempty" db:"qualification"`
	Bio           string    `json:"bio,omitempty"           db:"bio"`
	Image         string    `json:"image,omitempty"         db:"image"`
	BranchID      *string   `json:"branch_id,omitempty"     db:"branch_id"`
	Active        bool      `json:"active"                  db:"active"`
	CreatedAt     time.Time `json:"created_at"              db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"              db:"updated_at"`
}

// FacultyListOptions controls paging and filtering for listing faculty.
// Sort supports "created_at", "name", "designation"; Dir supports "asc"/"desc".
type FacultyListOptions struct {
	Limit    int
	Offset   int
	Q        *string // substring match on name or designation (ILIKE)
	BranchID *string // exact match
	Active   *bool   // exact match
	Sort     string
	Dir      string
}

// CreateFacultyRequest represents parameters to create a FacultyMember.
type CreateFacultyRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	Designation   string  `json:"designation"`
	Qualification string  `json:"qualification,omitempty"`
	Bio           string  `json:"bio,omitempty"`
	Image         string  `json:"image,omitempty"`
	BranchID      *string `json:"branch_id,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

// UpdateFacultyRequest represents parameters to update a FacultyMember.
type UpdateFacultyRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Designation   *string `json:"designation,omitempty"`
	Qualification *string `json:"qualification,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	Image         *string `json:"image,omitempty"`
	BranchID      *string `json:"branch_id,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

// Validate validates CreateFacultyRequest.
func (r *CreateFacultyRequest) Validate() error {
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
	if strings.TrimSpace(r.Designation) == "" {
		return errors.New("designation is required")
	}
	if utf8.RuneCountInString(r.Phone) > maxPhoneLen {
		return errors.New("phone cannot exceed 32 characters")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateFacultyRequest.
func (r *UpdateFacultyRequest) HasUpdates() bool {
	return r.Name != nil || r.Email != nil || r.Phone != nil || r.Designation != nil ||
		r.Qualification != nil ||
		r.Bio != nil ||
		r.Image != nil ||
		r.BranchID != nil ||
		r.Active != nil
}

// Validate validates UpdateFacultyRequest, ensuring at least one field is set and values are sane.
func (r *UpdateFacultyRequest) Validate() error {
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
	if r.Designation != nil && strings.TrimSpace(*r.Designation) == "" {
		return errors.New("designation cannot be empty")
	}
	if r.Phone != nil && utf8.RuneCountInString(*r.Phone) > maxPhoneLen {
		return errors.New("phone cannot exceed 32 characters")
	}
	return nil
}
