//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Student represents an enrolled student record.
type Student struct {
	ID         string     `json:"id"                    db:"id"`
	Name       string     `json:"name"                  db:"name"`
	Email      string     `json:"email"                 db:"email"`
	Phone      string     `json:"phone,omitempty"       db:"phone"`
	Guardian   string     `json:"guardian,omitempty"    db:"guardian"`
	Address    string     `json:"address,omitempty"     db:"address"`
	Image      string     `json:"image,omitempty"       db:"image"`
	BranchID   *string    `json:"branch_id,omitempty"   db:"branch_id"`
	CourseID   *string    `json:"course_id,omitempty"   db:"course_id"`
	EnrolledAt *time.Time `json:"enrolled_at,omitempty" db:"enrolled_at"`
	Active     bool       `json:"active"                db:"active"`
	CreatedAt  time.Time  `json:"created_at"            db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"            db:"updated_at"`
}

// StudentsListOptions controls paging and filtering for listing students.
// Sort supports "created_at", "name", "enrolled_at"; Dir supports "asc"/"desc".
type StudentsListOptions struct {
	Limit    int
	Offset   int
	Q        *string // substring match on name or email (ILIKE)
	BranchID *string // exact match
	CourseID *string // exact match
	Active   *bool   // exact match
	Sort     string
	Dir      string
}

// CreateStudentRequest represents parameters to create a Student.
type CreateStudentRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Guardian   string     `json:"guardian,omitempty"`
	Address    string     `json:"address,omitempty"`
	Image      string     `json:"image,omitempty"`
	BranchID   *string    `json:"branch_id,omitempty"`
	CourseID   *string    `json:"course_id,omitempty"`
	EnrolledAt *time.Time `json:"enrolled_at,omitempty"`
	Active     *bool      `json:"active,omitempty"`
}

// UpdateStudentRequest represents parameters to update a Student.
type UpdateStudentRequest struct {
	Name       *string    `json:"name,omitempty"`
	Email      *string    `json:"email,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	Guardian   *string    `json:"guardian,omitempty"`
	Address    *string    `json:"address,omitempty"`
	Image      *string    `json:"image,omitempty"`
	BranchID   *string    `json:"branch_id,omitempty"`
	CourseID   *string    `json:"course_id,omitempty"`
	EnrolledAt *time.Time `json:"enrolled_at,omitempty"`
	Active     *bool      `json:"active,omitempty"`
}

// Validate validates CreateStudentRequest.
func (r *CreateStudentRequest) Validate() error {
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
	if utf8.RuneCountInString(r.Phone) > maxPhoneLen {
		return errors.New("phone cannot exceed 32 characters")
	}
	if r.BranchID != nil && strings.TrimSpace(*r.BranchID) == "" {
		return errors.New("branch_id cannot be empty")
	}
	if r.CourseID != nil && strings.TrimSpace(*r.CourseID) == "" {
		return errors.New("course_id cannot be empty")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateStudentRequest.
func (r *UpdateStudentRequest) HasUpdates() bool {
	return r.Name != nil || r.Email != nil || r.Phone != nil || r.Guardian != nil ||
		r.Address != nil ||
		r.Image != nil ||
		r.BranchID != nil ||
		r.CourseID != nil ||
		r.EnrolledAt != nil ||
		r.Active != nil
}

// Validate validates UpdateStudentRequest, ensuring at least one field is set and values are sane.
func (r *UpdateStudentRequest) Validate() error {
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
	if r.Phone != nil && utf8.RuneCountInString(*r.Phone) > maxPhoneLen {
		return errors.New("phone cannot exceed 32 characters")
	}
	// Empty BranchID or CourseID on update clears the association.
	return nil
}
