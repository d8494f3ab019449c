//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// OutstandingStudent is a highlighted achievement shown on the public site.
// StudentID is optional so alumni without a current student record can be featured.
type OutstandingStudent struct {
	ID          string    `json:"id"                   db:"id"`
	Name        string    `json:"name"                 db:"name"`
	Achievement string    `json:"achievement"          db:"achievement"`
	Year        int       `json:"year"                 db:"year"`
	Image       string    `json:"image,omitempty"      db:"image"`
	StudentID   *string   `json:"student_id,omitempty" db:"student_id"`
	CourseID    *string   `json:"course_id,omitempty"  db:"course_id"`
	Published   bool      `json:"published"            db:"published"`
	CreatedAt   time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"           db:"updated_at"`
}

// OutstandingStudentsListOptions controls paging and filtering.
// Sort supports "created_at", "name", "year"; Dir supports "asc"/"desc".
type OutstandingStudentsListOptions struct {
	Limit     int
	Offset    int
	Q         *string // substring match on name or achievement (ILIKE)
	Year      *int    // exact match
	Published *bool   // exact match
	Sort      string
	Dir       string
}

// CreateOutstandingStudentRequest represents parameters to create an OutstandingStudent.
type CreateOutstandingStudentRequest struct {
	Name        string  `json:"name"`
	Achievement string  `json:"achievement"`
	Year        int     `json:"year"`
	Image       string  `json:"image,omitempty"`
	StudentID   *string `json:"student_id,omitempty"`
	CourseID    *string `json:"course_id,omitempty"`
	Published   *bool   `json:"published,omitempty"`
}

// UpdateOutstandingStudentRequest represents parameters to update an OutstandingStudent.
type UpdateOutstandingStudentRequest struct {
	Name        *string `json:"name,omitempty"`
	Achievement *string `json:"achievement,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Image       *string `json:"image,omitempty"`
	StudentID   *string `json:"student_id,omitempty"`
	CourseID    *string `json:"course_id,omitempty"`
	Published   *bool   `json:"published,omitempty"`
}

// Validate validates CreateOutstandingStudentRequest.
func (r *CreateOutstandingStudentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxUserNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Achievement) == "" {
		return errors.New("achievement is required")
	}
	if r.Year < 1900 || r.Year > time.Now().Year()+1 {
		return errors.New("year is out of range")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateOutstandingStudentRequest.
func (r *UpdateOutstandingStudentRequest) HasUpdates() bool {
	return r.Name != nil || r.Achievement != nil || r.Year != nil || r.Image != nil ||
		r.StudentID != nil ||
		r.CourseID != nil ||
		r.Published != nil
}

// Validate validates UpdateOutstandingStudentRequest.
func (r *UpdateOutstandingStudentRequest) Validate() error {
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
	if r.Achievement != nil && strings.TrimSpace(*r.Achievement) == "" {
		return errors.New("achievement cannot be empty")
	}
	if r.Year != nil && (*r.Year < 1900 || *r.Year > time.Now().Year()+1) {
		return errors.New("year is out of range")
	}
	return nil
}
