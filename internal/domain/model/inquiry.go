//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxInquiryMessageLen = 4000

// InquiryStatus tracks the follow-up state of a contact inquiry.
type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "new"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusClosed    InquiryStatus = "closed"
)

// Valid reports whether the inquiry status is supported.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusContacted, InquiryStatusClosed:
		return true
	default:
		return false
	}
}

// ParseInquiryStatus normalizes a status string and reports whether it is supported.
func ParseInquiryStatus(value string) (InquiryStatus, bool) {
	status := InquiryStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Inquiry is a contact-form submission from the public site.
type Inquiry struct {
	ID        string        `json:"id"                  db:"id"`
	Name      string        `json:"name"                db:"name"`
	Email     string        `json:"email"               db:"email"`
	Phone     string        `json:"phone,omitempty"     db:"phone"`
	Subject   string        `json:"subject,omitempty"   db:"subject"`
	Message   string        `json:"message"             db:"message"`
	CourseID  *string       `json:"course_id,omitempty" db:"course_id"`
	Status    InquiryStatus `json:"status"              db:"status"`
	Note      string        `json:"note,omitempty"      db:"note"`
	CreatedAt time.Time     `json:"created_at"          db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"          db:"updated_at"`
}

// InquiriesListOptions controls paging and filtering for listing inquiries.
// Sort supports "created_at", "name", "status"; Dir supports "asc"/"desc".
type InquiriesListOptions struct {
	Limit    int
	Offset   int
	Q        *string        // substring match on name, email, or subject (ILIKE)
	Status   *InquiryStatus // exact match
	CourseID *string        // exact match
	Sort     string
	Dir      string
}

// CreateInquiryRequest represents a contact-form submission.
// Status is always "new" on creation and cannot be supplied by the caller.
type CreateInquiryRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone,omitempty"`
	Subject  string  `json:"subject,omitempty"`
	Message  string  `json:"message"`
	CourseID *string `json:"course_id,omitempty"`
}

// UpdateInquiryRequest represents the follow-up fields staff may change.
type UpdateInquiryRequest struct {
	Status *InquiryStatus `json:"status,omitempty"`
	Note   *string        `json:"note,omitempty"`
}

// Validate validates CreateInquiryRequest.
func (r *CreateInquiryRequest) Validate() error {
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
	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" {
		return errors.New("message is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Message) > maxInquiryMessageLen {
		return errors.New("message cannot exceed 4000 characters")
	}
	if r.CourseID != nil && strings.TrimSpace(*r.CourseID) == "" {
		return errors.New("course_id cannot be empty")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateInquiryRequest.
func (r *UpdateInquiryRequest) HasUpdates() bool {
	return r.Status != nil || r.Note != nil
}

// Validate validates UpdateInquiryRequest.
func (r *UpdateInquiryRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Status != nil {
		status, ok := ParseInquiryStatus(string(*r.Status))
		if !ok {
			return errors.New("invalid status")
		}
		*r.Status = status
	}
	return nil
}
