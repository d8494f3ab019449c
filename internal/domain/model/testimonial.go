//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTestimonialQuoteLen = 2000
	minTestimonialRating   = 1
	maxTestimonialRating   = 5
)

// Testimonial is a quote from a student or guardian shown on the public site.
type Testimonial struct {
	ID        string    `json:"id"                  db:"id"`
	Author    string    `json:"author"              db:"author"`
	Relation  string    `json:"relation,omitempty"  db:"relation"`
	Quote     string    `json:"quote"               db:"quote"`
	Rating    int       `json:"rating"              db:"rating"`
	Image     string    `json:"image,omitempty"     db:"image"`
	CourseID  *string   `json:"course_id,omitempty" db:"course_id"`
	Published bool      `json:"published"           db:"published"`
	CreatedAt time.Time `json:"created_at"          db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"          db:"updated_at"`
}

// TestimonialsListOptions controls paging and filtering for listing testimonials.
// Sort supports "created_at", "author", "rating"; Dir supports "asc"/"desc".
type TestimonialsListOptions struct {
	Limit     int
	Offset    int
	Q         *string // substring match on author or quote (ILIKE)
	Published *bool   // exact match
	Sort      string
	Dir       string
}

// CreateTestimonialRequest represents parameters to create a Testimonial.
type CreateTestimonialRequest struct {
	Author    string  `json:"author"`
	Relation  string  `json:"relation,omitempty"`
	Quote     string  `json:"quote"`
	Rating    int     `json:"rating"`
	Image     string  `json:"image,omitempty"`
	CourseID  *string `json:"course_id,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// UpdateTestimonialRequest represents parameters to update a Testimonial.
type UpdateTestimonialRequest struct {
	Author    *string `json:"author,omitempty"`
	Relation  *string `json:"relation,omitempty"`
	Quote     *string `json:"quote,omitempty"`
	Rating    *int    `json:"rating,omitempty"`
	Image     *string `json:"image,omitempty"`
	CourseID  *string `json:"course_id,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// Validate validates CreateTestimonialRequest.
func (r *CreateTestimonialRequest) Validate() error {
	r.Author = strings.TrimSpace(r.Author)
	if r.Author == "" {
		return errors.New("author is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Author) > maxUserNameLen {
		return errors.New("author cannot exceed 255 characters")
	}
	r.Quote = strings.TrimSpace(r.Quote)
	if r.Quote == "" {
		return errors.New("quote is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Quote) > maxTestimonialQuoteLen {
		return errors.New("quote cannot exceed 2000 characters")
	}
	if r.Rating < minTestimonialRating || r.Rating > maxTestimonialRating {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateTestimonialRequest.
func (r *UpdateTestimonialRequest) HasUpdates() bool {
	return r.Author != nil || r.Relation != nil || r.Quote != nil || r.Rating != nil ||
		r.Image != nil ||
		r.CourseID != nil ||
		r.Published != nil
}

// Validate validates UpdateTestimonialRequest.
func (r *UpdateTestimonialRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Author != nil {
		a := strings.TrimSpace(*r.Author)
		if a == "" {
			return errors.New("author cannot be empty")
		}
		if utf8.RuneCountInString(a) > maxUserNameLen {
			return errors.New("author cannot exceed 255 characters")
		}
		*r.Author = a
	}
	if r.Quote != nil {
		q := strings.TrimSpace(*r.Quote)
		if q == "" {
			return errors.New("quote cannot be empty")
		}
		if utf8.RuneCountInString(q) > maxTestimonialQuoteLen {
			return errors.New("quote cannot exceed 2000 characters")
		}
		*r.Quote = q
	}
	if r.Rating != nil && (*r.Rating < minTestimonialRating || *r.Rating > maxTestimonialRating) {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}
