//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxBranchNameLen = 255
	maxPhoneLen      = 32
)

// Branch represents a physical academy location.
type Branch struct {
	ID        string    `json:"id"                db:"id"`
	Name      string    `json:"name"              db:"name"`
	Address   string    `json:"address"           db:"address"`
	City      string    `json:"city"              db:"city"`
	Phone     string    `json:"phone,omitempty"   db:"phone"`
	Email     string    `json:"email,omitempty"   db:"email"`
	Image     string    `json:"image,omitempty"   db:"image"`
	Active    bool      `json:"active"            db:"active"`
	CreatedAt time.Time `json:"created_at"        db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"        db:"updated_at"`
}

// BranchesListOptions controls paging and filtering for listing branches.
// Sort supports "created_at", "name", "city"; Dir supports "asc"/"desc".
type BranchesListOptions struct {
	Limit  int
	Offset int
	Q      *string // substring match on name or city (ILIKE)
	Active *bool   // exact match
	Sort   string
	Dir    string
}

// CreateBranchRequest represents parameters to create a Branch.
type CreateBranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Image   string `json:"image,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}

// UpdateBranchRequest represents parameters to update a Branch.
type UpdateBranchRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Image   *string `json:"image,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

// Validate validates CreateBranchRequest.
func (r *CreateBranchRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxBranchNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Address) == "" {
		return errors.New("address is required")
	}
	if strings.TrimSpace(r.City) == "" {
		return errors.New("city is required")
	}
	if utf8.RuneCountInString(r.Phone) > maxPhoneLen {
		return errors.New("phone cannot exceed 32 characters")
	}
	if r.Email != "" {
		email, err := normalizeEmail(r.Email)
		if err != nil {
			return err
		}
		r.Email = email
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateBranchRequest.
func (r *UpdateBranchRequest) HasUpdates() bool {
	return r.Name != nil || r.Address != nil || r.City != nil || r.Phone != nil ||
		r.Email != nil ||
		r.Image != nil ||
		r.Active != nil
}

// Validate validates UpdateBranchRequest, ensuring at least one field is set and values are sane.
func (r *UpdateBranchRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxBranchNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
		*r.Name = n
	}
	if r.Address != nil && strings.TrimSpace(*r.Address) == "" {
		return errors.New("address cannot be empty")
	}
	if r.City != nil && strings.TrimSpace(*r.City) == "" {
		return errors.New("city cannot be empty")
	}
	if r.Phone != nil && utf8.RuneCountInString(*r.Phone) > maxPhoneLen {
		return errors.New("phone cannot exceed 32 characters")
	}
	if r.Email != nil && *r.Email != "" {
		email, err := normalizeEmail(*r.Email)
		if err != nil {
			return err
		}
		*r.Email = email
	}
	return nil
}
