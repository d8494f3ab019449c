package data

import (
	"errors"

	"github.com/edunexa/academy-api/internal/core"
)

// Shared sentinel errors for data-layer repositories.
var (
	// User repository sentinels. Not-found lives in core so the service
	// layer can match it without importing this package.
	ErrUserNotFound    = core.ErrUserNotFound
	ErrUserEmailExists = errors.New("user email already exists")

	// Catalog repository sentinels.
	ErrBranchNotFound             = errors.New("branch not found")
	ErrBranchNameExists           = errors.New("branch name already exists")
	ErrCourseNotFound             = errors.New("course not found")
	ErrCourseNameExists           = errors.New("course name already exists")
	ErrFacultyNotFound            = errors.New("faculty member not found")
	ErrFacultyEmailExists         = errors.New("faculty email already exists")
	ErrStudentNotFound            = errors.New("student not found")
	ErrStudentEmailExists         = errors.New("student email already exists")
	ErrOutstandingStudentNotFound = errors.New("outstanding student not found")
	ErrEventNotFound              = errors.New("event not found")
	ErrTestimonialNotFound        = errors.New("testimonial not found")
	ErrInquiryNotFound            = errors.New("inquiry not found")
)

// Sort direction and paging defaults shared by all repositories.
const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"

	defaultListLimit = 50
)

// normalizePage clamps limit and offset to safe values.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
