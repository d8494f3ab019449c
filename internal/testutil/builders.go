package testutil

import (
	"fmt"
	"time"

	"github.com/edunexa/academy-api/internal/domain/auth"
	"github.com/edunexa/academy-api/internal/domain/model"
)

// uniqueSuffix returns a suffix safe for unique columns across parallel tests.
func uniqueSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// BranchRequestBuilder provides a fluent interface for building CreateBranchRequest objects for testing.
type BranchRequestBuilder struct {
	req *model.CreateBranchRequest
}

// NewBranchRequest creates a new BranchRequestBuilder with sensible defaults.
func NewBranchRequest() *BranchRequestBuilder {
	suffix := uniqueSuffix()
	return &BranchRequestBuilder{
		req: &model.CreateBranchRequest{
			Name:    "branch-" + suffix,
			Address: "12 Test Street",
			City:    "Testville",
			Email:   "branch-" + suffix + "@example.com",
		},
	}
}

// WithName sets the branch name.
func (b *BranchRequestBuilder) WithName(name string) *BranchRequestBuilder {
	b.req.Name = name
	return b
}

// WithCity sets the branch city.
func (b *BranchRequestBuilder) WithCity(city string) *BranchRequestBuilder {
	b.req.City = city
	return b
}

// WithActive sets the branch active flag.
func (b *BranchRequestBuilder) WithActive(active bool) *BranchRequestBuilder {
	b.req.Active = &active
	return b
}

// Build returns the constructed CreateBranchRequest.
func (b *BranchRequestBuilder) Build() *model.CreateBranchRequest {
	return b.req
}

// CourseRequestBuilder provides a fluent interface for building CreateCourseRequest objects for testing.
type CourseRequestBuilder struct {
	req *model.CreateCourseRequest
}

// NewCourseRequest creates a new CourseRequestBuilder with sensible defaults.
func NewCourseRequest() *CourseRequestBuilder {
	return &CourseRequestBuilder{
		req: &model.CreateCourseRequest{
			Name:           "course-" + uniqueSuffix(),
			Description:    "A test course",
			DurationMonths: 6,
			FeeCents:       150000,
		},
	}
}

// WithName sets the course name.
func (b *CourseRequestBuilder) WithName(name string) *CourseRequestBuilder {
	b.req.Name = name
	return b
}

// WithBranchID sets the owning branch.
func (b *CourseRequestBuilder) WithBranchID(id string) *CourseRequestBuilder {
	b.req.BranchID = &id
	return b
}

// WithDuration sets the course duration in months.
func (b *CourseRequestBuilder) WithDuration(months int) *CourseRequestBuilder {
	b.req.DurationMonths = months
	return b
}

// WithFeeCents sets the course fee in cents.
func (b *CourseRequestBuilder) WithFeeCents(fee int64) *CourseRequestBuilder {
	b.req.FeeCents = fee
	return b
}

// Build returns the constructed CreateCourseRequest.
func (b *CourseRequestBuilder) Build() *model.CreateCourseRequest {
	return b.req
}

// StudentRequestBuilder provides a fluent interface for building CreateStudentRequest objects for testing.
type StudentRequestBuilder struct {
	req *model.CreateStudentRequest
}

// NewStudentRequest creates a new StudentRequestBuilder with sensible defaults.
func NewStudentRequest() *StudentRequestBuilder {
	suffix := uniqueSuffix()
	return &StudentRequestBuilder{
		req: &model.CreateStudentRequest{
			Name:  "Student " + suffix,
			Email: "student-" + suffix + "@example.com",
		},
	}
}

// WithEmail sets the student email.
func (b *StudentRequestBuilder) WithEmail(email string) *StudentRequestBuilder {
	b.req.Email = email
	return b
}

// WithBranchID sets the student branch.
func (b *StudentRequestBuilder) WithBranchID(id string) *StudentRequestBuilder {
	b.req.BranchID = &id
	return b
}

// WithCourseID sets the student course.
func (b *StudentRequestBuilder) WithCourseID(id string) *StudentRequestBuilder {
	b.req.CourseID = &id
	return b
}

// WithEnrolledAt sets the enrollment timestamp.
func (b *StudentRequestBuilder) WithEnrolledAt(t time.Time) *StudentRequestBuilder {
	b.req.EnrolledAt = &t
	return b
}

// Build returns the constructed CreateStudentRequest.
func (b *StudentRequestBuilder) Build() *model.CreateStudentRequest {
	return b.req
}

// UserRequestBuilder provides a fluent interface for building CreateUserRequest objects for testing.
type UserRequestBuilder struct {
	req *model.CreateUserRequest
}

// NewUserRequest creates a new UserRequestBuilder with sensible defaults.
func NewUserRequest() *UserRequestBuilder {
	suffix := uniqueSuffix()
	return &UserRequestBuilder{
		req: &model.CreateUserRequest{
			Name:     "User " + suffix,
			Email:    "user-" + suffix + "@example.com",
			Password: "test-password-123",
			Role:     auth.RoleAdmin,
		},
	}
}

// WithEmail sets the account email.
func (b *UserRequestBuilder) WithEmail(email string) *UserRequestBuilder {
	b.req.Email = email
	return b
}

// WithRole sets the account role.
func (b *UserRequestBuilder) WithRole(role auth.Role) *UserRequestBuilder {
	b.req.Role = role
	return b
}

// WithPassword sets the account password.
func (b *UserRequestBuilder) WithPassword(password string) *UserRequestBuilder {
	b.req.Password = password
	return b
}

// WithActive sets the account active flag.
func (b *UserRequestBuilder) WithActive(active bool) *UserRequestBuilder {
	b.req.Active = &active
	return b
}

// Build returns the constructed CreateUserRequest.
func (b *UserRequestBuilder) Build() *model.CreateUserRequest {
	return b.req
}
