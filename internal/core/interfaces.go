package core

import (
	"context"
	"errors"

	"github.com/edunexa/academy-api/internal/domain/model"
)

// ErrUserNotFound is returned by UserRepository implementations when no
// account matches. It lives here rather than in the data package so services
// can match it against the interface alone.
var ErrUserNotFound = errors.New("user not found")

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// CreateUserParams groups parameters for UserRepository.Create. The password
// is hashed by the service layer before it reaches the repository.
type CreateUserParams struct {
	Req          model.CreateUserRequest
	PasswordHash string
}

// UpdateUserParams groups parameters for UserRepository.Update. PasswordHash
// is set only when the caller rotates the password.
type UpdateUserParams struct {
	Req          model.UpdateUserRequest
	PasswordHash *string
}

// UserRepository defines the interface for account data operations.
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
	Update(ctx context.Context, id string, params UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// BranchRepository defines the interface for branch data operations.
type BranchRepository interface {
	Create(ctx context.Context, req *model.CreateBranchRequest) (*model.Branch, error)
	GetByID(ctx context.Context, id string) (*model.Branch, error)
	List(ctx context.Context, opts model.BranchesListOptions) ([]*model.Branch, error)
	Update(ctx context.Context, id string, req model.UpdateBranchRequest) (*model.Branch, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CourseRepository defines the interface for course data operations.
type CourseRepository interface {
	Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context, opts model.CoursesListOptions) ([]*model.Course, error)
	Update(ctx context.Context, id string, req model.UpdateCourseRequest) (*model.Course, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// FacultyRepository defines the interface for faculty member data operations.
type FacultyRepository interface {
	Create(ctx context.Context, req *model.CreateFacultyRequest) (*model.FacultyMember, error)
	GetByID(ctx context.Context, id string) (*model.FacultyMember, error)
	List(ctx context.Context, opts model.FacultyListOptions) ([]*model.FacultyMember, error)
	Update(ctx context.Context, id string, req model.UpdateFacultyRequest) (*model.FacultyMember, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// StudentRepository defines the interface for student data operations.
type StudentRepository interface {
	Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context, opts model.StudentsListOptions) ([]*model.Student, error)
	Update(ctx context.Context, id string, req model.UpdateStudentRequest) (*model.Student, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// OutstandingStudentRepository defines the interface for outstanding student data operations.
type OutstandingStudentRepository interface {
	Create(ctx context.Context, req *model.CreateOutstandingStudentRequest) (*model.OutstandingStudent, error)
	GetByID(ctx context.Context, id string) (*model.OutstandingStudent, error)
	List(ctx context.Context, opts model.OutstandingStudentsListOptions) ([]*model.OutstandingStudent, error)
	Update(
		ctx context.Context,
		id string,
		req model.UpdateOutstandingStudentRequest,
	) (*model.OutstandingStudent, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// EventRepository defines the interface for academy event data operations.
type EventRepository interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error)
	Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TestimonialRepository defines the interface for testimonial data operations.
type TestimonialRepository interface {
	Create(ctx context.Context, req *model.CreateTestimonialRequest) (*model.Testimonial, error)
	GetByID(ctx context.Context, id string) (*model.Testimonial, error)
	List(ctx context.Context, opts model.TestimonialsListOptions) ([]*model.Testimonial, error)
	Update(ctx context.Context, id string, req model.UpdateTestimonialRequest) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// InquiryRepository defines the interface for contact inquiry data operations.
type InquiryRepository interface {
	Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.Inquiry, error)
	GetByID(ctx context.Context, id string) (*model.Inquiry, error)
	List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.Inquiry, error)
	Update(ctx context.Context, id string, req model.UpdateInquiryRequest) (*model.Inquiry, error)
	Delete(ctx context.Context, id string) (bool, error)
}
