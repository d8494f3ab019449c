// Package httpx provides HTTP handlers and middleware for the academy API.
package httpx

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/edunexa/academy-api/internal/data"
	domainauth "github.com/edunexa/academy-api/internal/domain/auth"
	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/service"
)

// Query parsing helpers shared by the per-resource list option parsers.

func optString(q url.Values, key string) *string {
	if v := q.Get(key); v != "" {
		return &v
	}
	return nil
}

func optBool(q url.Values, key string) (*bool, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.New(key + " must be true or false")
	}
	return &b, nil
}

func optInt(q url.Values, key string) (*int, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, errors.New(key + " must be an integer")
	}
	return &i, nil
}

func optTime(q url.Values, key string) (*time.Time, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, errors.New(key + " must be an RFC 3339 timestamp")
	}
	return &t, nil
}

// NewBranchHandlers wires BranchService into the standard CRUD handlers.
func NewBranchHandlers(svc *service.BranchService) *ResourceHandlers[
	model.Branch, model.CreateBranchRequest, model.UpdateBranchRequest, model.BranchesListOptions,
] {
	return &ResourceHandlers[
		model.Branch, model.CreateBranchRequest, model.UpdateBranchRequest, model.BranchesListOptions,
	]{
		Name:        "branch",
		ItemsKey:    "branches",
		CreateFn:    svc.Create,
		GetFn:       svc.GetByID,
		ListFn:      svc.List,
		UpdateFn:    svc.Update,
		DeleteFn:    svc.Delete,
		ErrNotFound: data.ErrBranchNotFound,
		ErrConflict: data.ErrBranchNameExists,
		ParseListOptions: func(q url.Values, limit, offset int) (model.BranchesListOptions, error) {
			active, err := optBool(q, "active")
			if err != nil {
				return model.BranchesListOptions{}, err
			}
			return model.BranchesListOptions{
				Limit:  limit,
				Offset: offset,
				Q:      optString(q, "q"),
				Active: active,
				Sort:   q.Get("sort"),
				Dir:    q.Get("dir"),
			}, nil
		},
	}
}

// NewCourseHandlers wires CourseService into the standard CRUD handlers.
func NewCourseHandlers(svc *service.CourseService) *ResourceHandlers[
	model.Course, model.CreateCourseRequest, model.UpdateCourseRequest, model.CoursesListOptions,
] {
	return &ResourceHandlers[
		model.Course, model.CreateCourseRequest, model.UpdateCourseRequest, model.CoursesListOptions,
	]{
		Name:        "course",
		ItemsKey:    "courses",
		CreateFn:    svc.Create,
		GetFn:       svc.GetByID,
		ListFn:      svc.List,
		UpdateFn:    svc.Update,
		DeleteFn:    svc.Delete,
		ErrNotFound: data.ErrCourseNotFound,
		ErrConflict: data.ErrCourseNameExists,
		ParseListOptions: func(q url.Values, limit, offset int) (model.CoursesListOptions, error) {
			active, err := optBool(q, "active")
			if err != nil {
				return model.CoursesListOptions{}, err
			}
			return model.CoursesListOptions{
				Limit:    limit,
				Offset:   offset,
				Q:        optString(q, "q"),
				BranchID: optString(q, "branch_id"),
				Active:   active,
				Sort:     q.Get("sort"),
				Dir:      q.Get("dir"),
			}, nil
		},
	}
}

// NewFacultyHandlers wires FacultyService into the standard CRUD handlers.
func NewFacultyHandlers(svc *service.FacultyService) *ResourceHandlers[
	model.FacultyMember, model.CreateFacultyRequest, model.UpdateFacultyRequest, model.FacultyListOptions,
] {
	return &ResourceHandlers[
		model.FacultyMember, model.CreateFacultyRequest, model.UpdateFacultyRequest, model.FacultyListOptions,
	]{
		Name:        "faculty",
		ItemsKey:    "faculty",
		CreateFn:    svc.Create,
		GetFn:       svc.GetByID,
		ListFn:      svc.List,
		UpdateFn:    svc.Update,
		DeleteFn:    svc.Delete,
		ErrNotFound: data.ErrFacultyNotFound,
		ErrConflict: data.ErrFacultyEmailExists,
		ParseListOptions: func(q url.Values, limit, offset int) (model.FacultyListOptions, error) {
			active, err := optBool(q, "active")
			if err != nil {
				return model.FacultyListOptions{}, err
			}
			return model.FacultyListOptions{
				Limit:    limit,
				Offset:   offset,
				Q:        optString(q, "q"),
				BranchID: optString(q, "branch_id"),
				Active:   active,
				Sort:     q.Get("sort"),
				Dir:      q.Get("dir"),
			}, nil
		},
	}
}

// NewStudentHandlers wires StudentService into the standard CRUD handlers.
func NewStudentHandlers(svc *service.StudentService) *ResourceHandlers[
	model.Student, model.CreateStudentRequest, model.UpdateStudentRequest, model.StudentsListOptions,
] {
	return &ResourceHandlers[
		model.Student, model.CreateStudentRequest, model.UpdateStudentRequest, model.StudentsListOptions,
	]{
		Name:        "student",
		ItemsKey:    "students",
		CreateFn:    svc.Create,
		GetFn:       svc.GetByID,
		ListFn:      svc.List,
		UpdateFn:    svc.Update,
		DeleteFn:    svc.Delete,
		ErrNotFound: data.ErrStudentNotFound,
		ErrConflict: data.ErrStudentEmailExists,
		ParseListOptions: func(q url.Values, limit, offset int) (model.StudentsListOptions, error) {
			active, err := optBool(q, "active")
			if err != nil {
				return model.StudentsListOptions{}, err
			}
			return model.StudentsListOptions{
				Limit:    limit,
				Offset:   offset,
				Q:        optString(q, "q"),
				BranchID: optString(q, "branch_id"),
				CourseID: optString(q, "course_id"),
				Active:   active,
				Sort:     q.Get("sort"),
				Dir:      q.Get("dir"),
			}, nil
		},
	}
}

// NewOutstandingStudentHandlers wires OutstandingStudentService into the standard CRUD handlers.
func NewOutstandingStudentHandlers(svc *service.OutstandingStudentService) *ResourceHandlers[
	model.OutstandingStudent,
	model.CreateOutstandingStudentRequest,
	model.UpdateOutstandingStudentRequest,
	model.OutstandingStudentsListOptions,
] {
	return &ResourceHandlers[
		model.OutstandingStudent,
		model.CreateOutstandingStudentRequest,
		model.UpdateOutstandingStudentRequest,
		model.OutstandingStudentsListOptions,
	]{
		Name:        "outstanding_student",
		ItemsKey:    "outstanding_students",
		CreateFn:    svc.Create,
		GetFn:       svc.GetByID,
		ListFn:      svc.List,
		UpdateFn:    svc.Update,
		DeleteFn:    svc.Delete,
		ErrNotFound: data.ErrOutstandingStudentNotFound,
		ParseListOptions: func(
			q url.Values,
			limit, offset int,
		) (model.OutstandingStudentsListOptions, error) {
			published, err := optBool(q, "published")
			if err != nil {
				return model.OutstandingStudentsListOptions{}, err
			}
			year, err := optInt(q, "year")
			if err != nil {
				return model.OutstandingStudentsListOptions{}, err
			}
			return model.OutstandingStudentsListOptions{
				Limit:     limit,
				Offset:    offset,
				Q:         optString(q, "q"),
				Year:      year,
				Published: published,
				Sort:      q.Get("sort"),
				Dir:       q.Get("dir"),
			}, nil
		},
	}
}

// NewEventHandlers wires EventService into the standard CRUD handlers.
func NewEventHandlers(svc *service.EventService) *ResourceHandlers[
	model.Event, model.CreateEventRequest, model.UpdateEventRequest, model.EventsListOptions,
] {
	return &ResourceHandlers[
		model.Event, model.CreateEventRequest, model.UpdateEventRequest, model.EventsListOptions,
	]{
		Name:        "event",
		ItemsKey:    "events",
		CreateFn:    svc.Create,
		GetFn:       svc.GetByID,
		ListFn:      svc.List,
		UpdateFn:    svc.Update,
		DeleteFn:    svc.Delete,
		ErrNotFound: data.ErrEventNotFound,
		ParseListOptions: func(q url.Values, limit, offset int) (model.EventsListOptions, error) {
			published, err := optBool(q, "published")
			if err != nil {
				return model.EventsListOptions{}, err
			}
			after, err := optTime(q, "after")
			if err != nil {
				return model.EventsListOptions{}, err
			}
			return model.EventsListOptions{
				Limit:     limit,
				Offset:    offset,
				Q:         optString(q, "q"),
				BranchID:  optString(q, "branch_id"),
				Published: published,
				After:     after,
				Sort:      q.Get("sort"),
				Dir:       q.Get("dir"),
			}, nil
		},
	}
}

// NewTestimonialHandlers wires TestimonialService into the standard CRUD handlers.
func NewTestimonialHandlers(svc *service.TestimonialService) *ResourceHandlers[
	model.Testimonial, model.CreateTestimonialRequest, model.UpdateTestimonialRequest, model.TestimonialsListOptions,
] {
	return &ResourceHandlers[
		model.Testimonial, model.CreateTestimonialRequest, model.UpdateTestimonialRequest, model.TestimonialsListOptions,
	]{
		Name:        "testimonial",
		ItemsKey:    "testimonials",
		CreateFn:    svc.Create,
		GetFn:       svc.GetByID,
		ListFn:      svc.List,
		UpdateFn:    svc.Update,
		DeleteFn:    svc.Delete,
		ErrNotFound: data.ErrTestimonialNotFound,
		ParseListOptions: func(q url.Values, limit, offset int) (model.TestimonialsListOptions, error) {
			published, err := optBool(q, "published")
			if err != nil {
				return model.TestimonialsListOptions{}, err
			}
			return model.TestimonialsListOptions{
				Limit:     limit,
				Offset:    offset,
				Q:         optString(q, "q"),
				Published: published,
				Sort:      q.Get("sort"),
				Dir:       q.Get("dir"),
			}, nil
		},
	}
}

// NewInquiryHandlers wires InquiryService into the standard CRUD handlers.
func NewInquiryHandlers(svc *service.InquiryService) *ResourceHandlers[
	model.Inquiry, model.CreateInquiryRequest, model.UpdateInquiryRequest, model.InquiriesListOptions,
] {
	return &ResourceHandlers[
		model.Inquiry, model.CreateInquiryRequest, model.UpdateInquiryRequest, model.InquiriesListOptions,
	]{
		Name:        "inquiry",
		ItemsKey:    "inquiries",
		CreateFn:    svc.Create,
		GetFn:       svc.GetByID,
		ListFn:      svc.List,
		UpdateFn:    svc.Update,
		DeleteFn:    svc.Delete,
		ErrNotFound: data.ErrInquiryNotFound,
		ParseListOptions: func(q url.Values, limit, offset int) (model.InquiriesListOptions, error) {
			var status *model.InquiryStatus
			if v := q.Get("status"); v != "" {
				s := model.InquiryStatus(v)
				if !s.Valid() {
					return model.InquiriesListOptions{}, errors.New("status must be one of: new, contacted, resolved")
				}
				status = &s
			}
			return model.InquiriesListOptions{
				Limit:    limit,
				Offset:   offset,
				Q:        optString(q, "q"),
				Status:   status,
				CourseID: optString(q, "course_id"),
				Sort:     q.Get("sort"),
				Dir:      q.Get("dir"),
			}, nil
		},
	}
}

// NewUserHandlers wires UserService into the standard CRUD handlers. Create
// takes the request by value at the service layer, so the wrapper dereferences.
func NewUserHandlers(svc *service.UserService) *ResourceHandlers[
	model.User, model.CreateUserRequest, model.UpdateUserRequest, model.UsersListOptions,
] {
	h := &ResourceHandlers[
		model.User, model.CreateUserRequest, model.UpdateUserRequest, model.UsersListOptions,
	]{
		Name:        "user",
		ItemsKey:    "users",
		GetFn:       svc.GetByID,
		ListFn:      svc.List,
		UpdateFn:    svc.Update,
		DeleteFn:    svc.Delete,
		ErrNotFound: data.ErrUserNotFound,
		ErrConflict: data.ErrUserEmailExists,
		ParseListOptions: func(q url.Values, limit, offset int) (model.UsersListOptions, error) {
			active, err := optBool(q, "active")
			if err != nil {
				return model.UsersListOptions{}, err
			}
			var role *domainauth.Role
			if v := q.Get("role"); v != "" {
				r := domainauth.Role(v)
				role = &r
			}
			return model.UsersListOptions{
				Limit:  limit,
				Offset: offset,
				Q:      optString(q, "q"),
				Role:   role,
				Active: active,
				Sort:   q.Get("sort"),
				Dir:    q.Get("dir"),
			}, nil
		},
	}
	h.CreateFn = func(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
		return svc.Create(ctx, *req)
	}
	return h
}
