package service

import (
	"context"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
)

// CourseServiceOptions groups dependencies for CourseService.
type CourseServiceOptions struct {
	Repo  core.CourseRepository
	Cache *core.CatalogCache
}

// CourseService orchestrates course CRUD with catalog cache invalidation.
type CourseService struct {
	repo core.CourseRepository
	inv  catalogInvalidator
}

// NewCourseService constructs a new CourseService.
func NewCourseService(opts CourseServiceOptions) *CourseService {
	if opts.Repo == nil {
		panic("course service requires a repository")
	}
	return &CourseService{
		repo: opts.Repo,
		inv:  catalogInvalidator{cache: opts.Cache, resource: CatalogCourses},
	}
}

// Create creates a course and invalidates the course catalog.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	out, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// GetByID retrieves a course by ID.
func (s *CourseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns courses matching the options.
func (s *CourseService) List(ctx context.Context, opts model.CoursesListOptions) ([]*model.Course, error) {
	return s.repo.List(ctx, opts)
}

// Update updates a course and invalidates the course catalog.
func (s *CourseService) Update(ctx context.Context, id string, req model.UpdateCourseRequest) (*model.Course, error) {
	out, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// Delete deletes a course and invalidates the course catalog.
func (s *CourseService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return ok, invErr
	}
	return ok, nil
}
