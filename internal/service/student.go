package service

import (
	"context"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
)

// StudentServiceOptions groups dependencies for StudentService.
type StudentServiceOptions struct {
	Repo  core.StudentRepository
	Cache *core.CatalogCache
}

// StudentService orchestrates student CRUD with catalog cache invalidation.
type StudentService struct {
	repo core.StudentRepository
	inv  catalogInvalidator
}

// NewStudentService constructs a new StudentService.
func NewStudentService(opts StudentServiceOptions) *StudentService {
	if opts.Repo == nil {
		panic("student service requires a repository")
	}
	return &StudentService{
		repo: opts.Repo,
		inv:  catalogInvalidator{cache: opts.Cache, resource: CatalogStudents},
	}
}

// Create creates a student and invalidates the student catalog.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	out, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id string) (*model.Student, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns students matching the options.
func (s *StudentService) List(ctx context.Context, opts model.StudentsListOptions) ([]*model.Student, error) {
	return s.repo.List(ctx, opts)
}

// Update updates a student and invalidates the student catalog.
func (s *StudentService) Update(ctx context.Context, id string, req model.UpdateStudentRequest) (*model.Student, error) {
	out, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// Delete deletes a student and invalidates the student catalog.
func (s *StudentService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return ok, invErr
	}
	return ok, nil
}
