package service

import (
	"context"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
)

// OutstandingStudentServiceOptions groups dependencies for OutstandingStudentService.
type OutstandingStudentServiceOptions struct {
	Repo  core.OutstandingStudentRepository
	Cache *core.CatalogCache
}

// OutstandingStudentService orchestrates outstanding student CRUD with catalog cache invalidation.
type OutstandingStudentService struct {
	repo core.OutstandingStudentRepository
	inv  catalogInvalidator
}

// NewOutstandingStudentService constructs a new OutstandingStudentService.
func NewOutstandingStudentService(opts OutstandingStudentServiceOptions) *OutstandingStudentService {
	if opts.Repo == nil {
		panic("outstanding student service requires a repository")
	}
	return &OutstandingStudentService{
		repo: opts.Repo,
		inv:  catalogInvalidator{cache: opts.Cache, resource: CatalogOutstandingStudents},
	}
}

// Create creates a outstanding student and invalidates the outstanding student catalog.
func (s *OutstandingStudentService) Create(ctx context.Context, req *model.CreateOutstandingStudentRequest) (*model.OutstandingStudent, error) {
	out, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// GetByID retrieves a outstanding student by ID.
func (s *OutstandingStudentService) GetByID(ctx context.Context, id string) (*model.OutstandingStudent, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns outstanding students matching the options.
func (s *OutstandingStudentService) List(ctx context.Context, opts model.OutstandingStudentsListOptions) ([]*model.OutstandingStudent, error) {
	return s.repo.List(ctx, opts)
}

// Update updates a outstanding student and invalidates the outstanding student catalog.
func (s *OutstandingStudentService) Update(ctx context.Context, id string, req model.UpdateOutstandingStudentRequest) (*model.OutstandingStudent, error) {
	out, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// Delete deletes a outstanding student and invalidates the outstanding student catalog.
func (s *OutstandingStudentService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return ok, invErr
	}
	return ok, nil
}
