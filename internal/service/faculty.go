package service

import (
	"context"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
)

// FacultyServiceOptions groups dependencies for FacultyService.
type FacultyServiceOptions struct {
	Repo  core.FacultyRepository
	Cache *core.CatalogCache
}

// FacultyService orchestrates faculty member CRUD with catalog cache invalidation.
type FacultyService struct {
	repo core.FacultyRepository
	inv  catalogInvalidator
}

// NewFacultyService constructs a new FacultyService.
func NewFacultyService(opts FacultyServiceOptions) *FacultyService {
	if opts.Repo == nil {
		panic("faculty member service requires a repository")
	}
	return &FacultyService{
		repo: opts.Repo,
		inv:  catalogInvalidator{cache: opts.Cache, resource: CatalogFaculty},
	}
}

// Create creates a faculty member and invalidates the faculty catalog.
func (s *FacultyService) Create(ctx context.Context, req *model.CreateFacultyRequest) (*model.FacultyMember, error) {
	out, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// GetByID retrieves a faculty member by ID.
func (s *FacultyService) GetByID(ctx context.Context, id string) (*model.FacultyMember, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns faculty members matching the options.
func (s *FacultyService) List(ctx context.Context, opts model.FacultyListOptions) ([]*model.FacultyMember, error) {
	return s.repo.List(ctx, opts)
}

// Update updates a faculty member and invalidates the faculty catalog.
func (s *FacultyService) Update(ctx context.Context, id string, req model.UpdateFacultyRequest) (*model.FacultyMember, error) {
	out, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// Delete deletes a faculty member and invalidates the faculty catalog.
func (s *FacultyService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return ok, invErr
	}
	return ok, nil
}
