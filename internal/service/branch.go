package service

import (
	"context"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
)

// BranchServiceOptions groups dependencies for BranchService.
type BranchServiceOptions struct {
	Repo  core.BranchRepository
	Cache *core.CatalogCache
}

// BranchService orchestrates branch CRUD with catalog cache invalidation.
type BranchService struct {
	repo core.BranchRepository
	inv  catalogInvalidator
}

// NewBranchService constructs a new BranchService.
func NewBranchService(opts BranchServiceOptions) *BranchService {
	if opts.Repo == nil {
		panic("branch service requires a repository")
	}
	return &BranchService{
		repo: opts.Repo,
		inv:  catalogInvalidator{cache: opts.Cache, resource: CatalogBranches},
	}
}

// Create creates a branch and invalidates the branch catalog.
func (s *BranchService) Create(ctx context.Context, req *model.CreateBranchRequest) (*model.Branch, error) {
	branch, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return branch, nil
}

// GetByID retrieves a branch by ID.
func (s *BranchService) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns branches matching the options.
func (s *BranchService) List(ctx context.Context, opts model.BranchesListOptions) ([]*model.Branch, error) {
	return s.repo.List(ctx, opts)
}

// Update updates a branch and invalidates the branch catalog.
func (s *BranchService) Update(ctx context.Context, id string, req model.UpdateBranchRequest) (*model.Branch, error) {
	branch, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return branch, nil
}

// Delete deletes a branch and invalidates the branch catalog.
func (s *BranchService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return ok, invErr
	}
	return ok, nil
}
