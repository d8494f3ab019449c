package service

import (
	"context"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
)

// TestimonialServiceOptions groups dependencies for TestimonialService.
type TestimonialServiceOptions struct {
	Repo  core.TestimonialRepository
	Cache *core.CatalogCache
}

// TestimonialService orchestrates testimonial CRUD with catalog cache invalidation.
type TestimonialService struct {
	repo core.TestimonialRepository
	inv  catalogInvalidator
}

// NewTestimonialService constructs a new TestimonialService.
func NewTestimonialService(opts TestimonialServiceOptions) *TestimonialService {
	if opts.Repo == nil {
		panic("testimonial service requires a repository")
	}
	return &TestimonialService{
		repo: opts.Repo,
		inv:  catalogInvalidator{cache: opts.Cache, resource: CatalogTestimonials},
	}
}

// Create creates a testimonial and invalidates the testimonial catalog.
func (s *TestimonialService) Create(ctx context.Context, req *model.CreateTestimonialRequest) (*model.Testimonial, error) {
	out, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// GetByID retrieves a testimonial by ID.
func (s *TestimonialService) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns testimonials matching the options.
func (s *TestimonialService) List(ctx context.Context, opts model.TestimonialsListOptions) ([]*model.Testimonial, error) {
	return s.repo.List(ctx, opts)
}

// Update updates a testimonial and invalidates the testimonial catalog.
func (s *TestimonialService) Update(ctx context.Context, id string, req model.UpdateTestimonialRequest) (*model.Testimonial, error) {
	out, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// Delete deletes a testimonial and invalidates the testimonial catalog.
func (s *TestimonialService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return ok, invErr
	}
	return ok, nil
}
