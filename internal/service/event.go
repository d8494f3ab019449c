package service

import (
	"context"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
)

// EventServiceOptions groups dependencies for EventService.
type EventServiceOptions struct {
	Repo  core.EventRepository
	Cache *core.CatalogCache
}

// EventService orchestrates event CRUD with catalog cache invalidation.
type EventService struct {
	repo core.EventRepository
	inv  catalogInvalidator
}

// NewEventService constructs a new EventService.
func NewEventService(opts EventServiceOptions) *EventService {
	if opts.Repo == nil {
		panic("event service requires a repository")
	}
	return &EventService{
		repo: opts.Repo,
		inv:  catalogInvalidator{cache: opts.Cache, resource: CatalogEvents},
	}
}

// Create creates an event and invalidates the event catalog.
func (s *EventService) Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	out, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// GetByID retrieves an event by ID.
func (s *EventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns events matching the options.
func (s *EventService) List(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error) {
	return s.repo.List(ctx, opts)
}

// Update updates an event and invalidates the event catalog.
func (s *EventService) Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	out, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return nil, invErr
	}
	return out, nil
}

// Delete deletes an event and invalidates the event catalog.
func (s *EventService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	if invErr := s.inv.invalidate(ctx); invErr != nil {
		return ok, invErr
	}
	return ok, nil
}
