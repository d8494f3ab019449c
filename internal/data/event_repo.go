// Package data provides database access layer and repository implementations for the academy system.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/edunexa/academy-api/internal/data/database"
	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/jackc/pgx/v5"
)

// EventRepo provides database operations for academy events.
type EventRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewEventRepo creates a new EventRepo with real time provider.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewEventRepoWithTimeProvider creates a new EventRepo with a custom time provider (useful for tests).
func NewEventRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *EventRepo {
	return &EventRepo{DB: db, timeProvider: tp}
}

const (
	eventColumnsSQL = `id, title, description, location, image, branch_id, starts_at, ends_at, published, created_at, updated_at`

	eventGetByIDQuery = `
		SELECT ` + eventColumnsSQL + `
		FROM events
		WHERE id = $1`
)

func eventColumns() []string {
	return []string{
		"id", "title", "description", "location", "image", "branch_id",
		"starts_at", "ends_at", "published", "created_at", "updated_at",
	}
}

// Create inserts a new event.
func (r *EventRepo) Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if req == nil {
		return nil, errors.New("create event request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	out, err := collectOne[model.Event](ctx, r.DB, `
		INSERT INTO events (
			title, description, location, image, branch_id, starts_at, ends_at, published, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING `+eventColumnsSQL,
		req.Title,
		req.Description,
		req.Location,
		req.Image,
		req.BranchID,
		req.StartsAt.UTC(),
		req.EndsAt,
		published,
		r.timeProvider.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves an event by ID.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	out, err := collectOne[model.Event](ctx, r.DB, eventGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event by ID: %w", err)
	}
	return out, nil
}

// List retrieves events with optional filters and sorting.
func (r *EventRepo) List(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error) {
	limit, offset := normalizePage(opts.Limit, opts.Offset)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(eventColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereAnyILike(q, "title", "location"),
		))
	}
	if opts.BranchID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("branch_id", database.Equal, *opts.BranchID),
		))
	}
	if opts.Published != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("published", database.Equal, *opts.Published),
		))
	}
	if opts.After != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("starts_at", database.GreaterThanOrEqual, opts.After.UTC()),
		))
	}
	sortCol, sortDir := validateSort(opts.Sort, opts.Dir, map[string]string{
		"title":      "title",
		"starts_at":  "starts_at",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("events", queryOpts...))
	out, err := collectMany[model.Event](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return out, nil
}

// Update updates fields of an event and bumps updated_at.
// The merged start/end ordering is enforced by a table CHECK constraint.
func (r *EventRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateEventRequest,
) (*model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var b updateClauseBuilder
	if req.Title != nil {
		b.set("title", *req.Title)
	}
	if req.Description != nil {
		b.set("description", *req.Description)
	}
	if req.Location != nil {
		b.set("location", *req.Location)
	}
	if req.Image != nil {
		b.set("image", *req.Image)
	}
	if req.BranchID != nil {
		b.setNullable("branch_id", *req.BranchID)
	}
	if req.StartsAt != nil {
		b.set("starts_at", req.StartsAt.UTC())
	}
	if req.EndsAt != nil {
		b.set("ends_at", req.EndsAt.UTC())
	}
	if req.Published != nil {
		b.set("published", *req.Published)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}
	b.set("updated_at", r.timeProvider.Now().UTC())

	query := "UPDATE events SET " + b.clause() +
		" WHERE id = " + b.nextPlaceholder(id) +
		" RETURNING " + eventColumnsSQL
	out, err := collectOne[model.Event](ctx, r.DB, query, b.args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return out, nil
}

// Delete deletes an event by ID.
func (r *EventRepo) Delete(ctx context.Context, id string) (bool, error) {
	rows, err := execRowsAffected(ctx, r.DB, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete event: %w", err)
	}
	return rows > 0, nil
}
