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

// TestimonialRepo provides database operations for testimonials.
type TestimonialRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTestimonialRepo creates a new TestimonialRepo with real time provider.
func NewTestimonialRepo(db *sql.DB) *TestimonialRepo {
	return &TestimonialRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTestimonialRepoWithTimeProvider creates a new TestimonialRepo with a custom time provider (useful for tests).
func NewTestimonialRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TestimonialRepo {
	return &TestimonialRepo{DB: db, timeProvider: tp}
}

const (
	testimonialColumnsSQL = `id, author, relation, quote, rating, image, course_id, published, created_at, updated_at`

	testimonialGetByIDQuery = `
		SELECT ` + testimonialColumnsSQL + `
		FROM testimonials
		WHERE id = $1`
)

func testimonialColumns() []string {
	return []string{
		"id", "author", "relation", "quote", "rating", "image", "course_id",
		"published", "created_at", "updated_at",
	}
}

// Create inserts a new testimonial.
func (r *TestimonialRepo) Create(
	ctx context.Context,
	req *model.CreateTestimonialRequest,
) (*model.Testimonial, error) {
	if req == nil {
		return nil, errors.New("create testimonial request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	out, err := collectOne[model.Testimonial](ctx, r.DB, `
		INSERT INTO testimonials (
			author, relation, quote, rating, image, course_id, published, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING `+testimonialColumnsSQL,
		req.Author,
		req.Relation,
		req.Quote,
		req.Rating,
		req.Image,
		req.CourseID,
		published,
		r.timeProvider.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a testimonial by ID.
func (r *TestimonialRepo) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	out, err := collectOne[model.Testimonial](ctx, r.DB, testimonialGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("failed to get testimonial by ID: %w", err)
	}
	return out, nil
}

// List retrieves testimonials with optional filters and sorting.
func (r *TestimonialRepo) List(
	ctx context.Context,
	opts model.TestimonialsListOptions,
) ([]*model.Testimonial, error) {
	limit, offset := normalizePage(opts.Limit, opts.Offset)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(testimonialColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereAnyILike(q, "author", "quote"),
		))
	}
	if opts.Published != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("published", database.Equal, *opts.Published),
		))
	}
	sortCol, sortDir := validateSort(opts.Sort, opts.Dir, map[string]string{
		"author":     "author",
		"rating":     "rating",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("testimonials", queryOpts...))
	out, err := collectMany[model.Testimonial](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return out, nil
}

// Update updates fields of a testimonial and bumps updated_at.
func (r *TestimonialRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateTestimonialRequest,
) (*model.Testimonial, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var b updateClauseBuilder
	if req.Author != nil {
		b.set("author", *req.Author)
	}
	if req.Relation != nil {
		b.set("relation", *req.Relation)
	}
	if req.Quote != nil {
		b.set("quote", *req.Quote)
	}
	if req.Rating != nil {
		b.set("rating", *req.Rating)
	}
	if req.Image != nil {
		b.set("image", *req.Image)
	}
	if req.CourseID != nil {
		b.setNullable("course_id", *req.CourseID)
	}
	if req.Published != nil {
		b.set("published", *req.Published)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}
	b.set("updated_at", r.timeProvider.Now().UTC())

	query := "UPDATE testimonials SET " + b.clause() +
		" WHERE id = " + b.nextPlaceholder(id) +
		" RETURNING " + testimonialColumnsSQL
	out, err := collectOne[model.Testimonial](ctx, r.DB, query, b.args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestimonialNotFound
		}
		return nil, err
	}
	return out, nil
}

// Delete deletes a testimonial by ID.
func (r *TestimonialRepo) Delete(ctx context.Context, id string) (bool, error) {
	rows, err := execRowsAffected(ctx, r.DB, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return rows > 0, nil
}
