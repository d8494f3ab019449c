package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/edunexa/academy-api/internal/data/database"
	"github.com/edunexa/academy-api/internal/domain/model"
	apperrors "github.com/edunexa/academy-api/internal/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CourseRepo provides database operations for courses.
type CourseRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCourseRepo creates a new CourseRepo with real time provider.
func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewCourseRepoWithTimeProvider creates a new CourseRepo with a custom time provider (useful for tests).
func NewCourseRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *CourseRepo {
	return &CourseRepo{DB: db, timeProvider: tp}
}

const (
	courseColumnsSQL = `id, name, description, duration_months, fee_cents, image, branch_id, active, created_at, updated_at`

	courseGetByIDQuery = `
		SELECT ` + courseColumnsSQL + `
		FROM courses
		WHERE id = $1`
)

func courseColumns() []string {
	return []string{
		"id", "name", "description", "duration_months", "fee_cents", "image",
		"branch_id", "active", "created_at", "updated_at",
	}
}

// Create inserts a new course.
func (r *CourseRepo) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	if req == nil {
		return nil, errors.New("create course request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	out, err := collectOne[model.Course](ctx, r.DB, `
		INSERT INTO courses (
			name, description, duration_months, fee_cents, image, branch_id, active, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING `+courseColumnsSQL,
		req.Name,
		req.Description,
		req.DurationMonths,
		req.FeeCents,
		req.Image,
		req.BranchID,
		active,
		r.timeProvider.Now().UTC(),
	)
	if err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return out, nil
}

// GetByID retrieves a course by ID.
func (r *CourseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	out, err := collectOne[model.Course](ctx, r.DB, courseGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course by ID: %w", err)
	}
	return out, nil
}

// List retrieves courses with optional filters and sorting.
func (r *CourseRepo) List(ctx context.Context, opts model.CoursesListOptions) ([]*model.Course, error) {
	limit, offset := normalizePage(opts.Limit, opts.Offset)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(courseColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.BranchID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("branch_id", database.Equal, *opts.BranchID),
		))
	}
	if opts.Active != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("active", database.Equal, *opts.Active),
		))
	}
	sortCol, sortDir := validateSort(opts.Sort, opts.Dir, map[string]string{
		"name":       "name",
		"fee_cents":  "fee_cents",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("courses", queryOpts...))
	out, err := collectMany[model.Course](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return out, nil
}

// Update updates fields of a course and bumps updated_at.
func (r *CourseRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateCourseRequest,
) (*model.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var b updateClauseBuilder
	if req.Name != nil {
		b.set("name", *req.Name)
	}
	if req.Description != nil {
		b.set("description", *req.Description)
	}
	if req.DurationMonths != nil {
		b.set("duration_months", *req.DurationMonths)
	}
	if req.FeeCents != nil {
		b.set("fee_cents", *req.FeeCents)
	}
	if req.Image != nil {
		b.set("image", *req.Image)
	}
	if req.BranchID != nil {
		b.setNullable("branch_id", *req.BranchID)
	}
	if req.Active != nil {
		b.set("active", *req.Active)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}
	b.set("updated_at", r.timeProvider.Now().UTC())

	query := "UPDATE courses SET " + b.clause() +
		" WHERE id = " + b.nextPlaceholder(id) +
		" RETURNING " + courseColumnsSQL
	out, err := collectOne[model.Course](ctx, r.DB, query, b.args...)
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return out, nil
}

// Delete deletes a course by ID.
func (r *CourseRepo) Delete(ctx context.Context, id string) (bool, error) {
	rows, err := execRowsAffected(ctx, r.DB, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		// Courses are referenced by students and highlights; surface restrict
		// violations as typed errors.
		return false, fmt.Errorf("failed to delete course: %w", apperrors.MapDBError(err))
	}
	return rows > 0, nil
}

func (r *CourseRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrCourseNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrCourseNameExists
	}
	return apperrors.MapDBError(err)
}
