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
	"github.com/jackc/pgx/v5"
)

// OutstandingStudentRepo provides database operations for outstanding-student highlights.
type OutstandingStudentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewOutstandingStudentRepo creates a new OutstandingStudentRepo with real time provider.
func NewOutstandingStudentRepo(db *sql.DB) *OutstandingStudentRepo {
	return &OutstandingStudentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewOutstandingStudentRepoWithTimeProvider creates one with a custom time provider (useful for tests).
func NewOutstandingStudentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *OutstandingStudentRepo {
	return &OutstandingStudentRepo{DB: db, timeProvider: tp}
}

const (
	outstandingColumnsSQL = `id, name, achievement, year, image, student_id, course_id, published, created_at, updated_at`

	outstandingGetByIDQuery = `
		SELECT ` + outstandingColumnsSQL + `
		FROM outstanding_students
		WHERE id = $1`
)

func outstandingColumns() []string {
	return []string{
		"id", "name", "achievement", "year", "image", "student_id", "course_id",
		"published", "created_at", "updated_at",
	}
}

// Create inserts a new outstanding-student highlight.
func (r *OutstandingStudentRepo) Create(
	ctx context.Context,
	req *model.CreateOutstandingStudentRequest,
) (*model.OutstandingStudent, error) {
	if req == nil {
		return nil, errors.New("create outstanding student request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	out, err := collectOne[model.OutstandingStudent](ctx, r.DB, `
		INSERT INTO outstanding_students (
			name, achievement, year, image, student_id, course_id, published, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING `+outstandingColumnsSQL,
		req.Name,
		strings.TrimSpace(req.Achievement),
		req.Year,
		req.Image,
		req.StudentID,
		req.CourseID,
		published,
		r.timeProvider.Now().UTC(),
	)
	if err != nil {
		// student_id and course_id are foreign keys; map violations to typed
		// errors so the API can answer with something better than a 500.
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// GetByID retrieves an outstanding-student highlight by ID.
func (r *OutstandingStudentRepo) GetByID(ctx context.Context, id string) (*model.OutstandingStudent, error) {
	out, err := collectOne[model.OutstandingStudent](ctx, r.DB, outstandingGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOutstandingStudentNotFound
		}
		return nil, fmt.Errorf("failed to get outstanding student by ID: %w", err)
	}
	return out, nil
}

// List retrieves highlights with optional filters and sorting.
func (r *OutstandingStudentRepo) List(
	ctx context.Context,
	opts model.OutstandingStudentsListOptions,
) ([]*model.OutstandingStudent, error) {
	limit, offset := normalizePage(opts.Limit, opts.Offset)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(outstandingColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereAnyILike(q, "name", "achievement"),
		))
	}
	if opts.Year != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("year", database.Equal, *opts.Year),
		))
	}
	if opts.Published != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("published", database.Equal, *opts.Published),
		))
	}
	sortCol, sortDir := validateSort(opts.Sort, opts.Dir, map[string]string{
		"name":       "name",
		"year":       "year",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(
		database.NewListQueryOptions("outstanding_students", queryOpts...),
	)
	out, err := collectMany[model.OutstandingStudent](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding students: %w", err)
	}
	return out, nil
}

// Update updates fields of a highlight and bumps updated_at.
func (r *OutstandingStudentRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateOutstandingStudentRequest,
) (*model.OutstandingStudent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var b updateClauseBuilder
	if req.Name != nil {
		b.set("name", *req.Name)
	}
	if req.Achievement != nil {
		b.set("achievement", strings.TrimSpace(*req.Achievement))
	}
	if req.Year != nil {
		b.set("year", *req.Year)
	}
	if req.Image != nil {
		b.set("image", *req.Image)
	}
	if req.StudentID != nil {
		b.setNullable("student_id", *req.StudentID)
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

	query := "UPDATE outstanding_students SET " + b.clause() +
		" WHERE id = " + b.nextPlaceholder(id) +
		" RETURNING " + outstandingColumnsSQL
	out, err := collectOne[model.OutstandingStudent](ctx, r.DB, query, b.args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOutstandingStudentNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// Delete deletes a highlight by ID.
func (r *OutstandingStudentRepo) Delete(ctx context.Context, id string) (bool, error) {
	rows, err := execRowsAffected(ctx, r.DB, `DELETE FROM outstanding_students WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete outstanding student: %w", err)
	}
	return rows > 0, nil
}
