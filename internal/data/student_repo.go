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

// StudentRepo provides database operations for student records.
type StudentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewStudentRepo creates a new StudentRepo with real time provider.
func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewStudentRepoWithTimeProvider creates a new StudentRepo with a custom time provider (useful for tests).
func NewStudentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *StudentRepo {
	return &StudentRepo{DB: db, timeProvider: tp}
}

const (
	studentColumnsSQL = `id, name, email, phone, guardian, address, image, branch_id, course_id, enrolled_at, active, created_at, updated_at`

	studentGetByIDQuery = `
		SELECT ` + studentColumnsSQL + `
		FROM students
		WHERE id = $1`
)

func studentColumns() []string {
	return []string{
		"id", "name", "email", "phone", "guardian", "address", "image",
		"branch_id", "course_id", "enrolled_at", "active", "created_at", "updated_at",
	}
}

// Create inserts a new student.
func (r *StudentRepo) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	if req == nil {
		return nil, errors.New("create student request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	out, err := collectOne[model.Student](ctx, r.DB, `
		INSERT INTO students (
			name, email, phone, guardian, address, image, branch_id, course_id, enrolled_at, active, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING `+studentColumnsSQL,
		req.Name,
		req.Email,
		strings.TrimSpace(req.Phone),
		req.Guardian,
		req.Address,
		req.Image,
		req.BranchID,
		req.CourseID,
		req.EnrolledAt,
		active,
		r.timeProvider.Now().UTC(),
	)
	if err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return out, nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	out, err := collectOne[model.Student](ctx, r.DB, studentGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student by ID: %w", err)
	}
	return out, nil
}

// List retrieves students with optional filters and sorting.
func (r *StudentRepo) List(ctx context.Context, opts model.StudentsListOptions) ([]*model.Student, error) {
	limit, offset := normalizePage(opts.Limit, opts.Offset)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(studentColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereAnyILike(q, "name", "email"),
		))
	}
	if opts.BranchID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("branch_id", database.Equal, *opts.BranchID),
		))
	}
	if opts.CourseID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("course_id", database.Equal, *opts.CourseID),
		))
	}
	if opts.Active != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("active", database.Equal, *opts.Active),
		))
	}
	sortCol, sortDir := validateSort(opts.Sort, opts.Dir, map[string]string{
		"name":        "name",
		"enrolled_at": "enrolled_at",
		"created_at":  "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("students", queryOpts...))
	out, err := collectMany[model.Student](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return out, nil
}

// Update updates fields of a student and bumps updated_at.
func (r *StudentRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateStudentRequest,
) (*model.Student, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var b updateClauseBuilder
	if req.Name != nil {
		b.set("name", *req.Name)
	}
	if req.Email != nil {
		b.set("email", *req.Email)
	}
	if req.Phone != nil {
		b.set("phone", strings.TrimSpace(*req.Phone))
	}
	if req.Guardian != nil {
		b.set("guardian", *req.Guardian)
	}
	if req.Address != nil {
		b.set("address", *req.Address)
	}
	if req.Image != nil {
		b.set("image", *req.Image)
	}
	if req.BranchID != nil {
		b.setNullable("branch_id", *req.BranchID)
	}
	if req.CourseID != nil {
		b.setNullable("course_id", *req.CourseID)
	}
	if req.EnrolledAt != nil {
		b.set("enrolled_at", *req.EnrolledAt)
	}
	if req.Active != nil {
		b.set("active", *req.Active)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}
	b.set("updated_at", r.timeProvider.Now().UTC())

	query := "UPDATE students SET " + b.clause() +
		" WHERE id = " + b.nextPlaceholder(id) +
		" RETURNING " + studentColumnsSQL
	out, err := collectOne[model.Student](ctx, r.DB, query, b.args...)
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return out, nil
}

// Delete deletes a student by ID.
func (r *StudentRepo) Delete(ctx context.Context, id string) (bool, error) {
	rows, err := execRowsAffected(ctx, r.DB, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete student: %w", apperrors.MapDBError(err))
	}
	return rows > 0, nil
}

func (r *StudentRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrStudentNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrStudentEmailExists
	}
	return apperrors.MapDBError(err)
}
