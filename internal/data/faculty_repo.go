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

// FacultyRepo provides database operations for faculty profiles.
type FacultyRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewFacultyRepo creates a new FacultyRepo with real time provider.
func NewFacultyRepo(db *sql.DB) *FacultyRepo {
	return &FacultyRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewFacultyRepoWithTimeProvider creates a new FacultyRepo with a custom time provider (useful for tests).
func NewFacultyRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *FacultyRepo {
	return &FacultyRepo{DB: db, timeProvider: tp}
}

const (
	facultyColumnsSQL = `id, name, email, phone, designation, qualification, bio, image, branch_id, active, created_at, updated_at`

	facultyGetByIDQuery = `
		SELECT ` + facultyColumnsSQL + `
		FROM faculty
		WHERE id = $1`
)

func facultyColumnsList() []string {
	return []string{
		"id", "name", "email", "phone", "designation", "qualification", "bio",
		"image", "branch_id", "active", "created_at", "updated_at",
	}
}

// Create inserts a new faculty member.
func (r *FacultyRepo) Create(
	ctx context.Context,
	req *model.CreateFacultyRequest,
) (*model.FacultyMember, error) {
	if req == nil {
		return nil, errors.New("create faculty request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	out, err := collectOne[model.FacultyMember](ctx, r.DB, `
		INSERT INTO faculty (
			name, email, phone, designation, qualification, bio, image, branch_id, active, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING `+facultyColumnsSQL,
		req.Name,
		req.Email,
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.Designation),
		req.Qualification,
		req.Bio,
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

// GetByID retrieves a faculty member by ID.
func (r *FacultyRepo) GetByID(ctx context.Context, id string) (*model.FacultyMember, error) {
	out, err := collectOne[model.FacultyMember](ctx, r.DB, facultyGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFacultyNotFound
		}
		return nil, fmt.Errorf("failed to get faculty by ID: %w", err)
	}
	return out, nil
}

// List retrieves faculty with optional filters and sorting.
func (r *FacultyRepo) List(
	ctx context.Context,
	opts model.FacultyListOptions,
) ([]*model.FacultyMember, error) {
	limit, offset := normalizePage(opts.Limit, opts.Offset)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(facultyColumnsList()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereAnyILike(q, "name", "designation"),
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
		"name":        "name",
		"designation": "designation",
		"created_at":  "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("faculty", queryOpts...))
	out, err := collectMany[model.FacultyMember](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list faculty: %w", err)
	}
	return out, nil
}

// Update updates fields of a faculty member and bumps updated_at.
func (r *FacultyRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateFacultyRequest,
) (*model.FacultyMember, error) {
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
	if req.Designation != nil {
		b.set("designation", strings.TrimSpace(*req.Designation))
	}
	if req.Qualification != nil {
		b.set("qualification", *req.Qualification)
	}
	if req.Bio != nil {
		b.set("bio", *req.Bio)
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

	query := "UPDATE faculty SET " + b.clause() +
		" WHERE id = " + b.nextPlaceholder(id) +
		" RETURNING " + facultyColumnsSQL
	out, err := collectOne[model.FacultyMember](ctx, r.DB, query, b.args...)
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return out, nil
}

// Delete deletes a faculty member by ID.
func (r *FacultyRepo) Delete(ctx context.Context, id string) (bool, error) {
	rows, err := execRowsAffected(ctx, r.DB, `DELETE FROM faculty WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete faculty: %w", err)
	}
	return rows > 0, nil
}

func (r *FacultyRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrFacultyNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrFacultyEmailExists
	}
	return apperrors.MapDBError(err)
}
