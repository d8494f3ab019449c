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

// BranchRepo provides database operations for branches.
type BranchRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBranchRepo creates a new BranchRepo with real time provider.
func NewBranchRepo(db *sql.DB) *BranchRepo {
	return &BranchRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBranchRepoWithTimeProvider creates a new BranchRepo with a custom time provider (useful for tests).
func NewBranchRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BranchRepo {
	return &BranchRepo{DB: db, timeProvider: tp}
}

const (
	branchColumnsSQL = `id, name, address, city, phone, email, image, active, created_at, updated_at`

	branchGetByIDQuery = `
		SELECT ` + branchColumnsSQL + `
		FROM branches
		WHERE id = $1`
)

func branchColumns() []string {
	return []string{
		"id", "name", "address", "city", "phone", "email", "image", "active",
		"created_at", "updated_at",
	}
}

// Create inserts a new branch.
func (r *BranchRepo) Create(ctx context.Context, req *model.CreateBranchRequest) (*model.Branch, error) {
	if req == nil {
		return nil, errors.New("create branch request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	out, err := collectOne[model.Branch](ctx, r.DB, `
		INSERT INTO branches (
			name, address, city, phone, email, image, active, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING `+branchColumnsSQL,
		req.Name,
		strings.TrimSpace(req.Address),
		strings.TrimSpace(req.City),
		strings.TrimSpace(req.Phone),
		req.Email,
		req.Image,
		active,
		r.timeProvider.Now().UTC(),
	)
	if err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return out, nil
}

// GetByID retrieves a branch by ID.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	out, err := collectOne[model.Branch](ctx, r.DB, branchGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to get branch by ID: %w", err)
	}
	return out, nil
}

// List retrieves branches with optional filters and sorting.
func (r *BranchRepo) List(ctx context.Context, opts model.BranchesListOptions) ([]*model.Branch, error) {
	limit, offset := normalizePage(opts.Limit, opts.Offset)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(branchColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereAnyILike(q, "name", "city"),
		))
	}
	if opts.Active != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("active", database.Equal, *opts.Active),
		))
	}
	sortCol, sortDir := validateSort(opts.Sort, opts.Dir, map[string]string{
		"name":       "name",
		"city":       "city",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("branches", queryOpts...))
	out, err := collectMany[model.Branch](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return out, nil
}

// Update updates fields of a branch and bumps updated_at.
func (r *BranchRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateBranchRequest,
) (*model.Branch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var b updateClauseBuilder
	if req.Name != nil {
		b.set("name", *req.Name)
	}
	if req.Address != nil {
		b.set("address", strings.TrimSpace(*req.Address))
	}
	if req.City != nil {
		b.set("city", strings.TrimSpace(*req.City))
	}
	if req.Phone != nil {
		b.set("phone", strings.TrimSpace(*req.Phone))
	}
	if req.Email != nil {
		b.set("email", *req.Email)
	}
	if req.Image != nil {
		b.set("image", *req.Image)
	}
	if req.Active != nil {
		b.set("active", *req.Active)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}
	b.set("updated_at", r.timeProvider.Now().UTC())

	query := "UPDATE branches SET " + b.clause() +
		" WHERE id = " + b.nextPlaceholder(id) +
		" RETURNING " + branchColumnsSQL
	out, err := collectOne[model.Branch](ctx, r.DB, query, b.args...)
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return out, nil
}

// Delete deletes a branch by ID.
func (r *BranchRepo) Delete(ctx context.Context, id string) (bool, error) {
	rows, err := execRowsAffected(ctx, r.DB, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		// Branches are referenced by courses, faculty and students; surface
		// restrict violations as typed errors instead of opaque pg failures.
		return false, fmt.Errorf("failed to delete branch: %w", apperrors.MapDBError(err))
	}
	return rows > 0, nil
}

func (r *BranchRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrBranchNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrBranchNameExists
	}
	return apperrors.MapDBError(err)
}
