package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/data/database"
	"github.com/edunexa/academy-api/internal/domain/model"
	apperrors "github.com/edunexa/academy-api/internal/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserRepo provides database operations for user accounts.
// The caller hashes passwords; this layer only ever sees the hash.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	userColumnsSQL = `id, name, email, password_hash, role, active, avatar, details, created_at, updated_at`

	userGetByIDQuery = `
		SELECT ` + userColumnsSQL + `
		FROM users
		WHERE id = $1`

	userGetByEmailQuery = `
		SELECT ` + userColumnsSQL + `
		FROM users
		WHERE email = $1`
)

func userColumns() []string {
	return []string{
		"id",
		"name",
		"email",
		"password_hash",
		"role",
		"active",
		"avatar",
		"details",
		"created_at",
		"updated_at",
	}
}

// Create inserts a new user. The request must already be validated and the
// password hashed by the service layer.
func (r *UserRepo) Create(ctx context.Context, params core.CreateUserParams) (*model.User, error) {
	if params.PasswordHash == "" {
		return nil, errors.New("password hash is required")
	}
	req := params.Req

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	createdAt := r.timeProvider.Now().UTC()
	out, err := collectOne[model.User](ctx, r.DB, `
		INSERT INTO users (
			name, email, password_hash, role, active, avatar, details, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING `+userColumnsSQL,
		strings.TrimSpace(req.Name),
		req.Email,
		params.PasswordHash,
		req.Role,
		active,
		req.Avatar,
		req.Details,
		createdAt,
	)
	if err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	out, err := collectOne[model.User](ctx, r.DB, userGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return out, nil
}

// GetByEmail retrieves a user by normalized email. Used by password login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	out, err := collectOne[model.User](ctx, r.DB, userGetByEmailQuery, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return out, nil
}

// List retrieves users with optional filters and sorting.
func (r *UserRepo) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	limit, offset := normalizePage(opts.Limit, opts.Offset)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(userColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereAnyILike(q, "name", "email"),
		))
	}
	if opts.Role != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("role", database.Equal, *opts.Role),
		))
	}
	if opts.Active != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("active", database.Equal, *opts.Active),
		))
	}
	sortCol, sortDir := validateSort(opts.Sort, opts.Dir, map[string]string{
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("users", queryOpts...))
	out, err := collectMany[model.User](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return out, nil
}

// Update updates fields of a user and bumps updated_at.
func (r *UserRepo) Update(ctx context.Context, id string, params core.UpdateUserParams) (*model.User, error) {
	req := params.Req

	var b updateClauseBuilder
	if req.Name != nil {
		b.set("name", strings.TrimSpace(*req.Name))
	}
	if req.Email != nil {
		b.set("email", *req.Email)
	}
	if params.PasswordHash != nil {
		b.set("password_hash", *params.PasswordHash)
	}
	if req.Role != nil {
		b.set("role", *req.Role)
	}
	if req.Active != nil {
		b.set("active", *req.Active)
	}
	if req.Avatar != nil {
		b.set("avatar", *req.Avatar)
	}
	if req.Details != nil {
		b.set("details", *req.Details)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}
	b.set("updated_at", r.timeProvider.Now().UTC())

	query := "UPDATE users SET " + b.clause() +
		" WHERE id = " + b.nextPlaceholder(id) +
		" RETURNING " + userColumnsSQL
	out, err := collectOne[model.User](ctx, r.DB, query, b.args...)
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return out, nil
}

// Delete deletes a user by ID.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	rows, err := execRowsAffected(ctx, r.DB, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return rows > 0, nil
}

func (r *UserRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrUserEmailExists
	}
	return apperrors.MapDBError(err)
}

// validateSort returns a safe sort column and direction given an allowlist.
// Unknown values fall back to created_at DESC.
func validateSort(sort, dir string, allowed map[string]string) (string, string) {
	sortCol := "created_at"
	sortDir := sortDirDesc

	if sort != "" {
		if validSort, ok := allowed[strings.ToLower(strings.TrimSpace(sort))]; ok {
			sortCol = validSort
		}
	}
	if dir != "" {
		allowedDirs := map[string]string{
			"asc":  sortDirAsc,
			"desc": sortDirDesc,
		}
		if validDir, ok := allowedDirs[strings.ToLower(strings.TrimSpace(dir))]; ok {
			sortDir = validDir
		}
	}
	return sortCol, sortDir
}
