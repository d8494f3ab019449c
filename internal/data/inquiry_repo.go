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

// InquiryRepo provides database operations for contact inquiries.
type InquiryRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewInquiryRepo creates a new InquiryRepo with real time provider.
func NewInquiryRepo(db *sql.DB) *InquiryRepo {
	return &InquiryRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewInquiryRepoWithTimeProvider creates a new InquiryRepo with a custom time provider (useful for tests).
func NewInquiryRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *InquiryRepo {
	return &InquiryRepo{DB: db, timeProvider: tp}
}

const (
	inquiryColumnsSQL = `id, name, email, phone, subject, message, course_id, status, note, created_at, updated_at`

	inquiryGetByIDQuery = `
		SELECT ` + inquiryColumnsSQL + `
		FROM inquiries
		WHERE id = $1`
)

func inquiryColumns() []string {
	return []string{
		"id", "name", "email", "phone", "subject", "message", "course_id",
		"status", "note", "created_at", "updated_at",
	}
}

// Create inserts a new inquiry. Status always starts as "new".
func (r *InquiryRepo) Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.Inquiry, error) {
	if req == nil {
		return nil, errors.New("create inquiry request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	out, err := collectOne[model.Inquiry](ctx, r.DB, `
		INSERT INTO inquiries (
			name, email, phone, subject, message, course_id, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING `+inquiryColumnsSQL,
		req.Name,
		req.Email,
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.Subject),
		req.Message,
		req.CourseID,
		model.InquiryStatusNew,
		r.timeProvider.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves an inquiry by ID.
func (r *InquiryRepo) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	out, err := collectOne[model.Inquiry](ctx, r.DB, inquiryGetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry by ID: %w", err)
	}
	return out, nil
}

// List retrieves inquiries with optional filters and sorting.
func (r *InquiryRepo) List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.Inquiry, error) {
	limit, offset := normalizePage(opts.Limit, opts.Offset)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(inquiryColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		q := "%" + strings.TrimSpace(*opts.Q) + "%"
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereAnyILike(q, "name", "email", "subject"),
		))
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, *opts.Status),
		))
	}
	if opts.CourseID != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("course_id", database.Equal, *opts.CourseID),
		))
	}
	sortCol, sortDir := validateSort(opts.Sort, opts.Dir, map[string]string{
		"name":       "name",
		"status":     "status",
		"created_at": "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("inquiries", queryOpts...))
	out, err := collectMany[model.Inquiry](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return out, nil
}

// Update updates follow-up fields of an inquiry and bumps updated_at.
func (r *InquiryRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateInquiryRequest,
) (*model.Inquiry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var b updateClauseBuilder
	if req.Status != nil {
		b.set("status", *req.Status)
	}
	if req.Note != nil {
		b.set("note", *req.Note)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}
	b.set("updated_at", r.timeProvider.Now().UTC())

	query := "UPDATE inquiries SET " + b.clause() +
		" WHERE id = " + b.nextPlaceholder(id) +
		" RETURNING " + inquiryColumnsSQL
	out, err := collectOne[model.Inquiry](ctx, r.DB, query, b.args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	return out, nil
}

// Delete deletes an inquiry by ID.
func (r *InquiryRepo) Delete(ctx context.Context, id string) (bool, error) {
	rows, err := execRowsAffected(ctx, r.DB, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete inquiry: %w", err)
	}
	return rows > 0, nil
}
