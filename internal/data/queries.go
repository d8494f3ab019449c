package data

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/edunexa/academy-api/internal/data/pgxutil"
	"github.com/jackc/pgx/v5"
)

// collectOne runs a query expected to return exactly one row and maps it by
// column name. Callers translate pgx.ErrNoRows into their own sentinel.
func collectOne[T any](ctx context.Context, db *sql.DB, query string, args ...any) (*T, error) {
	var out T
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// collectMany runs a list query and maps every row by column name.
func collectMany[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]*T, error) {
	var rowsOut []T
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
		return err
	})
	if err != nil {
		return nil, err
	}
	res := make([]*T, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// execRowsAffected runs a statement and reports how many rows it touched.
func execRowsAffected(ctx context.Context, db *sql.DB, query string, args ...any) (int64, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	return rows, err
}

// updateClauseBuilder accumulates SET fragments with positional args for a
// partial UPDATE. Column names are compile-time constants at call sites, never
// caller input.
type updateClauseBuilder struct {
	parts []string
	args  []any
}

func (b *updateClauseBuilder) set(column string, value any) {
	b.parts = append(b.parts, column+" = $"+strconv.Itoa(len(b.args)+1))
	b.args = append(b.args, value)
}

// setNullable writes NULL when the trimmed value is empty, otherwise binds it.
func (b *updateClauseBuilder) setNullable(column, value string) {
	if strings.TrimSpace(value) == "" {
		b.parts = append(b.parts, column+" = NULL")
		return
	}
	b.set(column, value)
}

func (b *updateClauseBuilder) empty() bool { return len(b.parts) == 0 }

func (b *updateClauseBuilder) clause() string { return strings.Join(b.parts, ", ") }

// nextPlaceholder appends an arg and returns its placeholder, for use outside
// the SET clause (e.g. the WHERE id binding).
func (b *updateClauseBuilder) nextPlaceholder(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}
