package database

import (
	"strings"
	"testing"
)

func TestBuildListQuery_BasicSelect(t *testing.T) {
	opts := NewListQueryOptions("users")
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "users"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WithColumns(t *testing.T) {
	opts := NewListQueryOptions("users",
		WithColumns("id", "name", "email"),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "id", "name", "email" FROM "users"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_Pagination(t *testing.T) {
	opts := NewListQueryOptions("courses",
		WithColumns("id", "name"),
		WithLimit(10),
		WithOffset(20),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "id", "name" FROM "courses" LIMIT $1 OFFSET $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != 10 || args[1] != 20 {
		t.Errorf("Expected args [10 20], got %v", args)
	}
}

func TestBuildListQuery_Conditions(t *testing.T) {
	opts := NewListQueryOptions("students",
		WithColumns("id"),
		WithCondition(WhereCond("active", Equal, true)),
		WithCondition(WhereCond("name", ILike, "%smith%")),
		WithOrderBy("created_at", "desc"),
		WithLimit(5),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "id" FROM "students" WHERE "active" = $1 AND "name" ILIKE $2 ORDER BY "created_at" DESC LIMIT $3`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %v", args)
	}
}

func TestBuildListQuery_OrCondition(t *testing.T) {
	opts := NewListQueryOptions("students",
		WithColumns("id"),
		WithCondition(WhereAnyILike("%smith%", "name", "email")),
		WithCondition(WhereCond("active", Equal, true)),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "id" FROM "students" WHERE ("name" ILIKE $1 OR "email" ILIKE $1) AND "active" = $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != "%smith%" || args[1] != true {
		t.Errorf("Expected args [%%smith%% true], got %v", args)
	}
}

func TestBuildListQuery_InCondition(t *testing.T) {
	opts := NewListQueryOptions("inquiries",
		WithCondition(WhereCond("status", In, []string{"new", "contacted"})),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "inquiries" WHERE "status" IN ($1, $2)`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 {
		t.Errorf("Expected 2 args, got %v", args)
	}
}

func TestBuildListQuery_InCondition_EmptySliceSkipped(t *testing.T) {
	opts := NewListQueryOptions("inquiries",
		WithCondition(WhereCond("status", In, []string{})),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "inquiries"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %v", args)
	}
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	opts := NewListQueryOptions("events",
		WithCountOnly(),
		WithCondition(WhereCond("published", Equal, true)),
		WithLimit(10),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT COUNT(*) FROM "events" WHERE "published" = $1`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %v", args)
	}
}

func TestBuildListQuery_SanitizesIdentifiers(t *testing.T) {
	opts := NewListQueryOptions("events",
		WithColumns(`title"; DROP TABLE events; --`),
	)
	query, _ := BuildListQuery(opts)

	// The injected quote must come out doubled inside a quoted identifier.
	if !strings.Contains(query, `""`) {
		t.Errorf("Expected sanitized identifier in query %q", query)
	}
}

func TestBuildListQuery_InvalidOrderDirIgnored(t *testing.T) {
	opts := NewListQueryOptions("events",
		WithOrderBy("starts_at", "sideways"),
	)
	query, _ := BuildListQuery(opts)

	expected := `SELECT * FROM "events" ORDER BY "starts_at"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
}

func TestBuildListQuery_QualifiedColumn(t *testing.T) {
	opts := NewListQueryOptions("events",
		WithColumns("events.id", "title"),
	)
	query, _ := BuildListQuery(opts)

	expected := `SELECT "events"."id", "title" FROM "events"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
}

func TestBuildListQuery_NilOptions(t *testing.T) {
	query, args := BuildListQuery(nil)
	if query != "" {
		t.Errorf("Expected empty query, got %q", query)
	}
	if args != nil {
		t.Errorf("Expected nil args, got %v", args)
	}
}
