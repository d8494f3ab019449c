package service

import (
	"context"
	"fmt"

	"github.com/edunexa/academy-api/internal/core"
)

// Catalog resource tags. Handlers key cached responses by these and services
// bump them on every write, so readers never see a stale listing.
const (
	CatalogBranches            = "branches"
	CatalogCourses             = "courses"
	CatalogFaculty             = "faculty"
	CatalogStudents            = "students"
	CatalogOutstandingStudents = "outstanding-students"
	CatalogEvents              = "events"
	CatalogTestimonials        = "testimonials"
)

// catalogInvalidator bumps a catalog resource version after writes. A nil
// cache disables invalidation, which keeps the services usable in tests and
// in deployments without Redis.
type catalogInvalidator struct {
	cache    *core.CatalogCache
	resource string
}

func (c catalogInvalidator) invalidate(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	if err := c.cache.Invalidate(ctx, c.resource); err != nil {
		return fmt.Errorf("invalidate %s catalog: %w", c.resource, err)
	}
	return nil
}
