package httpx

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/edunexa/academy-api/internal/domain/model"
)

// homeSectionLimit caps each section of the home payload. The landing page
// shows a teaser per section; full listings live on the resource endpoints.
const homeSectionLimit = 8

// HomeHandlers serves the aggregated public landing payload. Each section is
// fetched concurrently; list functions are injected so tests can stub them.
type HomeHandlers struct {
	Branches            func(ctx context.Context, opts model.BranchesListOptions) ([]*model.Branch, error)
	Courses             func(ctx context.Context, opts model.CoursesListOptions) ([]*model.Course, error)
	Events              func(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error)
	Testimonials        func(ctx context.Context, opts model.TestimonialsListOptions) ([]*model.Testimonial, error)
	OutstandingStudents func(
		ctx context.Context,
		opts model.OutstandingStudentsListOptions,
	) ([]*model.OutstandingStudent, error)
}

// Home handles GET requests for the landing page payload. Sections are
// limited to active/published entries and fetched concurrently; one failing
// section fails the whole request rather than serving a partial page.
func (h *HomeHandlers) Home(w http.ResponseWriter, r *http.Request) {
	g, gctx := errgroup.WithContext(r.Context())

	active := true
	published := true
	now := time.Now()

	var (
		branches     []*model.Branch
		courses      []*model.Course
		events       []*model.Event
		testimonials []*model.Testimonial
		outstanding  []*model.OutstandingStudent
	)

	g.Go(func() error {
		var err error
		branches, err = h.Branches(gctx, model.BranchesListOptions{
			Limit:  homeSectionLimit,
			Active: &active,
		})
		return err
	})
	g.Go(func() error {
		var err error
		courses, err = h.Courses(gctx, model.CoursesListOptions{
			Limit:  homeSectionLimit,
			Active: &active,
		})
		return err
	})
	g.Go(func() error {
		var err error
		events, err = h.Events(gctx, model.EventsListOptions{
			Limit:     homeSectionLimit,
			Published: &published,
			After:     &now,
			Sort:      "starts_at",
			Dir:       "asc",
		})
		return err
	})
	g.Go(func() error {
		var err error
		testimonials, err = h.Testimonials(gctx, model.TestimonialsListOptions{
			Limit:     homeSectionLimit,
			Published: &published,
		})
		return err
	})
	g.Go(func() error {
		var err error
		outstanding, err = h.OutstandingStudents(gctx, model.OutstandingStudentsListOptions{
			Limit:     homeSectionLimit,
			Published: &published,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "home_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"branches":             emptyIfNil(branches),
		"courses":              emptyIfNil(courses),
		"events":               emptyIfNil(events),
		"testimonials":         emptyIfNil(testimonials),
		"outstanding_students": emptyIfNil(outstanding),
	})
}

func emptyIfNil[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return items
}
