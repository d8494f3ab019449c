package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunexa/academy-api/internal/domain/model"
)

func newTestHomeHandlers() *HomeHandlers {
	return &HomeHandlers{
		Branches: func(_ context.Context, opts model.BranchesListOptions) ([]*model.Branch, error) {
			if opts.Active == nil || !*opts.Active {
				return nil, errors.New("expected active filter")
			}
			return []*model.Branch{{ID: "b1", Name: "Main Campus"}}, nil
		},
		Courses: func(_ context.Context, _ model.CoursesListOptions) ([]*model.Course, error) {
			return []*model.Course{{ID: "c1", Name: "Spoken English"}}, nil
		},
		Events: func(_ context.Context, opts model.EventsListOptions) ([]*model.Event, error) {
			if opts.Published == nil || !*opts.Published {
				return nil, errors.New("expected published filter")
			}
			if opts.After == nil {
				return nil, errors.New("expected upcoming filter")
			}
			return nil, nil
		},
		Testimonials: func(_ context.Context, _ model.TestimonialsListOptions) ([]*model.Testimonial, error) {
			return []*model.Testimonial{{ID: "t1", Author: "Sunita Patil"}}, nil
		},
		OutstandingStudents: func(
			_ context.Context,
			_ model.OutstandingStudentsListOptions,
		) ([]*model.OutstandingStudent, error) {
			return nil, nil
		},
	}
}

func TestHomeHandler_AggregatesSections(t *testing.T) {
	h := newTestHomeHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/home", nil)
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	for _, key := range []string{"branches", "courses", "events", "testimonials", "outstanding_students"} {
		assert.Contains(t, payload, key)
	}

	// Empty sections serialize as [] rather than null.
	assert.JSONEq(t, "[]", string(payload["events"]))
	assert.JSONEq(t, "[]", string(payload["outstanding_students"]))

	var branches []*model.Branch
	require.NoError(t, json.Unmarshal(payload["branches"], &branches))
	require.Len(t, branches, 1)
	assert.Equal(t, "Main Campus", branches[0].Name)
}

func TestHomeHandler_SectionErrorFailsRequest(t *testing.T) {
	h := newTestHomeHandlers()
	h.Courses = func(_ context.Context, _ model.CoursesListOptions) ([]*model.Course, error) {
		return nil, errors.New("db unavailable")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/home", nil)
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "home_failed")
}
