package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunexa/academy-api/internal/core"
	apperrors "github.com/edunexa/academy-api/internal/errors"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type widgetCreate struct {
	Name string `json:"name"`
}

type widgetUpdate struct {
	Name *string `json:"name"`
}

type widgetListOptions struct {
	Query  string
	Limit  int
	Offset int
}

var (
	errWidgetNotFound = errors.New("widget not found")
	errWidgetConflict = errors.New("widget name exists")
)

func newWidgetHandlers() *ResourceHandlers[widget, widgetCreate, widgetUpdate, widgetListOptions] {
	return &ResourceHandlers[widget, widgetCreate, widgetUpdate, widgetListOptions]{
		Name:     "widget",
		ItemsKey: "widgets",
		CreateFn: func(_ context.Context, req *widgetCreate) (*widget, error) {
			if req.Name == "" {
				return nil, errors.New("name is required")
			}
			if req.Name == "taken" {
				return nil, errWidgetConflict
			}
			return &widget{ID: "w-1", Name: req.Name}, nil
		},
		GetFn: func(_ context.Context, id string) (*widget, error) {
			if id != "w-1" {
				return nil, errWidgetNotFound
			}
			return &widget{ID: "w-1", Name: "gizmo"}, nil
		},
		ListFn: func(_ context.Context, opts widgetListOptions) ([]*widget, error) {
			if opts.Query == "boom" {
				return nil, errors.New("backend down")
			}
			if opts.Query == "none" {
				return nil, nil
			}
			return []*widget{{ID: "w-1", Name: "gizmo"}}, nil
		},
		UpdateFn: func(_ context.Context, id string, req widgetUpdate) (*widget, error) {
			if id != "w-1" {
				return nil, errWidgetNotFound
			}
			if req.Name == nil {
				return nil, errors.New("at least one field is required")
			}
			return &widget{ID: id, Name: *req.Name}, nil
		},
		DeleteFn: func(_ context.Context, id string) (bool, error) {
			return id == "w-1", nil
		},
		ParseListOptions: func(q url.Values, limit, offset int) (widgetListOptions, error) {
			if q.Get("q") == "invalid" {
				return widgetListOptions{}, errors.New("q must not be invalid")
			}
			return widgetListOptions{Query: q.Get("q"), Limit: limit, Offset: offset}, nil
		},
		ErrNotFound: errWidgetNotFound,
		ErrConflict: errWidgetConflict,
	}
}

func pathRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	// The mux normally populates path values; tests set them directly.
	parts := strings.Split(strings.Trim(target, "/"), "/")
	r.SetPathValue("id", parts[len(parts)-1])
	return r
}

func TestResourceHandlersCreate(t *testing.T) {
	h := newWidgetHandlers()

	t.Run("created", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Create(w, postJSON(t, "/api/widgets", `{"name":"gizmo"}`))
		require.Equal(t, http.StatusCreated, w.Code)

		var got widget
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "w-1", got.ID)
	})

	t.Run("conflict", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Create(w, postJSON(t, "/api/widgets", `{"name":"taken"}`))
		assert.Equal(t, http.StatusConflict, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "widget_conflict", body["error"])
	})

	t.Run("validation", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Create(w, postJSON(t, "/api/widgets", `{"name":""}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "validation_failed", body["error"])
	})
}

func TestResourceHandlersList(t *testing.T) {
	h := newWidgetHandlers()

	t.Run("envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/api/widgets?limit=10&offset=5", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Widgets []widget `json:"widgets"`
			Limit   int      `json:"limit"`
			Offset  int      `json:"offset"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Widgets, 1)
		assert.Equal(t, 10, body.Limit)
		assert.Equal(t, 5, body.Offset)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/api/widgets?q=none", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"widgets":[]`)
	})

	t.Run("invalid filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/api/widgets?q=invalid", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("backend failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/api/widgets?q=boom", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestResourceHandlersGetByID(t *testing.T) {
	h := newWidgetHandlers()

	w := httptest.NewRecorder()
	h.GetByID(w, pathRequest(http.MethodGet, "/api/widgets/w-1"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.GetByID(w, pathRequest(http.MethodGet, "/api/widgets/w-9"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "widget_not_found", body["error"])
}

func TestResourceHandlersUpdate(t *testing.T) {
	h := newWidgetHandlers()

	r := postJSON(t, "/api/widgets/w-1", `{"name":"renamed"}`)
	r.SetPathValue("id", "w-1")
	w := httptest.NewRecorder()
	h.Update(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	var got widget
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "renamed", got.Name)

	r = postJSON(t, "/api/widgets/w-9", `{"name":"renamed"}`)
	r.SetPathValue("id", "w-9")
	w = httptest.NewRecorder()
	h.Update(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResourceHandlersDelete(t *testing.T) {
	h := newWidgetHandlers()

	w := httptest.NewRecorder()
	h.Delete(w, pathRequest(http.MethodDelete, "/api/widgets/w-1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":true}`, w.Body.String())

	w = httptest.NewRecorder()
	h.Delete(w, pathRequest(http.MethodDelete, "/api/widgets/w-9"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResourceHandlersTypedErrors(t *testing.T) {
	t.Run("foreign key restriction on delete", func(t *testing.T) {
		h := newWidgetHandlers()
		h.DeleteFn = func(_ context.Context, _ string) (bool, error) {
			return false, fmt.Errorf("failed to delete widget: %w",
				apperrors.ForeignKey("Cannot delete because this item is in use by Course."))
		}

		w := httptest.NewRecorder()
		h.Delete(w, pathRequest(http.MethodDelete, "/api/widgets/w-1"))
		assert.Equal(t, http.StatusConflict, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "widget_in_use", body["error"])
	})

	t.Run("typed validation carries the field", func(t *testing.T) {
		h := newWidgetHandlers()
		h.CreateFn = func(_ context.Context, _ *widgetCreate) (*widget, error) {
			return nil, apperrors.ValidationField("email", "This field is required.")
		}

		w := httptest.NewRecorder()
		h.Create(w, postJSON(t, "/api/widgets", `{"name":"gizmo"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "validation_failed", body["error"])
		assert.Equal(t, "email", body["field"])
	})

	t.Run("typed conflict without a sentinel", func(t *testing.T) {
		h := newWidgetHandlers()
		h.UpdateFn = func(_ context.Context, _ string, _ widgetUpdate) (*widget, error) {
			return nil, apperrors.Conflict("This value already exists. Please choose a different one.")
		}

		r := postJSON(t, "/api/widgets/w-1", `{"name":"dup"}`)
		r.SetPathValue("id", "w-1")
		w := httptest.NewRecorder()
		h.Update(w, r)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("typed not found on get", func(t *testing.T) {
		h := newWidgetHandlers()
		h.GetFn = func(_ context.Context, _ string) (*widget, error) {
			return nil, apperrors.NotFound("Resource not found")
		}

		w := httptest.NewRecorder()
		h.GetByID(w, pathRequest(http.MethodGet, "/api/widgets/w-1"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// stubCache is a minimal in-memory core.CacheRepository for exercising the
// list response cache.
type stubCache struct {
	mu     sync.Mutex
	values map[string][]byte
	gets   int
	sets   int
}

func newStubCache() *stubCache {
	return &stubCache{values: make(map[string][]byte)}
}

func (c *stubCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	c.sets++
	return nil
}

func (c *stubCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return c.values[key], nil
}

func (c *stubCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	delete(c.values, key)
	return ok, nil
}

func (c *stubCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok, nil
}

func (c *stubCache) SetTTL(_ context.Context, key string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok, nil
}

func (c *stubCache) SetIfNotExists(_ context.Context, key string, value []byte, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; ok {
		return false, nil
	}
	c.values[key] = value
	return true, nil
}

func (c *stubCache) Increment(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(string(c.values[key]), 10, 64)
	n++
	c.values[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (c *stubCache) Health(_ context.Context) error { return nil }

func TestResourceHandlersListCaching(t *testing.T) {
	cache := newStubCache()
	catalog := core.NewCatalogCache(cache, core.DefaultCatalogCacheConfig())

	listCalls := 0
	h := newWidgetHandlers()
	h.Cache = catalog
	h.Resource = "widgets"
	h.ListFn = func(_ context.Context, _ widgetListOptions) ([]*widget, error) {
		listCalls++
		return []*widget{{ID: fmt.Sprintf("w-%d", listCalls), Name: "gizmo"}}, nil
	}

	// First request misses the cache and stores the response.
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/widgets?q=gizmo", nil))
	require.Equal(t, http.StatusOK, w.Code)
	first := w.Body.String()
	assert.Equal(t, 1, listCalls)

	// A repeat of the same query is served verbatim from the cache.
	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/widgets?q=gizmo", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, w.Body.String())
	assert.Equal(t, 1, listCalls)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	// A different query string gets its own entry.
	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/widgets?q=gizmo&limit=50", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, listCalls)

	// Bumping the resource version orphans the cached entries.
	require.NoError(t, catalog.Invalidate(context.Background(), "widgets"))
	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/widgets?q=gizmo", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, listCalls)
}

// recordingSink captures Count emissions for assertions.
type recordedCount struct {
	name string
	tags map[string]string
}

type recordingSink struct {
	counts []recordedCount
}

func (s *recordingSink) Count(name string, _ int64, tags map[string]string) {
	s.counts = append(s.counts, recordedCount{name: name, tags: tags})
}

func (s *recordingSink) Gauge(string, float64, map[string]string) {}

func (s *recordingSink) Timing(string, time.Duration, map[string]string) {}

func TestResourceHandlersListCacheMetrics(t *testing.T) {
	cache := newStubCache()
	catalog := core.NewCatalogCache(cache, core.DefaultCatalogCacheConfig())
	sink := &recordingSink{}

	h := newWidgetHandlers()
	h.Cache = catalog
	h.Resource = "widgets"
	h.Metrics = sink
	h.ListFn = func(_ context.Context, _ widgetListOptions) ([]*widget, error) {
		return []*widget{{ID: "w-1", Name: "gizmo"}}, nil
	}

	// The first request misses and populates the cache, the repeat hits.
	for range 2 {
		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/api/widgets?q=gizmo", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	require.Len(t, sink.counts, 2)
	assert.Equal(t, "catalog.cache.lookup", sink.counts[0].name)
	assert.Equal(t, map[string]string{"resource": "widgets", "result": "miss"}, sink.counts[0].tags)
	assert.Equal(t, map[string]string{"resource": "widgets", "result": "hit"}, sink.counts[1].tags)
}

func TestResourceHandlersListWithoutCache(t *testing.T) {
	listCalls := 0
	h := newWidgetHandlers()
	h.ListFn = func(_ context.Context, _ widgetListOptions) ([]*widget, error) {
		listCalls++
		return nil, nil
	}

	for range 2 {
		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/api/widgets", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 2, listCalls)
}
