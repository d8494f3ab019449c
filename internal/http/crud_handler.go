package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/edunexa/academy-api/internal/core"
	apperrors "github.com/edunexa/academy-api/internal/errors"
	"github.com/edunexa/academy-api/internal/observability/metrics"
	"github.com/edunexa/academy-api/internal/observability/statsd"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100 // Maximum number of items that can be requested in one call
)

// ResourceHandlers provides the standard JSON CRUD handlers for one resource.
// T is the entity type, C the create request, U the update request, and O the
// list options. Per-resource wiring supplies the service functions, sentinel
// errors, and the query parser; the response flow stays identical everywhere.
type ResourceHandlers[T, C, U, O any] struct {
	// Name appears in error codes and messages, e.g. "course".
	Name string
	// ItemsKey is the plural key wrapping list responses, e.g. "courses".
	ItemsKey string

	CreateFn func(ctx context.Context, req *C) (*T, error)
	GetFn    func(ctx context.Context, id string) (*T, error)
	ListFn   func(ctx context.Context, opts O) ([]*T, error)
	UpdateFn func(ctx context.Context, id string, req U) (*T, error)
	DeleteFn func(ctx context.Context, id string) (bool, error)

	// ParseListOptions maps query params to O. Limit and offset are already
	// clamped when it runs.
	ParseListOptions func(q url.Values, limit, offset int) (O, error)

	// ErrNotFound and ErrConflict classify service errors into 404 and 409.
	ErrNotFound error
	ErrConflict error

	// Cache, when set, serves list responses from the versioned catalog
	// cache keyed by the canonical query string.
	Cache    *core.CatalogCache
	Resource string

	// Metrics, when set, receives catalog cache hit/miss counters.
	Metrics statsd.Sink
}

// Create handles POST requests to create a resource.
func (h *ResourceHandlers[T, C, U, O]) Create(w http.ResponseWriter, r *http.Request) {
	var req C
	if !DecodeJSON(w, r, &req) {
		return
	}

	item, err := h.CreateFn(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, "create_failed")
		return
	}

	WriteJSON(w, http.StatusCreated, item)
}

// List handles GET requests to list resources with pagination and filters.
func (h *ResourceHandlers[T, C, U, O]) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)

	requestKey := listRequestKey(r.URL.Query())
	if body, ok := h.cachedList(r, requestKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	opts, err := h.ParseListOptions(r.URL.Query(), limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_filter", Err: err})
		return
	}

	items, err := h.ListFn(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}
	if items == nil {
		items = []*T{}
	}

	payload := map[string]any{
		h.ItemsKey: items,
		"limit":    limit,
		"offset":   offset,
	}
	h.storeList(r, requestKey, payload)
	WriteJSON(w, http.StatusOK, payload)
}

// GetByID handles GET requests for a single resource.
func (h *ResourceHandlers[T, C, U, O]) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New(h.Name + " id is required"),
		})
		return
	}

	item, err := h.GetFn(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "get_failed")
		return
	}

	WriteJSON(w, http.StatusOK, item)
}

// Update handles PUT requests to update a resource.
func (h *ResourceHandlers[T, C, U, O]) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New(h.Name + " id is required"),
		})
		return
	}

	var req U
	if !DecodeJSON(w, r, &req) {
		return
	}

	item, err := h.UpdateFn(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, err, "update_failed")
		return
	}

	WriteJSON(w, http.StatusOK, item)
}

// Delete handles DELETE requests to remove a resource.
func (h *ResourceHandlers[T, C, U, O]) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New(h.Name + " id is required"),
		})
		return
	}

	deleted, err := h.DeleteFn(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "delete_failed")
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: h.Name + "_not_found",
			Err:     errors.New(h.Name + " not found"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// writeServiceError classifies a service error into 404/409/400/500. Typed
// errors from the data layer win over per-resource sentinels; the string
// matcher covers request validation errors that are still untyped.
func (h *ResourceHandlers[T, C, U, O]) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case h.ErrNotFound != nil && errors.Is(err, h.ErrNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: h.Name + "_not_found", Err: err})
	case h.ErrConflict != nil && errors.Is(err, h.ErrConflict):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: h.Name + "_conflict", Err: err})
	case apperrors.IsNotFound(err):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: h.Name + "_not_found", Err: err})
	case apperrors.IsConflict(err):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: h.Name + "_conflict", Err: err})
	case apperrors.IsForeignKey(err):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: h.Name + "_in_use", Err: err})
	case apperrors.IsValidation(err), isValidationError(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: fallback, Err: err})
	}
}

// listRequestKey canonicalizes the query string so equivalent requests share
// a cache entry. url.Values.Encode sorts keys.
func listRequestKey(q url.Values) string {
	return "list:" + q.Encode()
}

func (h *ResourceHandlers[T, C, U, O]) cachedList(r *http.Request, requestKey string) ([]byte, bool) {
	if h.Cache == nil || h.Resource == "" {
		return nil, false
	}
	body, err := h.Cache.GetResponse(r.Context(), h.Resource, requestKey)
	hit := err == nil && len(body) > 0
	metrics.EmitCacheLookup(h.Metrics, metrics.CacheMetric{Resource: h.Resource, Hit: hit, Err: err})
	if !hit {
		return nil, false
	}
	return body, true
}

func (h *ResourceHandlers[T, C, U, O]) storeList(r *http.Request, requestKey string, payload any) {
	if h.Cache == nil || h.Resource == "" {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	// Best effort: a cache write failure never fails the request.
	_ = h.Cache.SetResponse(r.Context(), h.Resource, requestKey, body)
}
