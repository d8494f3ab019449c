package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func namedHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func taggingWrap(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Guard", header)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRegisterCRUDGuardWiring(t *testing.T) {
	mux := http.NewServeMux()
	registerCRUD(mux, crudRoutes{
		Base:    "/api/things",
		Create:  namedHandler,
		List:    namedHandler,
		GetByID: namedHandler,
		Update:  namedHandler,
		Delete:  namedHandler,
		Read:    taggingWrap("read"),
		Write:   taggingWrap("write"),
	})

	tests := []struct {
		method    string
		target    string
		wantGuard string
	}{
		{http.MethodGet, "/api/things", "read"},
		{http.MethodGet, "/api/things/x", "read"},
		{http.MethodPost, "/api/things", "write"},
		{http.MethodPut, "/api/things/x", "write"},
		{http.MethodDelete, "/api/things/x", "write"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
		assert.Equal(t, http.StatusOK, w.Code, tt.method+" "+tt.target)
		assert.Equal(t, tt.wantGuard, w.Header().Get("X-Guard"), tt.method+" "+tt.target)
	}
}

func TestRegisterCRUDWriteDefaultsToRead(t *testing.T) {
	mux := http.NewServeMux()
	registerCRUD(mux, crudRoutes{
		Base:    "/api/things",
		Create:  namedHandler,
		List:    namedHandler,
		GetByID: namedHandler,
		Update:  namedHandler,
		Delete:  namedHandler,
		Read:    taggingWrap("read"),
	})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/things", nil))
	assert.Equal(t, "read", w.Header().Get("X-Guard"))
}

func TestRegisterCRUDPanicsOnMissingHandler(t *testing.T) {
	assert.Panics(t, func() {
		registerCRUD(http.NewServeMux(), crudRoutes{Base: "/api/things", Create: namedHandler})
	})
	assert.Panics(t, func() {
		registerCRUD(http.NewServeMux(), crudRoutes{})
	})
}
