package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/edunexa/academy-api/internal/domain/auth"
	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/service"
)

// fakeAuthService implements AuthServiceInterface backed by a fixed session
// map and records deletions so tests can assert non-interference.
type fakeAuthService struct {
	sessions map[string]domainauth.Session
	deleted  []string
}

func newFakeAuthService(sessions ...domainauth.Session) *fakeAuthService {
	f := &fakeAuthService{sessions: make(map[string]domainauth.Session)}
	for _, s := range sessions {
		f.sessions[s.ID] = s
	}
	return f
}

func (f *fakeAuthService) PasswordLogin(
	_ context.Context,
	_ service.PasswordLoginInput,
) (domainauth.Session, error) {
	return domainauth.Session{}, errors.New("not implemented")
}

func (f *fakeAuthService) BeginLogin(_ context.Context, _ string) (*service.BeginLoginResult, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthService) CompleteLogin(
	_ context.Context,
	_ service.CompleteLoginInput,
) (domainauth.Session, error) {
	return domainauth.Session{}, errors.New("not implemented")
}

func (f *fakeAuthService) GetSession(_ context.Context, id string) (domainauth.Session, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return domainauth.Session{}, service.ErrSessionExpired
}

func (f *fakeAuthService) Logout(_ context.Context, id string) error {
	delete(f.sessions, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAuthService) UpdateProfile(
	_ context.Context,
	session domainauth.Session,
	_ model.UpdateProfileRequest,
) (domainauth.Session, error) {
	return session, nil
}

func testSessionWithRole(t *testing.T, id string, role domainauth.Role) domainauth.Session {
	t.Helper()
	session, err := domainauth.NewSession(id, domainauth.UserSnapshot{
		ID:     "user-1",
		Name:   "Test User",
		Email:  "user@academy.test",
		Role:   role,
		Active: true,
	}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return session
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidCookieSession(t *testing.T) {
	session := testSessionWithRole(t, "sess-1", domainauth.RoleStudent)
	svc := newFakeAuthService(session)

	var gotRole domainauth.Role
	handler := AuthGuard{Svc: svc}.RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	r.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domainauth.RoleStudent, gotRole)
}

func TestRequireAuth_BearerTokenBeatsCookie(t *testing.T) {
	bearer := testSessionWithRole(t, "sess-bearer", domainauth.RoleAdmin)
	svc := newFakeAuthService(bearer)

	var gotRole domainauth.Role
	handler := AuthGuard{Svc: svc}.RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	r.Header.Set("Authorization", "Bearer sess-bearer")
	r.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-stale"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domainauth.RoleAdmin, gotRole)
}

func TestRequireAuth_NoCredentialAPI(t *testing.T) {
	handler := AuthGuard{Svc: newFakeAuthService()}.RequireAuth()(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "authentication_required", body["error"])
	assert.Equal(t, "/login", body["redirect_to"])
	// No credential was presented, so there is nothing to clear.
	assert.Empty(t, w.Result().Cookies())
}

func TestRequireAuth_DeadSessionRedirectsBySection(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantLogin string
	}{
		{"general section", "/branches", "/login"},
		{"admin section", "/admin/students", "/admin/login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := SectionDetection()(AuthGuard{Svc: newFakeAuthService()}.RequireAuth()(okHandler()))

			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			r.Header.Set("Accept", "text/html")
			r.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-dead"})
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.wantLogin, w.Header().Get("Location"))

			// The dead cookie is cleared exactly once.
			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, "session_id", cookies[0].Name)
			assert.Empty(t, cookies[0].Value)
			assert.Negative(t, cookies[0].MaxAge)
		})
	}
}

func TestRequireAuth_DeadSessionClearsDomainScopedCookie(t *testing.T) {
	// Deletion is keyed on (name, domain, path); the clearing cookie must
	// carry the same domain the login handler set it with.
	guard := AuthGuard{Svc: newFakeAuthService(), CookieDomain: "academy.test"}
	handler := guard.RequireAuth()(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	r.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-dead"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.Equal(t, "academy.test", cookies[0].Domain)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestRequireAuth_DeadSessionAPICarriesRedirectTarget(t *testing.T) {
	handler := SectionDetection()(AuthGuard{Svc: newFakeAuthService()}.RequireAuth()(okHandler()))

	r := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	r.Header.Set("Referer", "https://academy.test/admin/students")
	r.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-dead"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/admin/login", body["redirect_to"])
}

func TestRequireRole_AllowsAnyListedRole(t *testing.T) {
	admin := testSessionWithRole(t, "sess-admin", domainauth.RoleAdmin)
	faculty := testSessionWithRole(t, "sess-faculty", domainauth.RoleFaculty)
	svc := newFakeAuthService(admin, faculty)

	handler := AuthGuard{Svc: svc}.RequireRole(domainauth.RoleAdmin, domainauth.RoleFaculty)(okHandler())

	for _, id := range []string{"sess-admin", "sess-faculty"} {
		r := httptest.NewRequest(http.MethodGet, "/api/students", nil)
		r.AddCookie(&http.Cookie{Name: "session_id", Value: id})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code, id)
	}
}

func TestRequireRole_WrongRoleKeepsSession(t *testing.T) {
	student := testSessionWithRole(t, "sess-student", domainauth.RoleStudent)
	svc := newFakeAuthService(student)

	handler := AuthGuard{Svc: svc}.RequireRole(domainauth.RoleAdmin)(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	r.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-student"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	// A 403 never clears the cookie, never redirects, and never deletes the session.
	assert.Empty(t, w.Result().Cookies())
	assert.Empty(t, w.Header().Get("Location"))
	assert.Empty(t, svc.deleted)
	_, err := svc.GetSession(context.Background(), "sess-student")
	assert.NoError(t, err)
}

func TestOptionalAuth(t *testing.T) {
	session := testSessionWithRole(t, "sess-1", domainauth.RoleStudent)
	svc := newFakeAuthService(session)

	var hadSession bool
	handler := AuthGuard{Svc: svc}.OptionalAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadSession = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Without a credential the request passes through as guest.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/courses", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, hadSession)

	// With a live session it is attached.
	r := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	r.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hadSession)
}

func TestSessionIDFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, sessionIDFromRequest(r))

	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", sessionIDFromRequest(r))

	r.Header.Del("Authorization")
	r.AddCookie(&http.Cookie{Name: "session_id", Value: "cookie-session"})
	assert.Equal(t, "cookie-session", sessionIDFromRequest(r))

	// Non-bearer authorization falls through to the cookie.
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Equal(t, "cookie-session", sessionIDFromRequest(r))
}
