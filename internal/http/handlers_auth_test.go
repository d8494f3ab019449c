package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunexa/academy-api/internal/core"
	domainauth "github.com/edunexa/academy-api/internal/domain/auth"
	"github.com/edunexa/academy-api/internal/domain/model"
	mocks "github.com/edunexa/academy-api/internal/mocks/auth"
	"github.com/edunexa/academy-api/internal/service"
)

// singleUserRepo serves one fixed account, which is all the auth handler
// tests need.
type singleUserRepo struct {
	user *model.User
}

func (r *singleUserRepo) Create(_ context.Context, _ core.CreateUserParams) (*model.User, error) {
	return nil, core.ErrUserNotFound
}

func (r *singleUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, core.ErrUserNotFound
}

func (r *singleUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if r.user != nil && r.user.Email == strings.ToLower(strings.TrimSpace(email)) {
		return r.user, nil
	}
	return nil, core.ErrUserNotFound
}

func (r *singleUserRepo) List(_ context.Context, _ model.UsersListOptions) ([]*model.User, error) {
	if r.user == nil {
		return nil, nil
	}
	return []*model.User{r.user}, nil
}

func (r *singleUserRepo) Update(
	_ context.Context,
	id string,
	params core.UpdateUserParams,
) (*model.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, core.ErrUserNotFound
	}
	if params.Req.Name != nil {
		r.user.Name = *params.Req.Name
	}
	return r.user, nil
}

func (r *singleUserRepo) Delete(_ context.Context, _ string) (bool, error) {
	return false, nil
}

type authFixture struct {
	handlers *AuthHandlers
	sessions *mocks.MemorySessionStore
	user     *model.User
}

func newAuthFixture(t *testing.T, role domainauth.Role, active bool) *authFixture {
	t.Helper()
	hasher := mocks.PlainHasher{}
	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	user := &model.User{
		ID:           "user-1",
		Name:         "Amina Osei",
		Email:        "amina@academy.test",
		PasswordHash: hash,
		Role:         role,
		Active:       active,
	}
	sessions := mocks.NewMemorySessionStore()
	svc := service.NewAuthService(service.AuthServiceOptions{
		Users:    &singleUserRepo{user: user},
		Sessions: sessions,
		Hasher:   hasher,
	})
	return &authFixture{
		handlers: &AuthHandlers{Svc: svc},
		sessions: sessions,
		user:     user,
	}
}

func postJSON(t *testing.T, target, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestLogin_Success(t *testing.T) {
	fx := newAuthFixture(t, domainauth.RoleAdmin, true)

	w := httptest.NewRecorder()
	fx.handlers.Login(w, postJSON(t, "/api/auth/login",
		`{"email":"amina@academy.test","password":"correct horse battery staple"}`))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			User domainauth.UserSnapshot `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "amina@academy.test", body.Data.User.Email)
	assert.Equal(t, domainauth.RoleAdmin, body.Data.User.Role)

	// The session cookie references a persisted session.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	stored, err := fx.sessions.Get(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, fx.user.ID, stored.User.ID)
}

func TestLogin_RoleHint(t *testing.T) {
	fx := newAuthFixture(t, domainauth.RoleStudent, true)

	// The matching hint succeeds.
	w := httptest.NewRecorder()
	fx.handlers.Login(w, postJSON(t, "/api/auth/login",
		`{"email":"amina@academy.test","password":"correct horse battery staple","role":"student"}`))
	assert.Equal(t, http.StatusOK, w.Code)

	// A student cannot sign in through the admin form.
	w = httptest.NewRecorder()
	fx.handlers.Login(w, postJSON(t, "/api/auth/login",
		`{"email":"amina@academy.test","password":"correct horse battery staple","role":"admin"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_Failures(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		fx := newAuthFixture(t, domainauth.RoleAdmin, true)
		w := httptest.NewRecorder()
		fx.handlers.Login(w, postJSON(t, "/api/auth/login",
			`{"email":"amina@academy.test","password":"wrong"}`))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "invalid_credentials", body["error"])
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("unknown account matches wrong-password response", func(t *testing.T) {
		fx := newAuthFixture(t, domainauth.RoleAdmin, true)
		w := httptest.NewRecorder()
		fx.handlers.Login(w, postJSON(t, "/api/auth/login",
			`{"email":"nobody@academy.test","password":"whatever-password"}`))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "invalid_credentials", body["error"])
	})

	t.Run("disabled account", func(t *testing.T) {
		fx := newAuthFixture(t, domainauth.RoleAdmin, false)
		w := httptest.NewRecorder()
		fx.handlers.Login(w, postJSON(t, "/api/auth/login",
			`{"email":"amina@academy.test","password":"correct horse battery staple"}`))
		assert.Equal(t, http.StatusForbidden, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "account_disabled", body["error"])
	})

	t.Run("malformed JSON", func(t *testing.T) {
		fx := newAuthFixture(t, domainauth.RoleAdmin, true)
		w := httptest.NewRecorder()
		fx.handlers.Login(w, postJSON(t, "/api/auth/login", `{"email":`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func (fx *authFixture) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	fx.handlers.Login(w, postJSON(t, "/api/auth/login",
		`{"email":"amina@academy.test","password":"correct horse battery staple"}`))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestLogout_Idempotent(t *testing.T) {
	fx := newAuthFixture(t, domainauth.RoleAdmin, true)
	cookie := fx.login(t)

	// First logout removes the session.
	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	fx.handlers.Logout(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	_, err := fx.sessions.Get(context.Background(), cookie.Value)
	assert.Error(t, err)

	// Logging out again, and without any cookie, still succeeds.
	w = httptest.NewRecorder()
	fx.handlers.Logout(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// The cookie is cleared either way.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestStatus(t *testing.T) {
	fx := newAuthFixture(t, domainauth.RoleFaculty, true)

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		fx.handlers.Status(w, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["authenticated"])
	})

	t.Run("authenticated", func(t *testing.T) {
		cookie := fx.login(t)
		r := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
		r.AddCookie(cookie)
		w := httptest.NewRecorder()
		fx.handlers.Status(w, r)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Authenticated bool                    `json:"authenticated"`
			User          domainauth.UserSnapshot `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Authenticated)
		assert.Equal(t, domainauth.RoleFaculty, body.User.Role)
	})

	t.Run("dead session clears cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
		r.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-gone"})
		w := httptest.NewRecorder()
		fx.handlers.Status(w, r)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["authenticated"])

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestUpdateProfile(t *testing.T) {
	fx := newAuthFixture(t, domainauth.RoleAdmin, true)
	cookie := fx.login(t)

	session, err := fx.sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)

	r := postJSON(t, "/api/auth/profile", `{"name":"Renamed Admin"}`)
	r = r.WithContext(SetSessionInContext(r.Context(), session))
	w := httptest.NewRecorder()
	fx.handlers.UpdateProfile(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			User domainauth.UserSnapshot `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Renamed Admin", body.Data.User.Name)

	// The stored session snapshot was refreshed in place.
	stored, err := fx.sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Admin", stored.User.Name)
	assert.Equal(t, session.ExpiresAt, stored.ExpiresAt)
}

func TestUpdateProfile_RequiresSession(t *testing.T) {
	fx := newAuthFixture(t, domainauth.RoleAdmin, true)

	w := httptest.NewRecorder()
	fx.handlers.UpdateProfile(w, postJSON(t, "/api/auth/profile", `{"name":"X"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
