package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleFaculty))
	assert.True(t, ValidRole(RoleStudent))
	assert.False(t, ValidRole(RoleGuest))
	assert.False(t, ValidRole(Role("superuser")))
	assert.False(t, ValidRole(Role("")))
}

func TestNewSession(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	user := UserSnapshot{
		ID:    "u-1",
		Name:  "Test Admin",
		Email: "admin@example.com",
		Role:  RoleAdmin,
	}

	s, err := NewSession("sess-1", user, expiry)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", s.ID)
	assert.Equal(t, user, s.User)
	assert.Equal(t, RoleAdmin, s.Role)
	assert.True(t, s.IsAdmin())
	assert.False(t, s.Expired(time.Now()))
	assert.True(t, s.Expired(expiry.Add(time.Second)))
}

func TestNewSession_Invalid(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	valid := UserSnapshot{ID: "u-1", Role: RoleStudent}

	tests := []struct {
		name string
		id   string
		user UserSnapshot
	}{
		{name: "empty session id", id: "", user: valid},
		{name: "empty user id", id: "sess-1", user: UserSnapshot{Role: RoleStudent}},
		{name: "guest role", id: "sess-1", user: UserSnapshot{ID: "u-1", Role: RoleGuest}},
		{name: "unknown role", id: "sess-1", user: UserSnapshot{ID: "u-1", Role: Role("root")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(tt.id, tt.user, expiry)
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestSession_RoleMirrorsUser(t *testing.T) {
	s, err := NewSession("sess-2", UserSnapshot{ID: "u-2", Role: RoleFaculty}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, RoleFaculty, s.Role)
	assert.False(t, s.IsAdmin())
}
