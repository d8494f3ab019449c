package model

import (
	"testing"

	auth "github.com/edunexa/academy-api/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	req := CreateUserRequest{
		Name:     "  Jordan Doe ",
		Email:    " Jordan@Example.EDU ",
		Password: "hunter2hunter2",
		Role:     auth.RoleFaculty,
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Jordan Doe", req.Name)
	assert.Equal(t, "jordan@example.edu", req.Email)
}

func TestCreateUserRequest_Validate_Errors(t *testing.T) {
	base := func() CreateUserRequest {
		return CreateUserRequest{
			Name:     "Jordan Doe",
			Email:    "jordan@example.edu",
			Password: "hunter2hunter2",
			Role:     auth.RoleStudent,
		}
	}

	tests := []struct {
		name   string
		mutate func(*CreateUserRequest)
		errMsg string
	}{
		{"empty name", func(r *CreateUserRequest) { r.Name = "  " }, "name is required"},
		{"bad email", func(r *CreateUserRequest) { r.Email = "not-an-email" }, "valid address"},
		{"short password", func(r *CreateUserRequest) { r.Password = "short" }, "at least 8"},
		{"guest role", func(r *CreateUserRequest) { r.Role = auth.RoleGuest }, "invalid role"},
		{"unknown role", func(r *CreateUserRequest) { r.Role = "superuser" }, "invalid role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestUpdateUserRequest_RequiresAtLeastOneField(t *testing.T) {
	var req UpdateUserRequest
	assert.False(t, req.HasUpdates())
	assert.Error(t, req.Validate())

	name := "New Name"
	req.Name = &name
	assert.True(t, req.HasUpdates())
	assert.NoError(t, req.Validate())
}

func TestUpdateProfileRequest_ExcludesRoleAndActive(t *testing.T) {
	name := "New Name"
	req := UpdateProfileRequest{Name: &name}
	require.NoError(t, req.Validate())

	upd := req.AsUserUpdate()
	assert.Equal(t, &name, upd.Name)
	assert.Nil(t, upd.Role)
	assert.Nil(t, upd.Active)
	assert.Nil(t, upd.Email)
	assert.Nil(t, upd.Password)
}

func TestUser_Snapshot(t *testing.T) {
	u := User{
		ID:           "u-1",
		Name:         "Jordan Doe",
		Email:        "jordan@example.edu",
		PasswordHash: "$2a$10$abcdefg",
		Role:         auth.RoleAdmin,
		Active:       true,
	}
	snap := u.Snapshot()
	assert.Equal(t, "u-1", snap.ID)
	assert.Equal(t, auth.RoleAdmin, snap.Role)
	assert.True(t, snap.Active)
}
