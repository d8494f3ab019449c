package service

import (
	"context"
	"fmt"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
	"github.com/edunexa/academy-api/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Repo   core.UserRepository
	Hasher ports.PasswordHasher
}

// UserService orchestrates account administration. Plaintext passwords are
// hashed here so they never reach the data layer.
type UserService struct {
	repo   core.UserRepository
	hasher ports.PasswordHasher
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Repo == nil {
		panic("user service requires a repository")
	}
	if opts.Hasher == nil {
		panic("user service requires a password hasher")
	}
	return &UserService{repo: opts.Repo, hasher: opts.Hasher}
}

// Create validates the request, hashes the password, and persists the account.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	req.Password = ""
	return s.repo.Create(ctx, core.CreateUserParams{Req: req, PasswordHash: hash})
}

// GetByID retrieves an account by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns accounts matching the options.
func (s *UserService) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	return s.repo.List(ctx, opts)
}

// Update validates the request and persists the changes, hashing the password
// when the caller rotates it.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	params := core.UpdateUserParams{Req: req}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		params.PasswordHash = &hash
		params.Req.Password = nil
	}
	return s.repo.Update(ctx, id, params)
}

// Delete removes an account. Deleting an account does not revoke its live
// sessions; those age out at their expiry.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
