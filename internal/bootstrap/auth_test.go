package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/edunexa/academy-api/config"
	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/domain/model"
)

// emptyUserRepo satisfies core.UserRepository without any backing storage.
type emptyUserRepo struct{}

func (emptyUserRepo) Create(_ context.Context, _ core.CreateUserParams) (*model.User, error) {
	return nil, core.ErrUserNotFound
}

func (emptyUserRepo) GetByID(_ context.Context, _ string) (*model.User, error) {
	return nil, core.ErrUserNotFound
}

func (emptyUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, core.ErrUserNotFound
}

func (emptyUserRepo) List(_ context.Context, _ model.UsersListOptions) ([]*model.User, error) {
	return nil, nil
}

func (emptyUserRepo) Update(_ context.Context, _ string, _ core.UpdateUserParams) (*model.User, error) {
	return nil, core.ErrUserNotFound
}

func (emptyUserRepo) Delete(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func testRedisClient() redis.UniversalClient {
	// The client does not dial until first use, so construction alone is safe
	// in unit tests.
	return redis.NewClient(&redis.Options{Addr: "localhost:6379"})
}

func TestBuildAuthServiceReturnsNilWithoutRedis(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		auth config.AuthConfig
	}{
		{
			name: "password mode",
			auth: config.AuthConfig{
				Mode:       config.AuthModePassword,
				AdminGroup: "academy-admins",
			},
		},
		{
			name: "dev auth mode",
			auth: config.AuthConfig{
				Mode:       config.AuthModeMock,
				AdminGroup: "academy-admins",
				DevAuth: config.DevAuthConfig{
					UserID: "dev",
					Email:  "dev@example.com",
					Groups: []string{"academy-admins"},
				},
			},
		},
		{
			name: "oidc mode",
			auth: config.AuthConfig{
				Mode:       config.AuthModeOIDC,
				AdminGroup: "academy-admins",
				OIDC: config.OIDCConfig{
					ClientID:     "client-id",
					ClientSecret: "client-secret",
					DiscoveryURL: "https://issuer.example.com",
					RedirectURL:  "https://app.example.com/auth/callback",
					Scope:        "openid",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AuthConfig{
				Auth:        tt.auth,
				Users:       emptyUserRepo{},
				RedisClient: nil,
				Logger:      logger,
			}

			if svc := BuildAuthService(cfg); svc != nil {
				t.Fatalf("BuildAuthService() = %v, want nil", svc)
			}
		})
	}
}

func TestBuildAuthServiceReturnsNilWithoutUsers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := testRedisClient()
	defer client.Close()

	cfg := AuthConfig{
		Auth:        config.AuthConfig{Mode: config.AuthModePassword},
		Users:       nil,
		RedisClient: client,
		Logger:      logger,
	}

	if svc := BuildAuthService(cfg); svc != nil {
		t.Fatalf("BuildAuthService() = %v, want nil", svc)
	}
}

func TestBuildAuthServicePasswordMode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := testRedisClient()
	defer client.Close()

	cfg := AuthConfig{
		Auth: config.AuthConfig{
			Mode:       config.AuthModePassword,
			BcryptCost: 4,
		},
		Users:       emptyUserRepo{},
		RedisClient: client,
		Logger:      logger,
	}

	if svc := BuildAuthService(cfg); svc == nil {
		t.Fatal("BuildAuthService() = nil, want service")
	}
}

func TestBuildAuthServiceMockMode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := testRedisClient()
	defer client.Close()

	cfg := AuthConfig{
		Auth: config.AuthConfig{
			Mode: config.AuthModeMock,
			DevAuth: config.DevAuthConfig{
				UserID: "dev",
				Email:  "dev@example.com",
				Groups: []string{"academy-admins"},
			},
		},
		Users:       emptyUserRepo{},
		RedisClient: client,
		Logger:      logger,
	}

	if svc := BuildAuthService(cfg); svc == nil {
		t.Fatal("BuildAuthService() = nil, want service")
	}
}

func TestBuildAuthServiceOIDCModeRequiresDiscoveryURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := testRedisClient()
	defer client.Close()

	cfg := AuthConfig{
		Auth: config.AuthConfig{
			Mode: config.AuthModeOIDC,
			OIDC: config.OIDCConfig{
				ClientID:     "client-id",
				ClientSecret: "client-secret",
				RedirectURL:  "https://app.example.com/auth/callback",
			},
		},
		Users:       emptyUserRepo{},
		RedisClient: client,
		Logger:      logger,
	}

	if svc := BuildAuthService(cfg); svc != nil {
		t.Fatalf("BuildAuthService() = %v, want nil", svc)
	}
}
