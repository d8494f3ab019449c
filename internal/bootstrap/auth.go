package bootstrap

import (
	"log/slog"

	"github.com/edunexa/academy-api/config"
	"github.com/edunexa/academy-api/internal/adapters/authroles"
	"github.com/edunexa/academy-api/internal/adapters/devauth"
	"github.com/edunexa/academy-api/internal/adapters/oidc"
	redisadapter "github.com/edunexa/academy-api/internal/adapters/redis"
	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/security"
	"github.com/edunexa/academy-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	Users       core.UserRepository
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Password login is always available; oidc and mock modes additionally wire an
// SSO provider. Returns nil when required dependencies are missing.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}
	if cfg.Users == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: user repository not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	// Sessions live in Redis regardless of how the login happened
	base := service.AuthServiceOptions{
		Users:    cfg.Users,
		Sessions: redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:"),
		Hasher:   security.NewHasher(cfg.Auth.BcryptCost),
		Roles: authroles.StaticRoleMapper{
			AdminGroup:   cfg.Auth.AdminGroup,
			FacultyGroup: cfg.Auth.FacultyGroup,
			StudentGroup: cfg.Auth.StudentGroup,
		},
		SessionTTL: cfg.Auth.SessionTTL,
	}

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthService(cfg, base)

	case config.AuthModeOIDC:
		return buildOIDCAuthService(cfg, base)

	default:
		// Password mode needs no external identity provider.
		return service.NewAuthService(base)
	}
}

func buildDevAuthService(cfg AuthConfig, base service.AuthServiceOptions) *service.AuthService {
	// Explicitly enabled dev auth mode; build a local provider.
	prov, err := devauth.NewProvider(devauth.Config{
		UserID: cfg.Auth.DevAuth.UserID,
		Email:  cfg.Auth.DevAuth.Email,
		Groups: cfg.Auth.DevAuth.Groups,
		// session duration defaults inside provider
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		}
		return nil
	}

	base.Provider = prov
	return service.NewAuthService(base)
}

func buildOIDCAuthService(cfg AuthConfig, base service.AuthServiceOptions) *service.AuthService {
	// Only enable when fully configured
	oc := cfg.Auth.OIDC
	if oc.DiscoveryURL == "" || oc.ClientID == "" || oc.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOIDC selected but required config missing; auth disabled",
				"discovery_url_empty", oc.DiscoveryURL == "",
				"client_id_empty", oc.ClientID == "",
				"client_secret_empty", oc.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oc.ClientID,
		ClientSecret: oc.ClientSecret,
		RedirectURL:  oc.RedirectURL,
		Scope:        oc.Scope,
		DiscoveryURL: oc.DiscoveryURL,
		LogoutURL:    oc.LogoutURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		}
		return nil
	}

	base.Provider = prov
	return service.NewAuthService(base)
}
