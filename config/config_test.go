package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAuthModeUnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    AuthMode
		expectError bool
	}{
		{"password", AuthModePassword, false},
		{"oidc", AuthModeOIDC, false},
		{"mock", AuthModeMock, false},
		{"PASSWORD", AuthModePassword, false},
		{"OIDC", AuthModeOIDC, false},
		{"oauth", "", true},
		{"", "", true},
		{"ldap", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got mode %q", tt.input, mode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModePassword {
		t.Errorf("expected default auth mode password, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("expected default session TTL 24h, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("expected default bcrypt cost 12, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default HTTP addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Host != "localhost" || cfg.Postgres.Port != 5432 {
		t.Errorf("unexpected default postgres config: %+v", cfg.Postgres)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("expected default redis URI localhost:6379, got %q", cfg.Redis.URI)
	}
	if cfg.Cache.CatalogTTL != 10*time.Minute {
		t.Errorf("expected default catalog TTL 10m, got %v", cfg.Cache.CatalogTTL)
	}
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "oidc")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("OIDC_DISCOVERY_URL", "https://sso.academy.test/.well-known/openid-configuration")
	t.Setenv("ADMIN_GROUP", "school-admins")
	t.Setenv("DB_NAME", "academy_test")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("APP_COOKIE_DOMAIN", "academy.test")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeOIDC {
		t.Errorf("expected auth mode oidc, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.SessionTTL != 2*time.Hour {
		t.Errorf("expected session TTL 2h, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.OIDC.DiscoveryURL != "https://sso.academy.test/.well-known/openid-configuration" {
		t.Errorf("unexpected discovery URL: %q", cfg.Auth.OIDC.DiscoveryURL)
	}
	if cfg.Auth.AdminGroup != "school-admins" {
		t.Errorf("expected admin group school-admins, got %q", cfg.Auth.AdminGroup)
	}
	if cfg.Postgres.Name != "academy_test" {
		t.Errorf("expected database academy_test, got %q", cfg.Postgres.Name)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("expected HTTP addr :9090, got %q", cfg.HTTP.Addr)
	}
	if cfg.HTTP.CookieDomain != "academy.test" {
		t.Errorf("expected cookie domain academy.test, got %q", cfg.HTTP.CookieDomain)
	}
}

func TestAuthConfigSanitize(t *testing.T) {
	cfg := AuthConfig{SessionTTL: -time.Hour, BcryptCost: 1}
	cfg.Sanitize()
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected session TTL guardrail 24h, got %v", cfg.SessionTTL)
	}
	if cfg.BcryptCost != 4 {
		t.Errorf("expected bcrypt cost clamped to 4, got %d", cfg.BcryptCost)
	}

	cfg = AuthConfig{SessionTTL: time.Hour, BcryptCost: 40}
	cfg.Sanitize()
	if cfg.BcryptCost != 31 {
		t.Errorf("expected bcrypt cost clamped to 31, got %d", cfg.BcryptCost)
	}
}

func TestHTTPConfigSanitize(t *testing.T) {
	cfg := HTTPConfig{CompressionLevel: 0}
	cfg.Sanitize()
	if cfg.CompressionLevel != 1 {
		t.Errorf("expected compression level clamped to 1, got %d", cfg.CompressionLevel)
	}

	cfg = HTTPConfig{CompressionLevel: 42}
	cfg.Sanitize()
	if cfg.CompressionLevel != 9 {
		t.Errorf("expected compression level clamped to 9, got %d", cfg.CompressionLevel)
	}
}

func TestHTTPConfigSanitizeCookieDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   string
	}{
		{"empty stays empty", "", ""},
		{"registrable domain kept", "academy.example.com", "academy.example.com"},
		{"normalized to lowercase", "Academy.Example.COM", "academy.example.com"},
		{"bare public suffix cleared", "com", ""},
		{"multi-label public suffix cleared", "co.uk", ""},
		{"leading dot public suffix cleared", ".com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := HTTPConfig{CompressionLevel: 6, CookieDomain: tt.domain}
			cfg.Sanitize()
			if cfg.CookieDomain != tt.want {
				t.Errorf("expected cookie domain %q, got %q", tt.want, cfg.CookieDomain)
			}
		})
	}
}

func TestDBConfigSanitize(t *testing.T) {
	cfg := DBConfig{MaxOpenConns: 0, MaxIdleConns: -1, ConnMaxLifetime: 0}
	cfg.Sanitize()
	if cfg.MaxOpenConns != 25 {
		t.Errorf("expected max open conns guardrail 25, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns != 5 {
		t.Errorf("expected max idle conns guardrail 5, got %d", cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("expected conn max lifetime guardrail 5m, got %v", cfg.ConnMaxLifetime)
	}

	cfg = DBConfig{MaxOpenConns: 4, MaxIdleConns: 10, ConnMaxLifetime: time.Minute}
	cfg.Sanitize()
	if cfg.MaxIdleConns != 4 {
		t.Errorf("expected idle conns clamped to open conns, got %d", cfg.MaxIdleConns)
	}
}

func TestCacheConfigSanitize(t *testing.T) {
	cfg := CacheConfig{CatalogTTL: 0}
	cfg.Sanitize()
	if cfg.CatalogTTL != 10*time.Minute {
		t.Errorf("expected catalog TTL guardrail 10m, got %v", cfg.CatalogTTL)
	}
}

func TestObservabilityMetricsSanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "   "}
	cfg.Sanitize()
	if cfg.Enabled {
		t.Error("expected metrics disabled when statsd address is blank")
	}
	if cfg.IsEnabled() {
		t.Error("expected IsEnabled to report false")
	}

	cfg = ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "127.0.0.1:8125"}
	cfg.Sanitize()
	if !cfg.IsEnabled() {
		t.Error("expected metrics enabled with an address")
	}
}

func TestObservabilityNotificationsSanitize(t *testing.T) {
	cfg := ObservabilityNotificationsConfig{
		Enabled: true,
		Slack:   SlackNotificationConfig{Enabled: true},
	}
	cfg.Sanitize()
	if cfg.Slack.Enabled {
		t.Error("expected slack disabled without a webhook URL")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected default timeout 5s, got %v", cfg.Timeout)
	}

	cfg = ObservabilityNotificationsConfig{
		Enabled: false,
		Slack: SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.com/services/test",
		},
	}
	cfg.Sanitize()
	if cfg.Slack.Enabled {
		t.Error("expected slack disabled when notifications are globally off")
	}

	cfg = ObservabilityNotificationsConfig{
		Enabled: true,
		Slack: SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.com/services/test",
		},
	}
	cfg.Sanitize()
	if !cfg.Slack.Enabled {
		t.Error("expected slack to stay enabled with a webhook URL")
	}
	if cfg.Slack.Username != defaultObservabilityName {
		t.Errorf("expected default slack username, got %q", cfg.Slack.Username)
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	var cfg AppConfig
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Error("expected dev mode via NODE_ENV")
	}

	t.Setenv("NODE_ENV", "production")
	cfg = AppConfig{}
	cfg.Sanitize()
	if cfg.IsDev {
		t.Error("expected production mode")
	}
}
