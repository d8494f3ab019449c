package bootstrap

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/edunexa/academy-api/config"
	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/data"
	"github.com/edunexa/academy-api/internal/observability/notify/slack"
	"github.com/edunexa/academy-api/internal/observability/statsd"
	"github.com/edunexa/academy-api/internal/security"
	"github.com/edunexa/academy-api/internal/service"
	"github.com/edunexa/academy-api/internal/service/inquirynotifier"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth                *service.AuthService
	Users               *service.UserService
	Branches            *service.BranchService
	Courses             *service.CourseService
	Faculty             *service.FacultyService
	Students            *service.StudentService
	OutstandingStudents *service.OutstandingStudentService
	Events              *service.EventService
	Testimonials        *service.TestimonialService
	Inquiries           *service.InquiryService

	// Catalog serves versioned public list responses; nil without Redis.
	Catalog *core.CatalogCache

	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink     *statsd.Client
	MetricsConfig   config.ObservabilityMetricsConfig
	InquiryNotifier *inquirynotifier.Service
	NotifierConfig  config.ObservabilityNotificationsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB                     *sql.DB
	Redis                  redis.UniversalClient
	UserRepo               *data.UserRepo
	BranchRepo             *data.BranchRepo
	CourseRepo             *data.CourseRepo
	FacultyRepo            *data.FacultyRepo
	StudentRepo            *data.StudentRepo
	OutstandingStudentRepo *data.OutstandingStudentRepo
	EventRepo              *data.EventRepo
	TestimonialRepo        *data.TestimonialRepo
	InquiryRepo            *data.InquiryRepo
	CacheRepo              *data.RedisCacheRepo
}

// buildObservability configures metrics and notification adapters.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  "academy",
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	inquiryNotifier := buildInquiryNotifier(obsLogger, cfg.Notifications)

	return ObservabilityContainer{
		MetricsSink:     metricsSink,
		MetricsConfig:   cfg.Metrics,
		InquiryNotifier: inquiryNotifier,
		NotifierConfig:  cfg.Notifications,
	}
}

func buildInquiryNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) *inquirynotifier.Service {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	if !cfg.Enabled {
		return inquirynotifier.NewService(inquirynotifier.Options{
			Logger: baseLogger.With("component", "inquiry_notifier"),
		})
	}

	sinks := make([]inquirynotifier.SinkRegistration, 0, 1)

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL:     cfg.Slack.WebhookURL,
			Channel:        cfg.Slack.Channel,
			Username:       cfg.Slack.Username,
			Timeout:        cfg.Timeout,
			RetryLimit:     cfg.RetryLimit,
			AdminURLPrefix: cfg.Slack.AdminURLPrefix,
		})
		if err != nil {
			baseLogger.Error("failed to initialise slack notifier", "error", err)
		} else {
			sinks = append(sinks, inquirynotifier.SinkRegistration{
				Name: "slack",
				Sink: client,
			})
		}
	}

	return inquirynotifier.NewService(inquirynotifier.Options{
		Logger: baseLogger.With("component", "inquiry_notifier"),
		Sinks:  sinks,
	})
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	repos := &serviceRepositories{
		DB:                     db,
		Redis:                  redisClient,
		UserRepo:               data.NewUserRepo(db),
		BranchRepo:             data.NewBranchRepo(db),
		CourseRepo:             data.NewCourseRepo(db),
		FacultyRepo:            data.NewFacultyRepo(db),
		StudentRepo:            data.NewStudentRepo(db),
		OutstandingStudentRepo: data.NewOutstandingStudentRepo(db),
		EventRepo:              data.NewEventRepo(db),
		TestimonialRepo:        data.NewTestimonialRepo(db),
		InquiryRepo:            data.NewInquiryRepo(db),
	}
	if redisClient != nil {
		repos.CacheRepo = data.NewRedisCacheRepo(redisClient)
	}
	return repos
}

func newCatalogCache(repos *serviceRepositories, cfg config.CacheConfig) *core.CatalogCache {
	if repos.CacheRepo == nil {
		return nil
	}
	cacheCfg := core.DefaultCatalogCacheConfig()
	if cfg.CatalogTTL > 0 {
		cacheCfg.TTL = cfg.CatalogTTL
	}
	return core.NewCatalogCache(repos.CacheRepo, cacheCfg)
}

// DomainServicesOptions groups inputs for wiring business services.
type DomainServicesOptions struct {
	Repos         *serviceRepositories
	Observability ObservabilityContainer
	Config        *config.AppConfig
	Logger        *slog.Logger
}

// buildDomainServices wires business services using repositories and observability adapters.
func buildDomainServices(opts *DomainServicesOptions) ServiceContainer {
	if opts == nil {
		return ServiceContainer{}
	}
	svcLogger := opts.Logger
	if svcLogger == nil {
		svcLogger = slog.Default()
	}

	appCfg := opts.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	catalog := newCatalogCache(opts.Repos, appCfg.Cache)

	authService := BuildAuthService(AuthConfig{
		Auth:        appCfg.Auth,
		Users:       opts.Repos.UserRepo,
		RedisClient: opts.Repos.Redis,
		Logger:      svcLogger,
	})

	userService := service.NewUserService(service.UserServiceOptions{
		Repo:   opts.Repos.UserRepo,
		Hasher: security.NewHasher(appCfg.Auth.BcryptCost),
	})

	inquiryService := service.NewInquiryService(service.InquiryServiceOptions{
		Repo:     opts.Repos.InquiryRepo,
		Notifier: opts.Observability.InquiryNotifier,
	})

	return ServiceContainer{
		Auth:     authService,
		Users:    userService,
		Branches: service.NewBranchService(service.BranchServiceOptions{Repo: opts.Repos.BranchRepo, Cache: catalog}),
		Courses:  service.NewCourseService(service.CourseServiceOptions{Repo: opts.Repos.CourseRepo, Cache: catalog}),
		Faculty:  service.NewFacultyService(service.FacultyServiceOptions{Repo: opts.Repos.FacultyRepo, Cache: catalog}),
		Students: service.NewStudentService(service.StudentServiceOptions{Repo: opts.Repos.StudentRepo, Cache: catalog}),
		OutstandingStudents: service.NewOutstandingStudentService(service.OutstandingStudentServiceOptions{
			Repo:  opts.Repos.OutstandingStudentRepo,
			Cache: catalog,
		}),
		Events: service.NewEventService(service.EventServiceOptions{Repo: opts.Repos.EventRepo, Cache: catalog}),
		Testimonials: service.NewTestimonialService(service.TestimonialServiceOptions{
			Repo:  opts.Repos.TestimonialRepo,
			Cache: catalog,
		}),
		Inquiries:     inquiryService,
		Catalog:       catalog,
		Observability: opts.Observability,
	}
}

// NewServices builds the full service container from runtime dependencies.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var obsCfg config.ObservabilityConfig
	if deps.Config != nil {
		obsCfg = deps.Config.Observability
	}
	observability := buildObservability(logger, obsCfg)
	repos := buildRepositories(deps.DB, deps.RedisClient)
	return buildDomainServices(&DomainServicesOptions{
		Repos:         repos,
		Observability: observability,
		Config:        deps.Config,
		Logger:        logger,
	})
}

// ServiceOrchestrationConfig contains configuration for running the server.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and manages its lifecycle.
// This function blocks until a shutdown signal is received.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	return waitForShutdown(shutdownConfig{
		httpServer:  server,
		metricsSink: cfg.Services.Observability.MetricsSink,
		logger:      logger,
	})
}
