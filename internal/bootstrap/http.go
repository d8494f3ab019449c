package bootstrap

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/netutil"

	"github.com/edunexa/academy-api/config"
	httpx "github.com/edunexa/academy-api/internal/http"
	"github.com/edunexa/academy-api/internal/observability/statsd"
)

// shutdownWaitTimeout is the maximum time to wait for the server to stop gracefully.
const shutdownWaitTimeout = 15 * time.Second

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Build router services
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Auth:                cfg.Services.Auth,
		Users:               cfg.Services.Users,
		Branches:            cfg.Services.Branches,
		Courses:             cfg.Services.Courses,
		Faculty:             cfg.Services.Faculty,
		Students:            cfg.Services.Students,
		OutstandingStudents: cfg.Services.OutstandingStudents,
		Events:              cfg.Services.Events,
		Testimonials:        cfg.Services.Testimonials,
		Inquiries:           cfg.Services.Inquiries,
		Catalog:             cfg.Services.Catalog,
		CookieDomain:        appCfg.HTTP.CookieDomain,
		Logger:              logger,
	}
	// Assign only when present; a nil *statsd.Client stored in the interface
	// would defeat the sink == nil checks downstream.
	if sink := cfg.Services.Observability.MetricsSink; sink != nil {
		services.Metrics = sink
	}

	// Build handler with middleware
	handler := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Services: services,
		HTTP:     appCfg.HTTP,
		Metrics:  cfg.Services.Observability.MetricsSink,
	})

	// Start server (logs "starting HTTP server" internally)
	server := startServer(logger, handler, appCfg.HTTP)

	return server
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
	Metrics  *statsd.Client
}

func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	router := httpx.NewRouter(cfg.Services)

	// Apply compression middleware first (innermost) so logging captures compressed sizes
	// Order: Recover -> Logging -> RequestMetrics -> Compression -> Router
	h := router
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel})(h)
	}

	if cfg.Metrics != nil {
		h = httpx.RequestMetrics(cfg.Metrics)(h)
	}

	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h
}

func startServer(logger *slog.Logger, handler http.Handler, httpCfg config.HTTPConfig) *http.Server {
	addr := httpCfg.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Error("HTTP listen failed", "addr", addr, "error", err)
			return
		}
		if httpCfg.MaxConns > 0 {
			logger.Info("HTTP connection limit enabled", "max_conns", httpCfg.MaxConns)
			ln = netutil.LimitListener(ln, httpCfg.MaxConns)
		}

		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	httpServer  *http.Server
	metricsSink *statsd.Client
	logger      *slog.Logger
}

// waitForShutdown blocks until a shutdown signal arrives, then stops the server.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	cfg.logger.Info("shutting down services...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()

	err := ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  cfg.httpServer,
		Logger:  cfg.logger,
	})

	if cfg.metricsSink != nil {
		if closeErr := cfg.metricsSink.Close(); closeErr != nil {
			cfg.logger.Warn("failed to close metrics sink", "error", closeErr)
		}
	}

	return err
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(cfg.Context, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
