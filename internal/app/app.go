package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/wherehaus/addressbook/internal/config"
	handler "github.com/wherehaus/addressbook/internal/handler/http"
	"github.com/wherehaus/addressbook/internal/repository/sqlite"
	"github.com/wherehaus/addressbook/internal/service"
	"github.com/wherehaus/addressbook/pkg/database"
	"github.com/wherehaus/addressbook/pkg/health"
	"github.com/wherehaus/addressbook/pkg/middleware"
	"github.com/wherehaus/addressbook/pkg/tracing"
)

// App wires together all dependencies and runs the address service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	db             *sql.DB
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "addressbook",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Open the SQLite store and apply schema migrations.
	db, err := sqlite.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("open address store: %w", err)
	}
	logger.Info("opened address store",
		slog.String("path", cfg.DatabasePath),
	)
	database.RegisterDBMetrics(db, "addressbook")

	// Build the dependency graph.
	addressRepo := sqlite.NewAddressRepository(db)
	addressService := service.NewAddressService(addressRepo, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("sqlite", func(ctx context.Context) error {
		return db.PingContext(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(addressService, healthHandler, logger, middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:    cfg.Environment,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. SQLite handle
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.db.Close(); err != nil {
		a.logger.Error("database close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
