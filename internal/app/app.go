package app

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"sgpulse/internal/config"
	"sgpulse/internal/dataprocessing"
	apierrors "sgpulse/internal/errors"
	"sgpulse/internal/infrastructure"
	custommw "sgpulse/internal/middleware"
	"sgpulse/internal/services"
	handlers "sgpulse/internal/transport/http"
)

const (
	Version = "v1.0.0"
	AppName = "SG Pulse - Singapore Job Market Analytics"
)

var (
	// BuildTime is set at compile time
	BuildTime = time.Now().Format(time.RFC3339)
	// BuildID is a unique identifier for this build
	BuildID = generateBuildID()
)

func generateBuildID() string {
	h := sha256.New()
	h.Write([]byte(Version))
	h.Write([]byte(time.Now().Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Metrics       *infrastructure.Metrics
	Store         *dataprocessing.Store
	JobService    *services.JobDataService
	HealthService *services.HealthService
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.String("source_csv", cfg.Data.SourceCSV))

	metrics := infrastructure.NewMetrics()

	pipeline := dataprocessing.NewPipeline(logger)
	store := dataprocessing.NewStore(pipeline, logger)
	jobService := services.NewJobDataService(store, cfg.Data.SourceCSV, metrics, logger)
	healthService := services.NewHealthService(Version, BuildTime, BuildID, jobService, logger)

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		Metrics:       metrics,
		Store:         store,
		JobService:    jobService,
		HealthService: healthService,
	}

	a.Router = a.setupRouter()
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return a, nil
}

// setupRouter builds the middleware chain and mounts all routes.
func (a *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Metrics(a.Metrics))
	r.Use(custommw.CORS(custommw.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		Logger:         a.Logger,
	}))
	if a.Config.Security.RateLimit.Enabled {
		r.Use(custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger, false)
	jobsHandler := handlers.NewJobsHandler(a.JobService, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(custommw.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		r.Mount("/jobs", jobsHandler.Routes())
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)
	})

	r.Handle("/metrics", a.Metrics.Handler())

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	if a.Config.Data.WebDir != "" {
		if info, err := os.Stat(a.Config.Data.WebDir); err == nil && info.IsDir() {
			fileServer := http.FileServer(http.Dir(a.Config.Data.WebDir))
			r.With(chimiddleware.Compress(5)).Handle("/*", fileServer)
		} else {
			a.Logger.Warn("web directory not found, static serving disabled",
				slog.String("web_dir", a.Config.Data.WebDir))
		}
	}

	return r
}

// LoadDataset runs the pipeline for the configured source. A load failure
// is fatal at startup: the dashboard has nothing to serve without data.
func (a *Application) LoadDataset(ctx context.Context) error {
	table, err := a.JobService.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", a.Config.Data.SourceCSV, err)
	}

	stats := table.Stats()
	a.Logger.Info("dataset loaded",
		slog.String("source", stats.Source),
		slog.Int("rows_parsed", stats.RowsParsed),
		slog.Int("rows_loaded", stats.RowsLoaded),
		slog.Int("invalid_ranges", stats.InvalidRanges),
		slog.Int("outliers_removed", stats.OutliersRemoved))
	return nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (a *Application) Run(ctx context.Context) error {
	if err := a.LoadDataset(ctx); err != nil {
		return err
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.Info("context cancelled, shutting down")
	}

	return a.Shutdown(context.Background())
}

// Shutdown drains in-flight requests within the configured timeout.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Server.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Warn("failed to close log file", slog.String("error", err.Error()))
	}

	a.Logger.Info("shutdown complete")
	return nil
}
