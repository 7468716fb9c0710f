package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"registrydash/internal/config"
	apierrors "registrydash/internal/errors"
	"registrydash/internal/infrastructure"
	customMiddleware "registrydash/internal/middleware"
	"registrydash/internal/services"
	handlers "registrydash/internal/transport/http"
	"registrydash/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.RegistryMetrics
	Dashboard     *services.DashboardService
	HealthService *services.HealthService
}

// NewApplication wires telemetry, loads the registry and builds the router.
// A registry that cannot be loaded aborts start-up with a classified
// *apierrors.AppError.
func NewApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.InfoContext(ctx, "Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("data_file", cfg.Data.File))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateRegistryMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry metrics: %w", err)
	}

	dashboard, err := services.LoadDashboardService(ctx, cfg.Data, logger,
		services.WithTracer(otelProviders.Tracer),
		services.WithMetrics(metrics),
	)
	if err != nil {
		_ = otelProviders.Shutdown(ctx)
		return nil, apierrors.ClassifyLoadError(cfg.Data.File, err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		Dashboard:     dashboard,
		HealthService: services.NewHealthService(contracts.Version, dashboard, logger),
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter builds the middleware chain and mounts the API
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, isDevelopmentMode())

	// RequestID, RealIP, OTel, logger, error recovery, headers, CORS, rate limit
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(apierrors.NewErrorMiddleware(errorHandler, a.Logger).Handler)
	r.Use(customMiddleware.DefaultSecureHeaders().Handler)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	validation := customMiddleware.NewValidationMiddleware(a.Logger, errorHandler, 0)

	r.Route(config.APIBasePath, func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
		r.Use(customMiddleware.ContentTypeValidator("application/json"))
		r.Use(validation.ValidateRequest)

		handlers.NewHealthHandler(a.HealthService, a.Logger).Register(r)
		handlers.NewDashboardHandler(a.Dashboard, a.Logger, errorHandler).Register(r)
	})

	r.Handle(config.MetricsEndpoint, handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP))

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Serve accepts connections on l until Stop is called. It returns nil after
// a graceful shutdown.
func (a *Application) Serve(l net.Listener) error {
	a.Logger.Info("Application started successfully",
		slog.String("address", l.Addr().String()),
		slog.Int("records", a.Dashboard.Status().Rows))

	if err := a.Server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run serves on the configured port until ctx is cancelled or the process
// receives SIGINT or SIGTERM.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Serve(l)
	})
	g.Go(func() error {
		<-gctx.Done()
		// The parent context is already done; shutdown gets its own deadline.
		return a.Stop(context.WithoutCancel(ctx))
	})

	return g.Wait()
}

// isDevelopmentMode reports whether problem responses may carry stack traces
func isDevelopmentMode() bool {
	return os.Getenv("ENVIRONMENT") == "development" || os.Getenv("GO_ENV") == "development"
}
