package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/services"
)

const limiterSweepInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", handlers.Version,
		"addr", cfg.Address(),
		"data_file", cfg.Data.File,
		"sheet", cfg.Data.Sheet,
	)

	tp, err := observability.NewTracerProvider(cfg.Tracing, os.Stderr)
	if err != nil {
		return err
	}

	analytics, err := loadAnalytics(ctx, cfg, logger)
	if err != nil {
		return err
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Security)
	go rateLimiter.Run(ctx, limiterSweepInterval)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, analytics, rateLimiter, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)
	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("flushing traces")
		return tp.Shutdown(ctx)
	})

	if err := gracefulServer.ListenAndServe(ctx); err != nil {
		return err
	}

	logger.Info("application stopped gracefully")
	return nil
}

// loadAnalytics reads the workbook once. Any load failure is fatal.
func loadAnalytics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*services.Analytics, error) {
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := dataset.NewCache(layout, logger).Get(ctx, cfg.Data.File)
	if err != nil {
		var loadErr *dataset.LoadError
		if errors.As(err, &loadErr) {
			logger.Error("failed to load workbook",
				"source", loadErr.Source,
				"kind", loadErr.Kind.String(),
				"row", loadErr.Row,
				"column", loadErr.Column,
				"error", loadErr.Err,
			)
		}
		return nil, fmt.Errorf("load workbook: %w", err)
	}
	observability.DatasetLoadSeconds.Set(time.Since(start).Seconds())

	return services.NewAnalytics(ds, logger), nil
}

func newHandler(cfg *config.Config, analytics *services.Analytics, rateLimiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	templateHandlers := &server.TemplateHandlers{
		Dashboard: handlers.DashboardPage(analytics, logger),
	}
	srv := server.NewServer(analytics, logger, templateHandlers)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
		middleware.Metrics(),
	)

	return middlewareChain(srv)
}
