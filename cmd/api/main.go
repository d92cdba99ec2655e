package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"smartsummary/docs"
	"smartsummary/internal/config"
	"smartsummary/internal/database"
	"smartsummary/internal/database/migration"
	"smartsummary/internal/export"
	handlers "smartsummary/internal/http/handler"
	"smartsummary/internal/http/middleware"
	"smartsummary/internal/logging"
	"smartsummary/internal/otel"
	"smartsummary/internal/repository/sqlstore"
	"smartsummary/internal/scheduler"
	"smartsummary/internal/service"
	"smartsummary/internal/storage"
	"smartsummary/internal/summarizer"
	"smartsummary/internal/ui"
)

const shutdownTimeout = 15 * time.Second

// @title Smart Article Summarizer API
// @version 1.0
// @description Summarizes pasted or uploaded text and exports the result as PDF or Word.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.Location())
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := otel.Init(ctx, cfg.Tracing, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	// Export metadata database (PostgreSQL or SQLite via database/sql)
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.Up(ctx, db, cfg.Database.Driver, logger); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// Object storage for rendered exports (local, MinIO or GCS)
	objStore, closeStore, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize object storage: %w", err)
	}
	defer closeStore()

	// Model backend, instrumented and rate limited
	backend, closeBackend, err := summarizer.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize summarizer: %w", err)
	}
	defer closeBackend()

	metrics, err := summarizer.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register summarizer metrics: %w", err)
	}
	client := summarizer.WithRateLimit(metrics.Wrap(backend), cfg.Summarizer.RateLimit, cfg.Summarizer.RateBurst)

	// Initialize repositories and services
	exportRepo := sqlstore.NewExportSQL(db)
	registry := export.NewRegistry(export.NewPDF(cfg.Export.PDFCompress), export.NewDOCX(""))
	exportSvc := service.NewExportService(registry, objStore, exportRepo, logger)
	summarySvc := service.NewSummaryService(client, cfg.Summarizer.Timeout, logger)

	page, err := ui.NewPage()
	if err != nil {
		return err
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "smartsummary",
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(logger))
	app.Use(promMiddleware.Handler())
	app.Use(middleware.NoStore())
	app.Use(middleware.Session(cfg.Export.TTL))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, handlers.Deps{
		DB:         db,
		Page:       page,
		Summaries:  summarySvc,
		Exports:    exportSvc,
		PresignTTL: cfg.Export.PresignTTL,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	janitor := scheduler.New(ctx, cfg.Export.JanitorSpec, cfg.Export.TTL, exportSvc, logger)
	if err := janitor.Start(); err != nil {
		return fmt.Errorf("start export janitor: %w", err)
	}

	addr := ":" + cfg.Port

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", addr, "backend", backend.Name(), "storage", cfg.Storage.Backend)
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := app.ShutdownWithContext(sctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown server: %w", err))
		}
		janitor.Stop(sctx)
		if err := shutdownTracer(sctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
