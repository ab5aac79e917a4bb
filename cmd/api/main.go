package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"docqa/docs"
	"docqa/internal/config"
	"docqa/internal/database"
	"docqa/internal/database/migration"
	"docqa/internal/extract"
	handlers "docqa/internal/http/handler"
	"docqa/internal/http/middleware"
	"docqa/internal/llm"
	"docqa/internal/llm/gemini"
	"docqa/internal/logging"
	"docqa/internal/otel"
	"docqa/internal/repository/memory"
	"docqa/internal/repository/postgres"
	"docqa/internal/service"
	"docqa/internal/storage"
	"docqa/internal/web"
)

const shutdownTimeout = 10 * time.Second

// @title Document QA API
// @version 1.0
// @description Upload a PDF or text document and ask questions answered from its text.
// @BasePath /
func main() {
	cfg := config.Load()
	logger, loc := logging.Setup(cfg.LogTimezone)

	if err := run(cfg, logger, loc); err != nil {
		logger.Error("server_exit", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, logger *slog.Logger, loc *time.Location) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracing_shutdown_failed", "error", err.Error())
		}
	}()

	completer, closeCompleter, err := newCompleter(ctx, cfg.Gemini, logger)
	if err != nil {
		return err
	}
	defer closeCompleter()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []service.Option{service.WithLogger(logger)}
	health := handlers.HealthChecker{CompletionConfigured: cfg.Gemini.APIKey != ""}

	if archive := newArchive(ctx, cfg.MinIO, logger); archive != nil {
		opts = append(opts, service.WithArchive(archive))
		health.Archive = archive
	}

	if db := newAuditDB(ctx, cfg.Database, logger); db != nil {
		defer db.Close()
		audit := postgres.NewAskEventPostgres(db.DB)
		opts = append(opts, service.WithAuditLog(audit))
		health.DB = db.DB
		health.AskStats = audit
	}

	var promMiddleware *middleware.PrometheusMiddleware
	if cfg.MetricsEnabled {
		metrics, err := service.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("register service metrics: %w", err)
		}
		opts = append(opts, service.WithMetrics(metrics))

		promMiddleware, err = middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			return fmt.Errorf("register http metrics: %w", err)
		}
	}

	// Documents live for the lifetime of this process only.
	docRepo := memory.NewDocumentMemory()
	docSvc := service.NewDocumentService(docRepo, extract.New(), completer, opts...)

	app := fiber.New(fiber.Config{
		AppName:               "docqa",
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.BodyLimitBytes(),
		DisableStartupMessage: true,
	})

	app.Use(fiberrecover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	if promMiddleware != nil {
		app.Use(promMiddleware.Handler())
	}

	routes := handlers.Routes{Documents: docSvc, Health: health}
	if cfg.MetricsEnabled {
		routes.Metrics = reg
	}
	handlers.RegisterRoutes(app, routes)

	index, err := web.Handler(cfg.PublicAPIURL)
	if err != nil {
		return err
	}
	app.Get("/", index)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_started", "addr", ":"+cfg.Port, "model", cfg.Gemini.Model)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newCompleter returns the Gemini client, or a completer that fails every call when no API key
// is configured so the rest of the service still starts.
func newCompleter(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (llm.Completer, func(), error) {
	if cfg.APIKey == "" {
		logger.Warn("completion_disabled", "reason", "GEMINI_API_KEY is not set")
		return llm.Unconfigured{}, func() {}, nil
	}
	client, err := gemini.New(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("init gemini: %w", err)
	}
	return client, func() {
		if err := client.Close(); err != nil {
			logger.Warn("gemini_close_failed", "error", err.Error())
		}
	}, nil
}

// newArchive connects the optional upload archive. Failures disable the archive.
func newArchive(ctx context.Context, cfg config.MinIOConfig, logger *slog.Logger) storage.Storage {
	if !cfg.Enabled() {
		return nil
	}
	s, err := storage.NewMinIO(ctx, cfg)
	if err != nil {
		logger.Warn("archive_disabled", "error", err.Error())
		return nil
	}
	logger.Info("archive_enabled", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return s
}

// newAuditDB connects and migrates the optional ask audit database. Failures disable the audit log.
func newAuditDB(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) *database.DB {
	if !cfg.Enabled() {
		return nil
	}
	db, err := database.NewPostgres(ctx, cfg)
	if err != nil {
		logger.Warn("audit_log_disabled", "error", err.Error())
		return nil
	}
	if err := migration.EnsureMigrated(ctx, db.DB, logger); err != nil {
		logger.Warn("audit_log_disabled", "error", fmt.Sprintf("migrate: %v", err))
		_ = db.Close()
		return nil
	}
	logger.Info("audit_log_enabled", "host", cfg.Host, "database", cfg.Name)
	return db
}
