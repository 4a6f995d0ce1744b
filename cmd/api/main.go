package main

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"doccenter/docs"
	"doccenter/internal/config"
	"doccenter/internal/database"
	handlers "doccenter/internal/http/handler"
	"doccenter/internal/http/middleware"
	"doccenter/internal/logging"
	"doccenter/internal/mail"
	"doccenter/internal/metrics"
	"doccenter/internal/otel"
	"doccenter/internal/repository/memory"
	"doccenter/internal/repository/postgres"
	"doccenter/internal/service"
	"doccenter/internal/storage"
)

// @title Document Center API
// @version 1.0
// @BasePath /
func main() {
	ctx := context.Background()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", cfg.Timezone, err)
	}
	lg := logging.Default(loc)

	shutdownTracing, err := otel.Init(ctx, lg)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	deps := service.Deps{
		Mailer:    mail.NewLogMailer(lg),
		Metrics:   m,
		Logger:    lg,
		Firm:      cfg.Firm,
		FirmUsers: service.DefaultFirmUsers,
		Location:  loc,
	}

	// Repositories: PostgreSQL when configured, otherwise in-process state.
	var db *sql.DB
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err = database.Open(ctx, cfg.Database, loc)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		deps.Documents = postgres.NewDocumentPostgres(db)
		deps.Clients = postgres.NewClientPostgres(db)
		deps.Activity = postgres.NewActivityPostgres(db)
		deps.Preferences = postgres.NewPreferencePostgres(db)
		deps.Templates = postgres.NewTemplatePostgres(db)
	case config.StoreMemory:
		deps.Documents = memory.NewDocumentStore()
		deps.Clients = memory.NewClientStore()
		deps.Activity = memory.NewActivityLog()
		deps.Preferences = memory.NewPreferences()
		deps.Templates = memory.NewTemplateStore()
	default:
		log.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	// Object storage: MinIO when configured, otherwise in-process.
	if cfg.MinIO.Enabled() {
		deps.Storage, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	} else {
		deps.Storage = storage.NewMemory("http://" + cfg.AppHost + "/files")
	}

	if cfg.SeedDemo {
		if err := service.Seed(ctx, deps); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	svc := handlers.Services{
		Documents:   service.NewDocumentService(deps),
		Clients:     service.NewClientService(deps),
		Activity:    service.NewActivityService(deps),
		Requests:    service.NewRequestService(deps),
		Templates:   service.NewTemplateService(deps),
		Preferences: service.NewPreferenceService(deps),
	}

	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Actor(cfg.Firm.DefaultActor))
	app.Use(otelfiber.Middleware())
	app.Use(httpMetrics.Handler())
	app.Use(middleware.Logger(lg))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, svc)
	if !cfg.MinIO.Enabled() {
		app.Get("/files", handlers.ServeStoredFile(deps.Storage))
	}

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

	lg.Info("server_starting", map[string]any{
		"port":         cfg.Port,
		"store_driver": cfg.StoreDriver,
		"object_store": objectStoreName(cfg.MinIO),
	})

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func objectStoreName(c config.MinIOConfig) string {
	if c.Enabled() {
		return "minio"
	}
	return "memory"
}
