package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"caterapi/internal/auth"
	"caterapi/internal/cache"
	"caterapi/internal/config"
	"caterapi/internal/database"
	"caterapi/internal/database/migration"
	handlers "caterapi/internal/http/handler"
	"caterapi/internal/http/middleware"
	"caterapi/internal/otel"
	"caterapi/internal/repository/postgres"
	"caterapi/internal/service"
	"caterapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Redis backs the bearer-token profile cache and health reporting.
	redisClient := cache.NewClient(cfg.Redis)
	defer redisClient.Close()

	// Bearer tokens are verified against the external identity service, with
	// verified profiles cached in Redis.
	httpVerifier, err := auth.NewHTTPVerifier(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to initialize auth verifier: %v", err)
	}
	verifier := auth.NewCachedVerifier(httpVerifier, cache.NewTokenCache(redisClient, cfg.Auth.CacheTTL))

	// Initialize repositories
	orderRepo := postgres.NewOrderPostgres(db)
	appRepo := postgres.NewApplicationPostgres(db)
	fileRepo := postgres.NewFilePostgres(db)
	sessionRepo := postgres.NewSessionPostgres(db)
	uploadErrRepo := postgres.NewUploadErrorPostgres(db)
	webhookRepo := postgres.NewWebhookLogPostgres(db)
	auditRepo := postgres.NewAuditPostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	// Initialize services
	svcs := handlers.Services{
		Sessions:     service.NewSessionService(sessionRepo, fileRepo, uploadErrRepo, objStore, cfg.Session),
		Applications: service.NewApplicationService(appRepo, fileRepo, sessionRepo, auditRepo, objStore),
		Orders:       service.NewOrderService(orderRepo),
		UploadErrors: service.NewUploadErrorService(uploadErrRepo, auditRepo),
		Cleanup:      service.NewCleanupService(appRepo, uploadErrRepo, auditRepo, cfg.Cleanup),
		Monitoring: service.NewMonitoringService(
			appRepo, orderRepo, uploadErrRepo, sessionRepo, webhookRepo, auditRepo,
			db, cache.NewHealth(redisClient), objStore, cfg.Cleanup),
		Webhooks: service.NewWebhookService(orderRepo, webhookRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMW, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	authMW := middleware.NewAuth(verifier, userRepo)
	handlers.RegisterRoutes(app, db, authMW, svcs, cfg.Webhook.Secret)

	// Serve until interrupted, then drain in-flight requests.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
