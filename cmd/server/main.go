package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/glowstories/glowstories-backend/internal/config"
	"github.com/glowstories/glowstories-backend/internal/database"
	"github.com/glowstories/glowstories-backend/internal/generation"
	"github.com/glowstories/glowstories-backend/internal/handlers"
	"github.com/glowstories/glowstories-backend/internal/logging"
	"github.com/glowstories/glowstories-backend/internal/middleware"
	"github.com/glowstories/glowstories-backend/internal/routes"
	"github.com/glowstories/glowstories-backend/internal/scheduler"
	"github.com/glowstories/glowstories-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const logRetention = 30 * 24 * time.Hour

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewFanoutHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, logRetention, cleanupDone)

	// Services
	trustService := services.NewTrustService(database.DB)
	authService := services.NewAuthService(database.DB, cfg, trustService)
	moderationService := services.NewModerationService(database.DB)
	tagService := services.NewTagService(database.DB)
	topicService := services.NewTopicService(database.DB)
	postService := services.NewPostService(database.DB, trustService, tagService, moderationService)
	commentService := services.NewCommentService(database.DB, moderationService)
	voteService := services.NewVoteService(database.DB)
	userService := services.NewUserService(database.DB, trustService)

	genClient := generation.NewClient(cfg.GenAPIURL, cfg.GenAPIKey, cfg.GenModel, cfg.GenTimeout)
	generationService := services.NewGenerationService(database.DB, genClient, postService, cfg.BatchDelay)

	sched, err := scheduler.New(database.DB, generationService, cfg.ScheduleEnabled, cfg.ScheduleCron)
	if err != nil {
		slog.Error("scheduler init failed", "error", err)
		os.Exit(1)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(database.DB)
	userHandler := handlers.NewUserHandler(userService, authService)
	postHandler := handlers.NewPostHandler(postService, voteService, tagService, moderationService)
	commentHandler := handlers.NewCommentHandler(commentService, voteService)
	topicHandler := handlers.NewTopicHandler(topicService, tagService)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	generationHandler := handlers.NewGenerationHandler(generationService, sched)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB,
		authHandler, healthHandler, userHandler, postHandler,
		commentHandler, topicHandler, moderationHandler, generationHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	sched.Stop()
	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
