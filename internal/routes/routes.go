package routes

import (
	"time"

	"github.com/glowstories/glowstories-backend/internal/config"
	"github.com/glowstories/glowstories-backend/internal/handlers"
	"github.com/glowstories/glowstories-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	postHandler *handlers.PostHandler,
	commentHandler *handlers.CommentHandler,
	topicHandler *handlers.TopicHandler,
	moderationHandler *handlers.ModerationHandler,
	generationHandler *handlers.GenerationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth routes are public but carry a stricter limit: 10 req/min per IP.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes get JWT middleware individually so the public
	// surface stays free of it.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Public read surface
	api.Get("/posts", postHandler.Feed)
	api.Get("/posts/:id", postHandler.Get)
	api.Get("/posts/:id/comments", commentHandler.ListForPost)
	api.Get("/topics", topicHandler.List)
	api.Get("/topics/:slug", topicHandler.GetBySlug)
	api.Get("/tags", topicHandler.ListTags)
	api.Get("/users/:id", userHandler.Profile)

	// Posts and comments (protected)
	api.Post("/posts", middleware.JWTProtected(cfg), postHandler.Create)
	api.Put("/posts/:id", middleware.JWTProtected(cfg), postHandler.Update)
	api.Delete("/posts/:id", middleware.JWTProtected(cfg), postHandler.Delete)
	api.Post("/posts/:id/vote", middleware.JWTProtected(cfg), postHandler.Vote)
	api.Post("/posts/:id/report", middleware.JWTProtected(cfg), postHandler.Report)
	api.Post("/posts/:id/comments", middleware.JWTProtected(cfg), commentHandler.Create)
	api.Delete("/comments/:id", middleware.JWTProtected(cfg), commentHandler.Delete)
	api.Post("/comments/:id/vote", middleware.JWTProtected(cfg), commentHandler.Vote)

	// Profile (protected)
	api.Get("/me", middleware.JWTProtected(cfg), userHandler.Me)
	api.Get("/me/posts", middleware.JWTProtected(cfg), postHandler.ListMine)
	api.Put("/me", middleware.JWTProtected(cfg), userHandler.UpdateMe)
	api.Post("/me/contributor-application", middleware.JWTProtected(cfg), userHandler.ApplyAsContributor)

	// Admin panel (protected + admin role required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db))
	admin.Get("/users", userHandler.AdminList)
	admin.Put("/users/:id", userHandler.AdminUpdate)
	admin.Delete("/users/:id", userHandler.AdminDelete)

	admin.Post("/topics", topicHandler.Create)
	admin.Delete("/tags/:id", topicHandler.DeleteTag)

	admin.Put("/posts/:id/moderate", moderationHandler.ModeratePost)
	admin.Put("/comments/:id/moderate", moderationHandler.ModerateComment)
	admin.Get("/moderation/flagged", moderationHandler.Flagged)
	admin.Get("/moderation/stats", moderationHandler.Stats)

	admin.Post("/generate", generationHandler.GeneratePost)
	admin.Post("/generate/batch", generationHandler.GenerateBatch)
	admin.Post("/generate/custom", generationHandler.GenerateCustom)
	admin.Get("/generate/schedule", generationHandler.GetSchedule)
	admin.Put("/generate/schedule", generationHandler.UpdateSchedule)
}
