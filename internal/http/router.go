package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/influmatch/backend/internal/config"
	"github.com/influmatch/backend/internal/http/handlers"
	"github.com/influmatch/backend/internal/middleware"
	"github.com/influmatch/backend/internal/models"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	campaignHandler *handlers.CampaignHandler,
	applicationHandler *handlers.ApplicationHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Auth (public)
	api.Post("/auth/signup", authHandler.Signup)
	api.Post("/auth/login", authHandler.Login)

	// Meta (public)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/channel-types", metaHandler.GetChannelTypes)

	// Campaign browsing is public; applicants need to see open campaigns
	// before signing in.
	api.Get("/campaigns", campaignHandler.ListCampaigns)
	api.Get("/campaigns/:id", campaignHandler.GetCampaign)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// User + onboarding
	protected.Get("/me", userHandler.GetMe)
	protected.Post("/profiles/advertiser", middleware.RequireRole(models.RoleAdvertiser), userHandler.CreateAdvertiserProfile)
	protected.Post("/profiles/influencer", middleware.RequireRole(models.RoleInfluencer), userHandler.CreateInfluencerProfile)

	// Campaigns (mutations are advertiser-only)
	protected.Post("/campaigns", middleware.RequireRole(models.RoleAdvertiser), campaignHandler.CreateCampaign)
	protected.Patch("/campaigns/:id", middleware.RequireRole(models.RoleAdvertiser), campaignHandler.UpdateCampaign)
	protected.Get("/campaigns/:id/audit", middleware.RequireRole(models.RoleAdvertiser), campaignHandler.GetCampaignAudit)

	// Applications
	protected.Post("/applications", middleware.RequireRole(models.RoleInfluencer), applicationHandler.Apply)
	protected.Get("/applications", applicationHandler.ListApplications)
	protected.Patch("/applications/:id/status", middleware.RequireRole(models.RoleAdvertiser), applicationHandler.DecideApplication)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
