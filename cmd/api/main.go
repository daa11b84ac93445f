package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/influmatch/backend/internal/config"
	"github.com/influmatch/backend/internal/db"
	"github.com/influmatch/backend/internal/events"
	apphttp "github.com/influmatch/backend/internal/http"
	"github.com/influmatch/backend/internal/http/handlers"
	"github.com/influmatch/backend/internal/repositories"
	"github.com/influmatch/backend/internal/services"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	advertiserRepo := repositories.NewAdvertiserProfileRepo(pool)
	influencerRepo := repositories.NewInfluencerRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	applicationRepo := repositories.NewApplicationRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	profileService := services.NewProfileService(userRepo, advertiserRepo, influencerRepo, auditRepo, log)
	campaignService := services.NewCampaignService(campaignRepo, applicationRepo, auditRepo, publisher, log)
	applicationService := services.NewApplicationService(applicationRepo, campaignRepo, influencerRepo, auditRepo, publisher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	userHandler := handlers.NewUserHandler(profileService, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, profileService, log)
	applicationHandler := handlers.NewApplicationHandler(applicationService, campaignService, profileService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.ErrorHandler(log),
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, userHandler, campaignHandler, applicationHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
