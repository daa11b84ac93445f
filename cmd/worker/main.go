package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/influmatch/backend/internal/channelcheck"
	"github.com/influmatch/backend/internal/config"
	"github.com/influmatch/backend/internal/db"
	"github.com/influmatch/backend/internal/events"
	"github.com/influmatch/backend/internal/repositories"
	"github.com/influmatch/backend/internal/services"
)

const channelVerifyBatchSize = 50

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repos
	campaignRepo := repositories.NewCampaignRepo(pool)
	applicationRepo := repositories.NewApplicationRepo(pool)
	influencerRepo := repositories.NewInfluencerRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Services
	publisher := events.NewRedisPublisher(rdb, log)
	campaignService := services.NewCampaignService(campaignRepo, applicationRepo, auditRepo, publisher, log)
	checker := channelcheck.NewChecker(cfg.ChannelFetchTimeoutMS, cfg.ChannelFetchMaxRetries, log)
	channelService := services.NewChannelService(influencerRepo, checker, auditRepo, publisher, log)

	log.Info("worker started")

	// Run jobs on tickers
	closeTicker := time.NewTicker(cfg.CampaignCloseInterval)
	completeTicker := time.NewTicker(cfg.CampaignCloseInterval)
	verifyTicker := time.NewTicker(cfg.ChannelVerifyInterval)
	defer closeTicker.Stop()
	defer completeTicker.Stop()
	defer verifyTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-closeTicker.C:
			runCampaignClose(ctx, campaignService, log)
		case <-completeTicker.C:
			runCampaignComplete(ctx, campaignService, cfg, log)
		case <-verifyTicker.C:
			runChannelVerification(ctx, channelService, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

// runCampaignClose closes recruiting campaigns whose recruitment end date has
// passed.
func runCampaignClose(ctx context.Context, campaignService *services.CampaignService, log *zap.Logger) {
	n, err := campaignService.CloseExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Error("failed to close expired campaigns", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("closed expired campaigns", zap.Int("count", n))
	}
}

// runCampaignComplete finishes closed campaigns that have sat past the
// completion window, carrying their selected applications along.
func runCampaignComplete(ctx context.Context, campaignService *services.CampaignService, cfg *config.Config, log *zap.Logger) {
	cutoff := time.Now().UTC().Add(-cfg.CampaignCompleteAfter)
	n, err := campaignService.CompleteStale(ctx, cutoff)
	if err != nil {
		log.Error("failed to complete stale campaigns", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("completed stale campaigns", zap.Int("count", n))
	}
}

func runChannelVerification(ctx context.Context, channelService *services.ChannelService, log *zap.Logger) {
	n, err := channelService.VerifyPending(ctx, channelVerifyBatchSize)
	if err != nil {
		log.Error("channel verification run failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("verified channels", zap.Int("count", n))
	}
}
