package services

import (
	"context"
	"time"

	"github.com/influmatch/backend/internal/apperr"
	"github.com/influmatch/backend/internal/channelcheck"
	"github.com/influmatch/backend/internal/events"
	"github.com/influmatch/backend/internal/models"
	"go.uber.org/zap"
)

// PageFetcher loads a channel page and reports its metadata.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*channelcheck.PageInfo, error)
}

// ChannelService runs verification over registered influencer channels.
type ChannelService struct {
	influencerStore InfluencerStore
	fetcher         PageFetcher
	auditStore      AuditStore
	publisher       events.Publisher
	log             *zap.Logger
}

func NewChannelService(
	influencerStore InfluencerStore,
	fetcher PageFetcher,
	auditStore AuditStore,
	publisher events.Publisher,
	log *zap.Logger,
) *ChannelService {
	return &ChannelService{
		influencerStore: influencerStore,
		fetcher:         fetcher,
		auditStore:      auditStore,
		publisher:       publisher,
		log:             log,
	}
}

// VerifyPending checks each pending channel's URL and records the outcome.
// A reachable page with a title verifies the channel; an unreachable or
// titleless page fails it. Run periodically by the worker.
func (s *ChannelService) VerifyPending(ctx context.Context, limit int) (int, error) {
	channels, err := s.influencerStore.ListPendingChannels(ctx, limit)
	if err != nil {
		return 0, apperr.From(err)
	}

	verified := 0
	for _, ch := range channels {
		status := models.ChannelVerificationFailed
		var verifiedAt *time.Time

		info, err := s.fetcher.Fetch(ctx, ch.ChannelURL)
		if err != nil {
			s.log.Warn("channel page fetch failed",
				zap.String("channel_id", ch.ID.String()),
				zap.String("url", ch.ChannelURL),
				zap.Error(err))
		} else if info.DisplayName() != "" {
			status = models.ChannelVerificationVerified
			now := time.Now()
			verifiedAt = &now
		}

		if err := s.influencerStore.UpdateChannelVerification(ctx, ch.ID, status, verifiedAt); err != nil {
			s.log.Error("failed to update channel verification",
				zap.String("channel_id", ch.ID.String()), zap.Error(err))
			continue
		}

		_ = s.auditStore.Log(ctx, models.AuditLog{
			ActorType:  "system",
			Action:     "channel_verification_" + status,
			EntityType: "influencer_channel",
			EntityID:   &ch.ID,
			Meta:       map[string]any{"channel_type": ch.ChannelType, "url": ch.ChannelURL},
		})

		if status == models.ChannelVerificationVerified {
			verified++
			if s.publisher != nil {
				_ = s.publisher.Publish(ctx, events.StreamLifecycle, events.Event{
					Type: events.EventChannelVerified,
					Payload: map[string]any{
						"channel_id":   ch.ID.String(),
						"channel_type": ch.ChannelType,
					},
				})
			}
		}
	}
	return verified, nil
}
