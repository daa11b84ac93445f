package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/influmatch/backend/internal/models"
	"github.com/influmatch/backend/internal/repositories"
)

// Store interfaces consumed by the services. The concrete implementations
// live in internal/repositories; tests substitute in-memory fakes.

type CampaignStore interface {
	Create(ctx context.Context, c *models.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	GetByIDWithAdvertiser(ctx context.Context, id uuid.UUID) (*models.CampaignWithAdvertiser, error)
	Update(ctx context.Context, c *models.Campaign) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, f repositories.CampaignFilter) ([]models.CampaignWithAdvertiser, error)
	ListRecruitingEndedBefore(ctx context.Context, date string, limit int) ([]models.Campaign, error)
	ListClosedBefore(ctx context.Context, cutoff string, limit int) ([]models.Campaign, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	GetByCampaignAndInfluencer(ctx context.Context, campaignID, influencerProfileID uuid.UUID) (*models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CompleteSelectedByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error)
	List(ctx context.Context, f repositories.ApplicationFilter) ([]models.ApplicationWithCampaign, error)
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AdvertiserProfileStore interface {
	Create(ctx context.Context, p *models.AdvertiserProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdvertiserProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AdvertiserProfile, error)
}

type InfluencerStore interface {
	CreateWithChannels(ctx context.Context, p *models.InfluencerProfile, channels []models.InfluencerChannel) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InfluencerProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.InfluencerProfile, error)
	ListChannels(ctx context.Context, profileID uuid.UUID) ([]models.InfluencerChannel, error)
	ListPendingChannels(ctx context.Context, limit int) ([]models.InfluencerChannel, error)
	UpdateChannelVerification(ctx context.Context, channelID uuid.UUID, status string, verifiedAt *time.Time) error
}

type AuditStore interface {
	Log(ctx context.Context, entry models.AuditLog) error
	GetByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, error)
}
