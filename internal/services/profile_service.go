package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/influmatch/backend/internal/apperr"
	"github.com/influmatch/backend/internal/models"
	"github.com/influmatch/backend/internal/repositories"
	"github.com/influmatch/backend/internal/validation"
	"go.uber.org/zap"
)

type ProfileService struct {
	userStore       UserStore
	advertiserStore AdvertiserProfileStore
	influencerStore InfluencerStore
	auditStore      AuditStore
	log             *zap.Logger
}

func NewProfileService(
	userStore UserStore,
	advertiserStore AdvertiserProfileStore,
	influencerStore InfluencerStore,
	auditStore AuditStore,
	log *zap.Logger,
) *ProfileService {
	return &ProfileService{
		userStore:       userStore,
		advertiserStore: advertiserStore,
		influencerStore: influencerStore,
		auditStore:      auditStore,
		log:             log,
	}
}

type AdvertiserOnboardingInput struct {
	CompanyName                string
	Location                   *string
	Category                   *string
	BusinessRegistrationNumber string
}

func (s *ProfileService) CreateAdvertiserProfile(ctx context.Context, userID uuid.UUID, input AdvertiserOnboardingInput) (*models.AdvertiserProfile, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return nil, apperr.From(err)
	}
	if user.Role != models.RoleAdvertiser {
		return nil, apperr.New(apperr.CodeForbidden, "only advertiser accounts can create an advertiser profile")
	}

	profile := &models.AdvertiserProfile{
		UserID:                     userID,
		CompanyName:                input.CompanyName,
		Location:                   input.Location,
		Category:                   input.Category,
		BusinessRegistrationNumber: input.BusinessRegistrationNumber,
		ProfileCompleted:           true,
	}
	if err := s.advertiserStore.Create(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.New(apperr.CodeConflict, "advertiser profile already exists")
		}
		return nil, apperr.From(err)
	}

	_ = s.auditStore.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "advertiser_profile_created",
		EntityType:  "advertiser_profile",
		EntityID:    &profile.ID,
	})

	return profile, nil
}

type ChannelInput struct {
	ChannelType string
	ChannelName string
	ChannelURL  string
}

type InfluencerOnboardingInput struct {
	BirthDate string
	Channels  []ChannelInput
}

// CreateInfluencerProfile registers an influencer profile with its channels.
// The profile and channels are written in a single transaction; a duplicate
// profile or a repeated channel type surfaces as Conflict.
func (s *ProfileService) CreateInfluencerProfile(ctx context.Context, userID uuid.UUID, input InfluencerOnboardingInput) (*models.InfluencerProfile, []models.InfluencerChannel, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return nil, nil, apperr.From(err)
	}
	if user.Role != models.RoleInfluencer {
		return nil, nil, apperr.New(apperr.CodeForbidden, "only influencer accounts can create an influencer profile")
	}

	if !validation.MeetsMinimumAge(input.BirthDate, validation.MinimumInfluencerAge, time.Now()) {
		return nil, nil, apperr.Newf(apperr.CodeValidation, "influencers must be at least %d years old", validation.MinimumInfluencerAge)
	}

	if len(input.Channels) == 0 {
		return nil, nil, apperr.New(apperr.CodeValidation, "at least one channel is required")
	}

	types := make([]string, 0, len(input.Channels))
	channels := make([]models.InfluencerChannel, 0, len(input.Channels))
	for _, ch := range input.Channels {
		if !models.IsValidChannelType(ch.ChannelType) {
			return nil, nil, apperr.Newf(apperr.CodeValidation, "unknown channel type %q", ch.ChannelType)
		}
		if !validation.ValidChannelURL(ch.ChannelType, ch.ChannelURL) {
			return nil, nil, apperr.Newf(apperr.CodeValidation, "channel URL does not match channel type %q", ch.ChannelType)
		}
		types = append(types, ch.ChannelType)
		channels = append(channels, models.InfluencerChannel{
			ChannelType:        ch.ChannelType,
			ChannelName:        ch.ChannelName,
			ChannelURL:         ch.ChannelURL,
			VerificationStatus: models.ChannelVerificationPending,
		})
	}
	if validation.HasDuplicateChannelTypes(types) {
		return nil, nil, apperr.New(apperr.CodeValidation, "duplicate channel types are not allowed")
	}

	profile := &models.InfluencerProfile{
		UserID:           userID,
		BirthDate:        input.BirthDate,
		ProfileCompleted: true,
	}
	if err := s.influencerStore.CreateWithChannels(ctx, profile, channels); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, nil, apperr.New(apperr.CodeConflict, "influencer profile already exists")
		}
		return nil, nil, apperr.From(err)
	}

	_ = s.auditStore.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "influencer_profile_created",
		EntityType:  "influencer_profile",
		EntityID:    &profile.ID,
		Meta:        map[string]any{"channel_count": len(channels)},
	})

	return profile, channels, nil
}

// Me describes the authenticated user along with whichever role profile
// exists for them.
type Me struct {
	User              *models.User               `json:"user"`
	AdvertiserProfile *models.AdvertiserProfile  `json:"advertiser_profile,omitempty"`
	InfluencerProfile *models.InfluencerProfile  `json:"influencer_profile,omitempty"`
	Channels          []models.InfluencerChannel `json:"channels,omitempty"`
}

func (s *ProfileService) GetMe(ctx context.Context, userID uuid.UUID) (*Me, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return nil, apperr.From(err)
	}

	me := &Me{User: user}

	switch user.Role {
	case models.RoleAdvertiser:
		profile, err := s.advertiserStore.GetByUserID(ctx, userID)
		if err == nil {
			me.AdvertiserProfile = profile
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.From(err)
		}
	case models.RoleInfluencer:
		profile, err := s.influencerStore.GetByUserID(ctx, userID)
		if err == nil {
			me.InfluencerProfile = profile
			channels, err := s.influencerStore.ListChannels(ctx, profile.ID)
			if err != nil {
				return nil, apperr.From(err)
			}
			me.Channels = channels
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.From(err)
		}
	}

	return me, nil
}

// ResolveAdvertiserProfile returns the advertiser profile for the given
// profile id, verifying it belongs to userID. Used by handlers to check the
// caller-supplied profile id against the session identity.
func (s *ProfileService) ResolveAdvertiserProfile(ctx context.Context, userID, profileID uuid.UUID) (*models.AdvertiserProfile, error) {
	profile, err := s.advertiserStore.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "advertiser profile not found")
		}
		return nil, apperr.From(err)
	}
	if profile.UserID != userID {
		return nil, apperr.New(apperr.CodeForbidden, "advertiser profile does not belong to the authenticated user")
	}
	return profile, nil
}

// GetAdvertiserProfileByUser looks up the advertiser profile owned by userID.
// Advertiser-only endpoints call this to turn the session identity into a
// profile id; a missing profile means onboarding has not happened yet.
func (s *ProfileService) GetAdvertiserProfileByUser(ctx context.Context, userID uuid.UUID) (*models.AdvertiserProfile, error) {
	profile, err := s.advertiserStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeForbidden, "advertiser onboarding required")
		}
		return nil, apperr.From(err)
	}
	return profile, nil
}

// GetInfluencerProfileByUser looks up the influencer profile owned by userID.
func (s *ProfileService) GetInfluencerProfileByUser(ctx context.Context, userID uuid.UUID) (*models.InfluencerProfile, error) {
	profile, err := s.influencerStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeForbidden, "influencer onboarding required")
		}
		return nil, apperr.From(err)
	}
	return profile, nil
}
