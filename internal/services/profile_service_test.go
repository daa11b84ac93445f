package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/influmatch/backend/internal/apperr"
	"github.com/influmatch/backend/internal/models"
)

type profileFixture struct {
	svc         *ProfileService
	users       *fakeUserStore
	advertisers *fakeAdvertiserProfileStore
	influencers *fakeInfluencerStore
}

func newProfileFixture() *profileFixture {
	users := newFakeUserStore()
	advertisers := newFakeAdvertiserProfileStore()
	influencers := newFakeInfluencerStore()
	svc := NewProfileService(users, advertisers, influencers, &fakeAuditStore{}, zap.NewNop())
	return &profileFixture{svc: svc, users: users, advertisers: advertisers, influencers: influencers}
}

func (f *profileFixture) seedUser(t *testing.T, role string) uuid.UUID {
	t.Helper()
	user := &models.User{
		Email: uuid.New().String() + "@example.com",
		Name:  "Test User",
		Role:  role,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user.ID
}

func validAdvertiserInput() AdvertiserOnboardingInput {
	return AdvertiserOnboardingInput{
		CompanyName:                "Mapo Diner",
		BusinessRegistrationNumber: "123-45-67890",
	}
}

func validInfluencerInput() InfluencerOnboardingInput {
	return InfluencerOnboardingInput{
		BirthDate: "2000-01-15",
		Channels: []ChannelInput{
			{
				ChannelType: models.ChannelTypeInstagram,
				ChannelName: "daily.eats",
				ChannelURL:  "https://www.instagram.com/daily.eats",
			},
		},
	}
}

func TestCreateAdvertiserProfile(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, models.RoleAdvertiser)

	profile, err := f.svc.CreateAdvertiserProfile(context.Background(), userID, validAdvertiserInput())
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.True(t, profile.ProfileCompleted)

	// Second create for the same user conflicts.
	_, err = f.svc.CreateAdvertiserProfile(context.Background(), userID, validAdvertiserInput())
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestCreateAdvertiserProfileWrongRole(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, models.RoleInfluencer)

	_, err := f.svc.CreateAdvertiserProfile(context.Background(), userID, validAdvertiserInput())
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
}

func TestCreateInfluencerProfile(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, models.RoleInfluencer)

	profile, channels, err := f.svc.CreateInfluencerProfile(context.Background(), userID, validInfluencerInput())
	require.NoError(t, err)
	assert.True(t, profile.ProfileCompleted)
	require.Len(t, channels, 1)
	assert.Equal(t, models.ChannelVerificationPending, channels[0].VerificationStatus)
	assert.Equal(t, profile.ID, channels[0].InfluencerProfileID)
}

func TestCreateInfluencerProfileValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InfluencerOnboardingInput)
	}{
		{"underage", func(in *InfluencerOnboardingInput) {
			in.BirthDate = "2020-01-01"
		}},
		{"no channels", func(in *InfluencerOnboardingInput) {
			in.Channels = nil
		}},
		{"unknown channel type", func(in *InfluencerOnboardingInput) {
			in.Channels[0].ChannelType = "tiktok"
		}},
		{"url does not match type", func(in *InfluencerOnboardingInput) {
			in.Channels[0].ChannelURL = "https://www.youtube.com/@daily.eats"
		}},
		{"duplicate channel types", func(in *InfluencerOnboardingInput) {
			in.Channels = append(in.Channels, in.Channels[0])
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProfileFixture()
			userID := f.seedUser(t, models.RoleInfluencer)

			input := validInfluencerInput()
			tt.mutate(&input)

			_, _, err := f.svc.CreateInfluencerProfile(context.Background(), userID, input)
			assert.True(t, apperr.IsCode(err, apperr.CodeValidation), "got %v", err)
		})
	}
}

func TestCreateInfluencerProfileWrongRole(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, models.RoleAdvertiser)

	_, _, err := f.svc.CreateInfluencerProfile(context.Background(), userID, validInfluencerInput())
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
}

func TestGetMe(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, models.RoleInfluencer)

	// Before onboarding only the user comes back.
	me, err := f.svc.GetMe(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, me.InfluencerProfile)

	_, _, err = f.svc.CreateInfluencerProfile(context.Background(), userID, validInfluencerInput())
	require.NoError(t, err)

	me, err = f.svc.GetMe(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, me.InfluencerProfile)
	assert.Len(t, me.Channels, 1)
	assert.Nil(t, me.AdvertiserProfile)
}

func TestGetAdvertiserProfileByUser(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, models.RoleAdvertiser)

	_, err := f.svc.GetAdvertiserProfileByUser(context.Background(), userID)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	created, err := f.svc.CreateAdvertiserProfile(context.Background(), userID, validAdvertiserInput())
	require.NoError(t, err)

	profile, err := f.svc.GetAdvertiserProfileByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)
}

func TestResolveAdvertiserProfile(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, models.RoleAdvertiser)

	created, err := f.svc.CreateAdvertiserProfile(context.Background(), userID, validAdvertiserInput())
	require.NoError(t, err)

	_, err = f.svc.ResolveAdvertiserProfile(context.Background(), uuid.New(), created.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	profile, err := f.svc.ResolveAdvertiserProfile(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)
}
