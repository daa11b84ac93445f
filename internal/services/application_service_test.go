package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/influmatch/backend/internal/apperr"
	"github.com/influmatch/backend/internal/events"
	"github.com/influmatch/backend/internal/models"
)

type applicationFixture struct {
	svc          *ApplicationService
	campaigns    *fakeCampaignStore
	applications *fakeApplicationStore
	influencers  *fakeInfluencerStore
	publisher    *fakePublisher

	advertiserProfileID uuid.UUID
	campaign            *models.Campaign
	influencerUserID    uuid.UUID
	influencerProfileID uuid.UUID
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()

	campaigns := newFakeCampaignStore()
	applications := newFakeApplicationStore()
	influencers := newFakeInfluencerStore()
	publisher := &fakePublisher{}
	svc := NewApplicationService(applications, campaigns, influencers, &fakeAuditStore{}, publisher, zap.NewNop())

	advertiserProfileID := uuid.New()
	campaign := &models.Campaign{
		AdvertiserProfileID:  advertiserProfileID,
		Title:                "Restaurant opening",
		RecruitmentStartDate: "2026-09-01",
		RecruitmentEndDate:   "2026-09-15",
		MaxParticipants:      5,
		Status:               models.CampaignStatusRecruiting,
	}
	require.NoError(t, campaigns.Create(context.Background(), campaign))

	influencerUserID := uuid.New()
	profile := &models.InfluencerProfile{
		UserID:           influencerUserID,
		BirthDate:        "2000-01-15",
		ProfileCompleted: true,
	}
	require.NoError(t, influencers.CreateWithChannels(context.Background(), profile, nil))

	return &applicationFixture{
		svc:                 svc,
		campaigns:           campaigns,
		applications:        applications,
		influencers:         influencers,
		publisher:           publisher,
		advertiserProfileID: advertiserProfileID,
		campaign:            campaign,
		influencerUserID:    influencerUserID,
		influencerProfileID: profile.ID,
	}
}

func (f *applicationFixture) apply(t *testing.T) *models.Application {
	t.Helper()
	application, err := f.svc.Apply(context.Background(), f.influencerUserID, ApplyInput{
		CampaignID:       f.campaign.ID,
		Message:          "I run a local food blog and would love to visit.",
		PlannedVisitDate: "2026-09-20",
	})
	require.NoError(t, err)
	return application
}

func (f *applicationFixture) closeCampaign(t *testing.T) {
	t.Helper()
	require.NoError(t, f.campaigns.UpdateStatus(context.Background(), f.campaign.ID, models.CampaignStatusClosed))
}

func TestApply(t *testing.T) {
	f := newApplicationFixture(t)

	application := f.apply(t)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	assert.Equal(t, f.influencerProfileID, application.InfluencerProfileID)
	assert.Equal(t, f.campaign.ID, application.CampaignID)
}

func TestApplyCampaignNotRecruiting(t *testing.T) {
	f := newApplicationFixture(t)
	f.closeCampaign(t)

	_, err := f.svc.Apply(context.Background(), f.influencerUserID, ApplyInput{
		CampaignID:       f.campaign.ID,
		Message:          "too late",
		PlannedVisitDate: "2026-09-20",
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeCampaignClosed))
}

func TestApplyCampaignNotFound(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), f.influencerUserID, ApplyInput{
		CampaignID: uuid.New(),
		Message:    "hello",
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestApplyWithoutProfile(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), uuid.New(), ApplyInput{
		CampaignID: f.campaign.ID,
		Message:    "no profile yet",
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeInfluencerNotEligible))
}

func TestApplyIncompleteProfile(t *testing.T) {
	f := newApplicationFixture(t)

	userID := uuid.New()
	profile := &models.InfluencerProfile{UserID: userID, BirthDate: "1999-03-02"}
	require.NoError(t, f.influencers.CreateWithChannels(context.Background(), profile, nil))

	_, err := f.svc.Apply(context.Background(), userID, ApplyInput{
		CampaignID: f.campaign.ID,
		Message:    "half onboarded",
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeInfluencerNotEligible))
}

func TestApplyDuplicate(t *testing.T) {
	f := newApplicationFixture(t)
	f.apply(t)

	_, err := f.svc.Apply(context.Background(), f.influencerUserID, ApplyInput{
		CampaignID:       f.campaign.ID,
		Message:          "second try",
		PlannedVisitDate: "2026-09-21",
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestApplyMessageTooLong(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), f.influencerUserID, ApplyInput{
		CampaignID: f.campaign.ID,
		Message:    strings.Repeat("a", models.MaxApplicationMessageLen+1),
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestDecide(t *testing.T) {
	f := newApplicationFixture(t)
	application := f.apply(t)
	f.closeCampaign(t)

	decided, err := f.svc.Decide(context.Background(), application.ID, f.campaign.ID, f.advertiserProfileID, models.ApplicationStatusSelected)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusSelected, decided.Status)

	published := f.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventApplicationStatusChanged, published[0].Type)
}

func TestDecideRequiresClosedCampaign(t *testing.T) {
	f := newApplicationFixture(t)
	application := f.apply(t)

	_, err := f.svc.Decide(context.Background(), application.ID, f.campaign.ID, f.advertiserProfileID, models.ApplicationStatusSelected)
	assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
}

func TestDecideNotOwner(t *testing.T) {
	f := newApplicationFixture(t)
	application := f.apply(t)
	f.closeCampaign(t)

	_, err := f.svc.Decide(context.Background(), application.ID, f.campaign.ID, uuid.New(), models.ApplicationStatusSelected)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
}

func TestDecideWrongCampaign(t *testing.T) {
	f := newApplicationFixture(t)
	application := f.apply(t)
	f.closeCampaign(t)

	other := &models.Campaign{
		AdvertiserProfileID:  f.advertiserProfileID,
		Title:                "Another campaign",
		RecruitmentStartDate: "2026-09-01",
		RecruitmentEndDate:   "2026-09-15",
		Status:               models.CampaignStatusClosed,
	}
	require.NoError(t, f.campaigns.Create(context.Background(), other))

	_, err := f.svc.Decide(context.Background(), application.ID, other.ID, f.advertiserProfileID, models.ApplicationStatusSelected)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestDecideInvalidStatus(t *testing.T) {
	f := newApplicationFixture(t)
	application := f.apply(t)
	f.closeCampaign(t)

	_, err := f.svc.Decide(context.Background(), application.ID, f.campaign.ID, f.advertiserProfileID, models.ApplicationStatusCompleted)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestDecideIsIdempotent(t *testing.T) {
	f := newApplicationFixture(t)
	application := f.apply(t)
	f.closeCampaign(t)

	_, err := f.svc.Decide(context.Background(), application.ID, f.campaign.ID, f.advertiserProfileID, models.ApplicationStatusRejected)
	require.NoError(t, err)

	// Same decision again succeeds without a second event.
	decided, err := f.svc.Decide(context.Background(), application.ID, f.campaign.ID, f.advertiserProfileID, models.ApplicationStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, decided.Status)
	assert.Len(t, f.publisher.published(), 1)

	// Flipping a terminal decision is rejected.
	_, err = f.svc.Decide(context.Background(), application.ID, f.campaign.ID, f.advertiserProfileID, models.ApplicationStatusSelected)
	assert.True(t, apperr.IsCode(err, apperr.CodePrecondition))
}

func TestListForInfluencer(t *testing.T) {
	f := newApplicationFixture(t)
	f.apply(t)

	apps, err := f.svc.ListForInfluencer(context.Background(), f.influencerUserID, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, f.campaign.ID, apps[0].CampaignID)

	status := models.ApplicationStatusSelected
	apps, err = f.svc.ListForInfluencer(context.Background(), f.influencerUserID, &status, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, apps)
}
