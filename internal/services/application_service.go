package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/influmatch/backend/internal/apperr"
	"github.com/influmatch/backend/internal/events"
	"github.com/influmatch/backend/internal/models"
	"github.com/influmatch/backend/internal/repositories"
	"go.uber.org/zap"
)

type ApplicationService struct {
	applicationStore ApplicationStore
	campaignStore    CampaignStore
	influencerStore  InfluencerStore
	auditStore       AuditStore
	publisher        events.Publisher
	log              *zap.Logger
}

func NewApplicationService(
	applicationStore ApplicationStore,
	campaignStore CampaignStore,
	influencerStore InfluencerStore,
	auditStore AuditStore,
	publisher events.Publisher,
	log *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationStore: applicationStore,
		campaignStore:    campaignStore,
		influencerStore:  influencerStore,
		auditStore:       auditStore,
		publisher:        publisher,
		log:              log,
	}
}

type ApplyInput struct {
	CampaignID       uuid.UUID
	Message          string
	PlannedVisitDate string
}

// Apply creates a pending application for the influencer behind userID.
// The campaign must be recruiting, the influencer profile must exist and be
// completed, and the (campaign, influencer) pair must not already have an
// application. The pre-check is advisory; the database unique constraint is
// the authoritative duplicate guard.
func (s *ApplicationService) Apply(ctx context.Context, userID uuid.UUID, input ApplyInput) (*models.Application, error) {
	if len([]rune(input.Message)) > models.MaxApplicationMessageLen {
		return nil, apperr.Newf(apperr.CodeValidation, "message must be at most %d characters", models.MaxApplicationMessageLen)
	}

	campaign, err := s.campaignStore.GetByID(ctx, input.CampaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "campaign not found")
		}
		return nil, apperr.From(err)
	}
	if campaign.Status != models.CampaignStatusRecruiting {
		return nil, apperr.New(apperr.CodeCampaignClosed, "campaign is no longer recruiting")
	}

	profile, err := s.influencerStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeInfluencerNotEligible, "influencer profile is not registered")
		}
		return nil, apperr.From(err)
	}
	if !profile.ProfileCompleted {
		return nil, apperr.New(apperr.CodeInfluencerNotEligible, "influencer profile is not completed")
	}

	if _, err := s.applicationStore.GetByCampaignAndInfluencer(ctx, input.CampaignID, profile.ID); err == nil {
		return nil, apperr.New(apperr.CodeConflict, "already applied to this campaign")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.From(err)
	}

	application := &models.Application{
		CampaignID:          input.CampaignID,
		InfluencerProfileID: profile.ID,
		Message:             input.Message,
		PlannedVisitDate:    input.PlannedVisitDate,
		Status:              models.ApplicationStatusPending,
	}
	if err := s.applicationStore.Create(ctx, application); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.New(apperr.CodeConflict, "already applied to this campaign")
		}
		return nil, apperr.From(err)
	}

	_ = s.auditStore.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "application_created",
		EntityType:  "application",
		EntityID:    &application.ID,
		Meta:        map[string]any{"campaign_id": input.CampaignID.String()},
	})

	return application, nil
}

// Decide sets a pending application to selected or rejected. Only the
// advertiser owning the parent campaign may decide, and only while that
// campaign is closed. Re-asserting the current status is allowed, so a
// repeated decision with the same target succeeds without changing state.
func (s *ApplicationService) Decide(ctx context.Context, applicationID, campaignID, actingAdvertiserProfileID uuid.UUID, targetStatus string) (*models.Application, error) {
	if !models.IsDecisionStatus(targetStatus) {
		return nil, apperr.New(apperr.CodeValidation, `status must be "selected" or "rejected"`)
	}

	campaign, err := s.campaignStore.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "campaign not found")
		}
		return nil, apperr.From(err)
	}
	if !OwnsCampaign(campaign, actingAdvertiserProfileID) {
		return nil, apperr.New(apperr.CodeForbidden, "you do not have permission to update this application")
	}
	if campaign.Status != models.CampaignStatusClosed {
		return nil, apperr.Newf(apperr.CodePrecondition, "applications can only be decided while the campaign is closed, not %s", campaign.Status)
	}

	application, err := s.applicationStore.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "application not found")
		}
		return nil, apperr.From(err)
	}
	if application.CampaignID != campaignID {
		return nil, apperr.New(apperr.CodeValidation, "application does not belong to this campaign")
	}

	if application.Status != targetStatus && !models.IsValidApplicationTransition(application.Status, targetStatus) {
		return nil, apperr.Newf(apperr.CodePrecondition, "cannot transition application from %s to %s", application.Status, targetStatus)
	}

	oldStatus := application.Status
	if err := s.applicationStore.UpdateStatus(ctx, applicationID, targetStatus); err != nil {
		return nil, apperr.From(err)
	}
	application.Status = targetStatus

	_ = s.auditStore.Log(ctx, models.AuditLog{
		ActorUserID: &actingAdvertiserProfileID,
		ActorType:   "user",
		Action:      fmt.Sprintf("application_status_%s_to_%s", oldStatus, targetStatus),
		EntityType:  "application",
		EntityID:    &application.ID,
		Meta:        map[string]any{"old_status": oldStatus, "new_status": targetStatus},
	})

	if s.publisher != nil && oldStatus != targetStatus {
		_ = s.publisher.Publish(ctx, events.StreamLifecycle, events.Event{
			Type: events.EventApplicationStatusChanged,
			Payload: map[string]any{
				"application_id": application.ID.String(),
				"campaign_id":    campaignID.String(),
				"old_status":     oldStatus,
				"new_status":     targetStatus,
			},
		})
	}

	return application, nil
}

func (s *ApplicationService) List(ctx context.Context, f repositories.ApplicationFilter) ([]models.ApplicationWithCampaign, error) {
	apps, err := s.applicationStore.List(ctx, f)
	if err != nil {
		return nil, apperr.From(err)
	}
	return apps, nil
}

// ListForInfluencer resolves the influencer profile behind userID and lists
// that profile's applications.
func (s *ApplicationService) ListForInfluencer(ctx context.Context, userID uuid.UUID, status *string, limit, offset int) ([]models.ApplicationWithCampaign, error) {
	profile, err := s.influencerStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeInfluencerNotEligible, "influencer profile is not registered")
		}
		return nil, apperr.From(err)
	}
	return s.List(ctx, repositories.ApplicationFilter{
		InfluencerProfileID: &profile.ID,
		Status:              status,
		Limit:               limit,
		Offset:              offset,
	})
}
