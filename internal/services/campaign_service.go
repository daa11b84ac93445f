package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/influmatch/backend/internal/apperr"
	"github.com/influmatch/backend/internal/events"
	"github.com/influmatch/backend/internal/models"
	"github.com/influmatch/backend/internal/repositories"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type CampaignService struct {
	campaignStore    CampaignStore
	applicationStore ApplicationStore
	auditStore       AuditStore
	publisher        events.Publisher
	log              *zap.Logger
}

func NewCampaignService(
	campaignStore CampaignStore,
	applicationStore ApplicationStore,
	auditStore AuditStore,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignStore:    campaignStore,
		applicationStore: applicationStore,
		auditStore:       auditStore,
		publisher:        publisher,
		log:              log,
	}
}

type CampaignCreateInput struct {
	Title                string
	RecruitmentStartDate string
	RecruitmentEndDate   string
	MaxParticipants      int
	Benefits             string
	Mission              string
	StoreInfo            string
}

func (s *CampaignService) Create(ctx context.Context, advertiserProfileID uuid.UUID, input CampaignCreateInput) (*models.Campaign, error) {
	if err := validateRecruitmentDates(input.RecruitmentStartDate, input.RecruitmentEndDate); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		AdvertiserProfileID:  advertiserProfileID,
		Title:                input.Title,
		RecruitmentStartDate: input.RecruitmentStartDate,
		RecruitmentEndDate:   input.RecruitmentEndDate,
		MaxParticipants:      input.MaxParticipants,
		Benefits:             input.Benefits,
		Mission:              input.Mission,
		StoreInfo:            input.StoreInfo,
		Status:               models.CampaignStatusRecruiting,
	}

	if err := s.campaignStore.Create(ctx, campaign); err != nil {
		return nil, apperr.From(err)
	}

	actorID := advertiserProfileID
	_ = s.auditStore.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "user",
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
	})

	return campaign, nil
}

func (s *CampaignService) Get(ctx context.Context, id uuid.UUID) (*models.CampaignWithAdvertiser, error) {
	c, err := s.campaignStore.GetByIDWithAdvertiser(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "campaign not found")
		}
		return nil, apperr.From(err)
	}
	return c, nil
}

func (s *CampaignService) List(ctx context.Context, f repositories.CampaignFilter) ([]models.CampaignWithAdvertiser, error) {
	campaigns, err := s.campaignStore.List(ctx, f)
	if err != nil {
		return nil, apperr.From(err)
	}
	return campaigns, nil
}

// CampaignUpdateInput carries the PATCH fields; nil means "leave unchanged".
type CampaignUpdateInput struct {
	Title                *string
	RecruitmentStartDate *string
	RecruitmentEndDate   *string
	MaxParticipants      *int
	Benefits             *string
	Mission              *string
	StoreInfo            *string
	Status               *string
}

// Update applies a partial update. Only the owning advertiser may mutate the
// campaign; a status change must follow the forward-only transition table.
func (s *CampaignService) Update(ctx context.Context, id uuid.UUID, actingAdvertiserProfileID uuid.UUID, input CampaignUpdateInput) (*models.Campaign, error) {
	existing, err := s.campaignStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "campaign not found")
		}
		return nil, apperr.From(err)
	}

	if !OwnsCampaign(existing, actingAdvertiserProfileID) {
		return nil, apperr.New(apperr.CodeForbidden, "you do not have permission to update this campaign")
	}

	oldStatus := existing.Status

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.RecruitmentStartDate != nil {
		existing.RecruitmentStartDate = *input.RecruitmentStartDate
	}
	if input.RecruitmentEndDate != nil {
		existing.RecruitmentEndDate = *input.RecruitmentEndDate
	}
	if input.MaxParticipants != nil {
		existing.MaxParticipants = *input.MaxParticipants
	}
	if input.Benefits != nil {
		existing.Benefits = *input.Benefits
	}
	if input.Mission != nil {
		existing.Mission = *input.Mission
	}
	if input.StoreInfo != nil {
		existing.StoreInfo = *input.StoreInfo
	}

	if err := validateRecruitmentDates(existing.RecruitmentStartDate, existing.RecruitmentEndDate); err != nil {
		return nil, err
	}

	if input.Status != nil && *input.Status != oldStatus {
		if !models.IsValidCampaignStatus(*input.Status) {
			return nil, apperr.Newf(apperr.CodeValidation, "unknown campaign status %q", *input.Status)
		}
		if !models.IsValidCampaignTransition(oldStatus, *input.Status) {
			return nil, apperr.Newf(apperr.CodePrecondition, "cannot transition campaign from %s to %s", oldStatus, *input.Status)
		}
		existing.Status = *input.Status
	}

	if err := s.campaignStore.Update(ctx, existing); err != nil {
		return nil, apperr.From(err)
	}

	actorID := actingAdvertiserProfileID
	_ = s.auditStore.Log(ctx, models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "user",
		Action:      "campaign_updated",
		EntityType:  "campaign",
		EntityID:    &existing.ID,
	})

	if existing.Status != oldStatus {
		s.publishStatusChange(ctx, existing.ID, oldStatus, existing.Status)
	}

	return existing, nil
}

// transition validates and performs a status transition with audit logging.
func (s *CampaignService) transition(ctx context.Context, campaign *models.Campaign, newStatus string, actorID *uuid.UUID, actorType string) error {
	if !models.IsValidCampaignTransition(campaign.Status, newStatus) {
		return apperr.Newf(apperr.CodePrecondition, "cannot transition campaign from %s to %s", campaign.Status, newStatus)
	}

	oldStatus := campaign.Status
	if err := s.campaignStore.UpdateStatus(ctx, campaign.ID, newStatus); err != nil {
		return apperr.From(err)
	}
	campaign.Status = newStatus

	_ = s.auditStore.Log(ctx, models.AuditLog{
		ActorUserID: actorID,
		ActorType:   actorType,
		Action:      fmt.Sprintf("campaign_status_%s_to_%s", oldStatus, newStatus),
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
		Meta:        map[string]any{"old_status": oldStatus, "new_status": newStatus},
	})

	s.publishStatusChange(ctx, campaign.ID, oldStatus, newStatus)
	return nil
}

func (s *CampaignService) publishStatusChange(ctx context.Context, campaignID uuid.UUID, oldStatus, newStatus string) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events.StreamLifecycle, events.Event{
		Type: events.EventCampaignStatusChanged,
		Payload: map[string]any{
			"campaign_id": campaignID.String(),
			"old_status":  oldStatus,
			"new_status":  newStatus,
		},
	})
}

// CloseExpired moves recruiting campaigns whose recruitment end date has
// passed to closed. Run periodically by the worker.
func (s *CampaignService) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	today := now.Format(dateLayout)
	campaigns, err := s.campaignStore.ListRecruitingEndedBefore(ctx, today, 100)
	if err != nil {
		return 0, apperr.From(err)
	}

	closed := 0
	for i := range campaigns {
		c := &campaigns[i]
		if err := s.transition(ctx, c, models.CampaignStatusClosed, nil, "system"); err != nil {
			s.log.Error("failed to auto-close campaign",
				zap.String("campaign_id", c.ID.String()), zap.Error(err))
			continue
		}
		closed++
	}
	return closed, nil
}

// CompleteStale completes closed campaigns older than the cutoff and marks
// their selected applications completed. Run periodically by the worker.
func (s *CampaignService) CompleteStale(ctx context.Context, cutoff time.Time) (int, error) {
	campaigns, err := s.campaignStore.ListClosedBefore(ctx, cutoff.UTC().Format(time.RFC3339), 100)
	if err != nil {
		return 0, apperr.From(err)
	}

	completed := 0
	for i := range campaigns {
		c := &campaigns[i]
		if err := s.transition(ctx, c, models.CampaignStatusCompleted, nil, "system"); err != nil {
			s.log.Error("failed to complete campaign",
				zap.String("campaign_id", c.ID.String()), zap.Error(err))
			continue
		}

		n, err := s.applicationStore.CompleteSelectedByCampaign(ctx, c.ID)
		if err != nil {
			s.log.Error("failed to complete selected applications",
				zap.String("campaign_id", c.ID.String()), zap.Error(err))
		} else if n > 0 {
			s.log.Info("completed selected applications",
				zap.String("campaign_id", c.ID.String()), zap.Int64("count", n))
		}
		completed++
	}
	return completed, nil
}

// AuditTrail returns the campaign's audit entries, newest first. Owners only.
func (s *CampaignService) AuditTrail(ctx context.Context, id uuid.UUID, actingAdvertiserProfileID uuid.UUID, limit, offset int) ([]models.AuditLog, error) {
	campaign, err := s.campaignStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "campaign not found")
		}
		return nil, apperr.From(err)
	}
	if !OwnsCampaign(campaign, actingAdvertiserProfileID) {
		return nil, apperr.New(apperr.CodeForbidden, "you do not have permission to view this campaign's history")
	}

	entries, err := s.auditStore.GetByEntity(ctx, "campaign", id, limit, offset)
	if err != nil {
		return nil, apperr.From(err)
	}
	return entries, nil
}

// OwnsCampaign reports whether the advertiser profile owns the campaign.
func OwnsCampaign(c *models.Campaign, advertiserProfileID uuid.UUID) bool {
	return c.AdvertiserProfileID == advertiserProfileID
}

func validateRecruitmentDates(start, end string) error {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return apperr.New(apperr.CodeValidation, "recruitment start date must be YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return apperr.New(apperr.CodeValidation, "recruitment end date must be YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return apperr.New(apperr.CodeValidation, "recruitment end date must not be before start date")
	}
	return nil
}
