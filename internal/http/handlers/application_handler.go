package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/influmatch/backend/internal/apperr"
	"github.com/influmatch/backend/internal/http/dto"
	"github.com/influmatch/backend/internal/middleware"
	"github.com/influmatch/backend/internal/models"
	"github.com/influmatch/backend/internal/repositories"
	"github.com/influmatch/backend/internal/services"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
	campaignService    *services.CampaignService
	profileService     *services.ProfileService
	log                *zap.Logger
}

func NewApplicationHandler(
	applicationService *services.ApplicationService,
	campaignService *services.CampaignService,
	profileService *services.ProfileService,
	log *zap.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		campaignService:    campaignService,
		profileService:     profileService,
		log:                log,
	}
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		return apperr.New(apperr.CodeValidation, "invalid campaign_id")
	}

	userID := middleware.GetUserID(c)
	application, err := h.applicationService.Apply(c.Context(), userID, services.ApplyInput{
		CampaignID:       campaignID,
		Message:          req.Message,
		PlannedVisitDate: req.PlannedVisitDate,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: application})
}

// ListApplications serves both sides of the marketplace: advertisers list the
// applications on a campaign they own, influencers list their own
// applications.
func (h *ApplicationHandler) ListApplications(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	if middleware.GetUserRole(c) == models.RoleInfluencer {
		applications, err := h.applicationService.ListForInfluencer(c.Context(), userID, status, limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(dto.SuccessResponse{OK: true, Data: applications})
	}

	campaignIDStr := c.Query("campaignId")
	if campaignIDStr == "" {
		return apperr.New(apperr.CodeValidation, "campaignId is required")
	}
	campaignID, err := uuid.Parse(campaignIDStr)
	if err != nil {
		return apperr.New(apperr.CodeValidation, "invalid campaignId")
	}

	profile, err := h.profileService.GetAdvertiserProfileByUser(c.Context(), userID)
	if err != nil {
		return err
	}

	campaign, err := h.campaignService.Get(c.Context(), campaignID)
	if err != nil {
		return err
	}
	if !services.OwnsCampaign(&campaign.Campaign, profile.ID) {
		return apperr.New(apperr.CodeForbidden, "you do not have permission to view these applications")
	}

	applications, err := h.applicationService.List(c.Context(), repositories.ApplicationFilter{
		CampaignID: &campaignID,
		Status:     status,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: applications})
}

func (h *ApplicationHandler) DecideApplication(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.New(apperr.CodeValidation, "invalid application id")
	}

	var req dto.DecideApplicationRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		return apperr.New(apperr.CodeValidation, "invalid campaign_id")
	}

	userID := middleware.GetUserID(c)
	profile, err := h.profileService.GetAdvertiserProfileByUser(c.Context(), userID)
	if err != nil {
		return err
	}

	application, err := h.applicationService.Decide(c.Context(), applicationID, campaignID, profile.ID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: application})
}
