package handlers

import (
	"strconv"

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

type CampaignHandler struct {
	campaignService *services.CampaignService
	profileService  *services.ProfileService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, profileService *services.ProfileService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, profileService: profileService, log: log}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	profile, err := h.advertiserProfile(c)
	if err != nil {
		return err
	}

	campaign, err := h.campaignService.Create(c.Context(), profile.ID, services.CampaignCreateInput{
		Title:                req.Title,
		RecruitmentStartDate: req.RecruitmentStartDate,
		RecruitmentEndDate:   req.RecruitmentEndDate,
		MaxParticipants:      req.MaxParticipants,
		Benefits:             req.Benefits,
		Mission:              req.Mission,
		StoreInfo:            req.StoreInfo,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.New(apperr.CodeValidation, "invalid campaign id")
	}

	campaign, err := h.campaignService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	filter := repositories.CampaignFilter{
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}

	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("advertiserId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return apperr.New(apperr.CodeValidation, "invalid advertiserId")
		}
		filter.AdvertiserProfileID = &id
	}

	campaigns, err := h.campaignService.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list campaigns failed", zap.Error(err))
		return err
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.New(apperr.CodeValidation, "invalid campaign id")
	}

	var req dto.UpdateCampaignRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	profile, err := h.advertiserProfile(c)
	if err != nil {
		return err
	}

	campaign, err := h.campaignService.Update(c.Context(), id, profile.ID, services.CampaignUpdateInput{
		Title:                req.Title,
		RecruitmentStartDate: req.RecruitmentStartDate,
		RecruitmentEndDate:   req.RecruitmentEndDate,
		MaxParticipants:      req.MaxParticipants,
		Benefits:             req.Benefits,
		Mission:              req.Mission,
		StoreInfo:            req.StoreInfo,
		Status:               req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) GetCampaignAudit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.New(apperr.CodeValidation, "invalid campaign id")
	}

	profile, err := h.advertiserProfile(c)
	if err != nil {
		return err
	}

	entries, err := h.campaignService.AuditTrail(c.Context(), id, profile.ID, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return err
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}

// advertiserProfile resolves the advertiser profile behind the authenticated
// user, rejecting users that have not completed advertiser onboarding.
func (h *CampaignHandler) advertiserProfile(c *fiber.Ctx) (*models.AdvertiserProfile, error) {
	userID := middleware.GetUserID(c)
	profile, err := h.profileService.GetAdvertiserProfileByUser(c.Context(), userID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
