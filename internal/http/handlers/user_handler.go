package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/influmatch/backend/internal/http/dto"
	"github.com/influmatch/backend/internal/middleware"
	"github.com/influmatch/backend/internal/services"
)

type UserHandler struct {
	profileService *services.ProfileService
	log            *zap.Logger
}

func NewUserHandler(profileService *services.ProfileService, log *zap.Logger) *UserHandler {
	return &UserHandler{profileService: profileService, log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	me, err := h.profileService.GetMe(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: me})
}

func (h *UserHandler) CreateAdvertiserProfile(c *fiber.Ctx) error {
	var req dto.AdvertiserOnboardingRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	userID := middleware.GetUserID(c)
	profile, err := h.profileService.CreateAdvertiserProfile(c.Context(), userID, services.AdvertiserOnboardingInput{
		CompanyName:                req.CompanyName,
		Location:                   req.Location,
		Category:                   req.Category,
		BusinessRegistrationNumber: req.BusinessRegistrationNumber,
	})
	if err != nil {
		return err
	}

	h.log.Info("advertiser profile created", zap.String("user_id", userID.String()))

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: profile})
}

func (h *UserHandler) CreateInfluencerProfile(c *fiber.Ctx) error {
	var req dto.InfluencerOnboardingRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	channels := make([]services.ChannelInput, 0, len(req.Channels))
	for _, ch := range req.Channels {
		channels = append(channels, services.ChannelInput{
			ChannelType: ch.ChannelType,
			ChannelName: ch.ChannelName,
			ChannelURL:  ch.ChannelURL,
		})
	}

	userID := middleware.GetUserID(c)
	profile, created, err := h.profileService.CreateInfluencerProfile(c.Context(), userID, services.InfluencerOnboardingInput{
		BirthDate: req.BirthDate,
		Channels:  channels,
	})
	if err != nil {
		return err
	}

	h.log.Info("influencer profile created",
		zap.String("user_id", userID.String()),
		zap.Int("channels", len(created)),
	)

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{
		"profile":  profile,
		"channels": created,
	}})
}
