package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/influmatch/backend/internal/http/dto"
	"github.com/influmatch/backend/internal/models"
	"github.com/influmatch/backend/internal/validation"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

var channelTypeLabels = map[string]string{
	models.ChannelTypeNaver:     "Naver Blog",
	models.ChannelTypeYouTube:   "YouTube",
	models.ChannelTypeInstagram: "Instagram",
	models.ChannelTypeThreads:   "Threads",
}

func (h *MetaHandler) GetChannelTypes(c *fiber.Ctx) error {
	types := make([]dto.ChannelTypeResponse, 0, len(models.ChannelTypes))
	for _, t := range models.ChannelTypes {
		types = append(types, dto.ChannelTypeResponse{
			ID:         t,
			Label:      channelTypeLabels[t],
			URLPattern: validation.ChannelURLPattern(t),
		})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: types})
}
