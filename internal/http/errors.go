package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/influmatch/backend/internal/apperr"
	"github.com/influmatch/backend/internal/http/dto"
	"github.com/influmatch/backend/internal/middleware"
)

// ErrorHandler turns errors returned from handlers into the JSON error
// envelope. Unknown errors are logged and surfaced as INTERNAL_ERROR without
// leaking their message.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		reqID, _ := c.Locals(middleware.CtxRequestID).(string)

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code := apperr.CodeValidation
			switch fiberErr.Code {
			case fiber.StatusNotFound:
				code = apperr.CodeNotFound
			case fiber.StatusMethodNotAllowed, fiber.StatusUpgradeRequired:
				code = apperr.CodeValidation
			case fiber.StatusInternalServerError:
				code = apperr.CodeInternal
			}
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Error:     dto.ErrorBody{Code: code, Message: fiberErr.Message},
				RequestID: reqID,
			})
		}

		appErr := apperr.From(err)
		if appErr.Code == apperr.CodeInternal {
			log.Error("request failed",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(appErr.HTTPStatus()).JSON(dto.ErrorResponse{
			Error: dto.ErrorBody{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			},
			RequestID: reqID,
		})
	}
}
