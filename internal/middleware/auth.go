package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/influmatch/backend/internal/apperr"
	"github.com/influmatch/backend/internal/auth"
	"github.com/influmatch/backend/internal/config"
)

const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperr.New(apperr.CodeUnauthorized, "missing authorization header")
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return apperr.New(apperr.CodeUnauthorized, "invalid authorization format")
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return apperr.New(apperr.CodeUnauthorized, "invalid or expired token")
		}

		c.Locals(CtxUserID, claims.UserID)
		c.Locals(CtxUserRole, claims.Role)

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserID).(uuid.UUID)
	return id
}

func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxUserRole).(string)
	return role
}

// RequireRole rejects authenticated requests whose token carries a different role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserRole(c) != role {
			return apperr.Newf(apperr.CodeForbidden, "%s role required", role)
		}
		return c.Next()
	}
}
