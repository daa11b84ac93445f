package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/influmatch/backend/internal/apperr"
	"github.com/influmatch/backend/internal/auth"
	"github.com/influmatch/backend/internal/config"
	"github.com/influmatch/backend/internal/http/dto"
	"github.com/influmatch/backend/internal/models"
	"github.com/influmatch/backend/internal/repositories"
)

type AuthHandler struct {
	userRepo *repositories.UserRepo
	cfg      *config.Config
	log      *zap.Logger
}

func NewAuthHandler(userRepo *repositories.UserRepo, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, cfg: cfg, log: log}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "internal server error")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
	}

	if err := h.userRepo.Create(c.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return apperr.New(apperr.CodeConflict, "an account with this email already exists")
		}
		return apperr.From(err)
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.Role, h.cfg.JWTExpiration)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "internal server error")
	}

	h.log.Info("user signed up", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := dto.ParseBody(c, &req); err != nil {
		return err
	}

	user, err := h.userRepo.GetByEmail(c.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.New(apperr.CodeUnauthorized, "invalid email or password")
		}
		return apperr.From(err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return apperr.New(apperr.CodeUnauthorized, "invalid email or password")
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.Role, h.cfg.JWTExpiration)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "internal server error")
	}

	return c.JSON(dto.AuthResponse{Token: token, User: user})
}
