package handler

import (
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/middleware"
	"studyquiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles account and token HTTP requests.
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		var errs domain.ValidationErrors
		if req.Username == "" {
			errs = append(errs, domain.NewMissingFieldError("username"))
		}
		if req.Password == "" {
			errs = append(errs, domain.NewMissingFieldError("password"))
		}
		return errs
	}

	tokens, err := h.service.Register(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tokens)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	tokens, err := h.service.Login(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(tokens)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.RefreshToken == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("refresh_token")}
	}

	tokens, err := h.service.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(tokens)
}

// GetMe handles GET /api/users/me
func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	if userID == "" {
		return domain.NewUnauthorizedError("authentication required")
	}

	profile, err := h.service.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
