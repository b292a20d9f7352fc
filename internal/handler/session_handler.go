package handler

import (
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/middleware"
	"studyquiz/internal/service"
	"studyquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles test session HTTP requests. Errors are returned to
// the centralized error handler, which maps domain codes to HTTP statuses.
type SessionHandler struct {
	service   service.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService, validator *validation.Validator) *SessionHandler {
	return &SessionHandler{service: service, validator: validator}
}

func userIDFromLocals(c *fiber.Ctx) string {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	return userID
}

// StartSession handles POST /api/sessions
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateStartSessionRequest(req.BookID, req.ChapterID, req.SetID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.StartSession(c.Context(), userIDFromLocals(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession handles GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GetSession(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer handles POST /api/sessions/:id/answers
func (h *SessionHandler) SubmitAnswer(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateSubmitAnswerRequest(req.QuestionID, req.Answer); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitAnswer(c.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Advance handles POST /api/sessions/:id/advance
func (h *SessionHandler) Advance(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Advance(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ToggleFlag handles POST /api/sessions/:id/flags
func (h *SessionHandler) ToggleFlag(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	var req dto.ToggleFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.QuestionID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("question_id")}
	}

	resp, err := h.service.ToggleFlag(c.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Finalize handles POST /api/sessions/:id/finalize
func (h *SessionHandler) Finalize(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Finalize(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetReport handles GET /api/sessions/:id/report
func (h *SessionHandler) GetReport(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateSessionID(sessionID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GetReport(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetMyResults handles GET /api/users/me/results
func (h *SessionHandler) GetMyResults(c *fiber.Ctx) error {
	userID := userIDFromLocals(c)
	if userID == "" {
		return domain.NewUnauthorizedError("authentication required")
	}

	results, err := h.service.GetUserResults(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(results)
}
