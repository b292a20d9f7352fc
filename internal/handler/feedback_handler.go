package handler

import (
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/middleware"
	"studyquiz/internal/service"
	"studyquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// FeedbackHandler handles content feedback HTTP requests.
type FeedbackHandler struct {
	service   service.FeedbackService
	validator *validation.Validator
}

// NewFeedbackHandler creates a new FeedbackHandler instance
func NewFeedbackHandler(service service.FeedbackService, validator *validation.Validator) *FeedbackHandler {
	return &FeedbackHandler{service: service, validator: validator}
}

// SubmitFeedback handles POST /api/feedback
func (h *FeedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateFeedbackRequest(req.Type, req.Content, req.Categories); len(errs) > 0 {
		return errs
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.service.SubmitFeedback(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListFeedback handles GET /api/feedback?status= (admin only)
func (h *FeedbackHandler) ListFeedback(c *fiber.Ctx) error {
	feedbacks, err := h.service.ListFeedback(c.Context(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(feedbacks)
}

// UpdateStatus handles PATCH /api/feedback/:id (admin only)
func (h *FeedbackHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}

	var req dto.UpdateFeedbackStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if err := h.service.UpdateStatus(c.Context(), id, &req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
