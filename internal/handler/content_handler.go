package handler

import (
	"studyquiz/internal/domain"
	"studyquiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler serves the textbook/chapter catalogue.
type ContentHandler struct {
	service service.ContentService
}

// NewContentHandler creates a new ContentHandler instance
func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// GetSubjects handles GET /api/subjects
func (h *ContentHandler) GetSubjects(c *fiber.Ctx) error {
	subjects, err := h.service.GetSubjects(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(subjects)
}

// GetTextbooks handles GET /api/textbooks?subject=
func (h *ContentHandler) GetTextbooks(c *fiber.Ctx) error {
	books, err := h.service.GetTextbooks(c.Context(), c.Query("subject"))
	if err != nil {
		return err
	}
	return c.JSON(books)
}

// GetChapters handles GET /api/chapters?book_id=
func (h *ContentHandler) GetChapters(c *fiber.Ctx) error {
	bookID := c.Query("book_id")
	if bookID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("book_id")}
	}

	chapters, err := h.service.GetChapters(c.Context(), bookID)
	if err != nil {
		return err
	}
	return c.JSON(chapters)
}
