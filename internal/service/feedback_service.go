package service

import (
	"context"

	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"

	"go.uber.org/zap"
)

// FeedbackService accepts content reports from users and lets administrators
// walk them through the review workflow.
type FeedbackService interface {
	SubmitFeedback(ctx context.Context, userID string, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
	ListFeedback(ctx context.Context, status string) ([]*dto.FeedbackResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateFeedbackStatusRequest) error
}

type feedbackServiceImpl struct {
	repo domain.FeedbackRepository
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(repo domain.FeedbackRepository) FeedbackService {
	return &feedbackServiceImpl{repo: repo}
}

// SubmitFeedback stores a new report in the open state. userID may be empty
// for anonymous reports.
func (s *feedbackServiceImpl) SubmitFeedback(ctx context.Context, userID string, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	feedback := domain.NewFeedback(userID, req.BookID, req.ChapterID, req.QuestionID,
		req.Type, req.Content, req.Categories)
	if err := feedback.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveFeedback(ctx, feedback); err != nil {
		logger.Get().Error("Failed to save feedback", zap.Error(err))
		return nil, domain.NewInternalError("failed to save feedback", err)
	}

	logger.Get().Info("Feedback submitted",
		zap.String("feedbackID", feedback.ID),
		zap.String("type", feedback.Type),
		zap.String("questionID", feedback.QuestionID))
	return toFeedbackResponse(feedback), nil
}

func (s *feedbackServiceImpl) ListFeedback(ctx context.Context, status string) ([]*dto.FeedbackResponse, error) {
	if status != "" && !isValidFeedbackStatus(status) {
		return nil, domain.NewInvalidInputError("unknown feedback status " + status)
	}

	feedbacks, err := s.repo.GetFeedbackByStatus(ctx, status)
	if err != nil {
		return nil, domain.NewInternalError("failed to load feedback", err)
	}

	responses := make([]*dto.FeedbackResponse, 0, len(feedbacks))
	for _, fb := range feedbacks {
		responses = append(responses, toFeedbackResponse(fb))
	}
	return responses, nil
}

func (s *feedbackServiceImpl) UpdateStatus(ctx context.Context, id string, req *dto.UpdateFeedbackStatusRequest) error {
	if !isValidFeedbackStatus(req.Status) {
		return domain.NewInvalidInputError("unknown feedback status " + req.Status)
	}
	if err := s.repo.UpdateFeedbackStatus(ctx, id, req.Status); err != nil {
		return domain.NewInternalError("failed to update feedback status", err)
	}
	return nil
}

func isValidFeedbackStatus(status string) bool {
	switch status {
	case domain.FeedbackStatusOpen, domain.FeedbackStatusReviewed, domain.FeedbackStatusResolved:
		return true
	}
	return false
}

func toFeedbackResponse(fb *domain.Feedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		ID:         fb.ID,
		BookID:     fb.BookID,
		ChapterID:  fb.ChapterID,
		QuestionID: fb.QuestionID,
		Type:       fb.Type,
		Categories: fb.Categories,
		Content:    fb.Content,
		Status:     fb.Status,
		CreatedAt:  fb.CreatedAt,
	}
}
