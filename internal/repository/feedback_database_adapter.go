package repository

import (
	"context"
	"fmt"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/repository/models"
	"studyquiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const feedbackColumns = `
		id "id",
		user_id "user_id",
		book_id "book_id",
		chapter_id "chapter_id",
		question_id "question_id",
		feedback_type "feedback_type",
		categories "categories",
		content "content",
		status "status",
		created_at "created_at",
		updated_at "updated_at"`

// FeedbackDatabaseAdapter implements domain.FeedbackRepository using sqlx
type FeedbackDatabaseAdapter struct {
	db *sqlx.DB
}

// NewFeedbackDatabaseAdapter creates a new instance of FeedbackDatabaseAdapter
func NewFeedbackDatabaseAdapter(db *sqlx.DB) domain.FeedbackRepository {
	return &FeedbackDatabaseAdapter{db: db}
}

// SaveFeedback implements domain.FeedbackRepository
func (a *FeedbackDatabaseAdapter) SaveFeedback(ctx context.Context, feedback *domain.Feedback) error {
	if feedback == nil {
		return fmt.Errorf("cannot save nil feedback")
	}
	executor := GetExecutor(ctx, a.db)
	modelFeedback := toModelFeedback(feedback)
	if modelFeedback.ID == "" {
		modelFeedback.ID = util.NewULID()
	}
	modelFeedback.CreatedAt = time.Now()
	modelFeedback.UpdatedAt = time.Now()

	query := `INSERT INTO feedback (
		id, user_id, book_id, chapter_id, question_id,
		feedback_type, categories, content, status, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11
	)`

	_, err := executor.ExecContext(ctx, query,
		modelFeedback.ID,
		modelFeedback.UserID,
		modelFeedback.BookID,
		modelFeedback.ChapterID,
		modelFeedback.QuestionID,
		modelFeedback.FeedbackType,
		modelFeedback.Categories,
		modelFeedback.Content,
		modelFeedback.Status,
		modelFeedback.CreatedAt,
		modelFeedback.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	feedback.ID = modelFeedback.ID
	feedback.CreatedAt = modelFeedback.CreatedAt
	feedback.UpdatedAt = modelFeedback.UpdatedAt
	return nil
}

// GetFeedbackByStatus implements domain.FeedbackRepository. An empty status
// returns every record.
func (a *FeedbackDatabaseAdapter) GetFeedbackByStatus(ctx context.Context, status string) ([]*domain.Feedback, error) {
	executor := GetExecutor(ctx, a.db)
	var modelFeedbacks []models.Feedback
	var err error

	if status == "" {
		query := `SELECT ` + feedbackColumns + ` FROM feedback ORDER BY created_at DESC`
		err = executor.SelectContext(ctx, &modelFeedbacks, query)
	} else {
		query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE status = :1 ORDER BY created_at DESC`
		err = executor.SelectContext(ctx, &modelFeedbacks, query, status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback by status %q: %w", status, err)
	}

	feedbacks := make([]*domain.Feedback, 0, len(modelFeedbacks))
	for i := range modelFeedbacks {
		feedbacks = append(feedbacks, toDomainFeedback(&modelFeedbacks[i]))
	}
	return feedbacks, nil
}

// UpdateFeedbackStatus implements domain.FeedbackRepository
func (a *FeedbackDatabaseAdapter) UpdateFeedbackStatus(ctx context.Context, id, status string) error {
	executor := GetExecutor(ctx, a.db)
	query := `UPDATE feedback SET status = :1, updated_at = :2 WHERE id = :3`

	_, err := executor.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update feedback %s status: %w", id, err)
	}
	return nil
}

func toDomainFeedback(m *models.Feedback) *domain.Feedback {
	return &domain.Feedback{
		ID:         m.ID,
		UserID:     m.UserID.String,
		BookID:     m.BookID.String,
		ChapterID:  m.ChapterID.String,
		QuestionID: m.QuestionID.String,
		Type:       m.FeedbackType,
		Categories: m.Categories,
		Content:    m.Content.String,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toModelFeedback(f *domain.Feedback) *models.Feedback {
	return &models.Feedback{
		ID:           f.ID,
		UserID:       util.StringToNullString(f.UserID),
		BookID:       util.StringToNullString(f.BookID),
		ChapterID:    util.StringToNullString(f.ChapterID),
		QuestionID:   util.StringToNullString(f.QuestionID),
		FeedbackType: f.Type,
		Categories:   models.StringSlice(f.Categories),
		Content:      util.StringToNullString(f.Content),
		Status:       f.Status,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}
