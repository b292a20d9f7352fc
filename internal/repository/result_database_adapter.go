package repository

import (
	"context"
	"fmt"

	"studyquiz/internal/domain"
	"studyquiz/internal/repository/models"
	"studyquiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// ResultDatabaseAdapter implements domain.ResultRepository using sqlx
type ResultDatabaseAdapter struct {
	db *sqlx.DB
}

// NewResultDatabaseAdapter creates a new instance of ResultDatabaseAdapter
func NewResultDatabaseAdapter(db *sqlx.DB) domain.ResultRepository {
	return &ResultDatabaseAdapter{db: db}
}

// SaveResult implements domain.ResultRepository
func (a *ResultDatabaseAdapter) SaveResult(ctx context.Context, result *domain.TestResult) error {
	if result == nil {
		return fmt.Errorf("cannot save nil result")
	}
	executor := GetExecutor(ctx, a.db)
	modelResult := toModelTestResult(result)
	if modelResult.ID == "" {
		modelResult.ID = util.NewULID()
	}

	query := `INSERT INTO test_results (
		id, session_id, user_id, book_id, chapter_id, set_id,
		score, total_count, percentage, completed_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10
	)`

	_, err := executor.ExecContext(ctx, query,
		modelResult.ID,
		modelResult.SessionID,
		modelResult.UserID,
		modelResult.BookID,
		modelResult.ChapterID,
		modelResult.SetID,
		modelResult.Score,
		modelResult.TotalCount,
		modelResult.Percentage,
		modelResult.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save result for session %s: %w", modelResult.SessionID, err)
	}

	result.ID = modelResult.ID
	return nil
}

// GetResultsByUser implements domain.ResultRepository
func (a *ResultDatabaseAdapter) GetResultsByUser(ctx context.Context, userID string) ([]*domain.TestResult, error) {
	executor := GetExecutor(ctx, a.db)
	var modelResults []models.TestResult
	query := `SELECT
		id "id",
		session_id "session_id",
		user_id "user_id",
		book_id "book_id",
		chapter_id "chapter_id",
		set_id "set_id",
		score "score",
		total_count "total_count",
		percentage "percentage",
		completed_at "completed_at"
	FROM test_results
	WHERE user_id = :1
	ORDER BY completed_at DESC`

	if err := executor.SelectContext(ctx, &modelResults, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get results for user %s: %w", userID, err)
	}

	results := make([]*domain.TestResult, 0, len(modelResults))
	for i := range modelResults {
		results = append(results, toDomainTestResult(&modelResults[i]))
	}
	return results, nil
}

func toDomainTestResult(m *models.TestResult) *domain.TestResult {
	return &domain.TestResult{
		ID:          m.ID,
		SessionID:   m.SessionID,
		UserID:      m.UserID,
		BookID:      m.BookID,
		ChapterID:   m.ChapterID,
		SetID:       m.SetID.String,
		Score:       m.Score,
		Total:       m.TotalCount,
		Percentage:  m.Percentage,
		CompletedAt: m.CompletedAt,
	}
}

func toModelTestResult(r *domain.TestResult) *models.TestResult {
	return &models.TestResult{
		ID:          r.ID,
		SessionID:   r.SessionID,
		UserID:      r.UserID,
		BookID:      r.BookID,
		ChapterID:   r.ChapterID,
		SetID:       util.StringToNullString(r.SetID),
		Score:       r.Score,
		TotalCount:  r.Total,
		Percentage:  r.Percentage,
		CompletedAt: r.CompletedAt,
	}
}
