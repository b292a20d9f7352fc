package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/repository/models"
	"studyquiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `
		id "id",
		question_id "question_id",
		book_id "book_id",
		chapter_id "chapter_id",
		set_id "set_id",
		question_text "question_text",
		option_a "option_a",
		option_b "option_b",
		option_c "option_c",
		option_d "option_d",
		correct_answer "correct_answer",
		explanation "explanation",
		difficulty "difficulty",
		question_type "question_type",
		created_at "created_at",
		updated_at "updated_at"`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// GetQuestionsByChapter implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionsByChapter(ctx context.Context, chapterID string) ([]*domain.Question, error) {
	executor := GetExecutor(ctx, a.db)
	var modelQuestions []models.Question
	query := `SELECT ` + questionColumns + `
	FROM questions
	WHERE chapter_id = :1
	ORDER BY question_id`

	if err := executor.SelectContext(ctx, &modelQuestions, query, chapterID); err != nil {
		return nil, fmt.Errorf("failed to get questions for chapter %s: %w", chapterID, err)
	}

	questions := make([]*domain.Question, 0, len(modelQuestions))
	for i := range modelQuestions {
		questions = append(questions, toDomainQuestion(&modelQuestions[i]))
	}
	return questions, nil
}

// GetQuestionByID implements domain.QuestionRepository. The lookup key is
// the business question ID, not the surrogate row ID.
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, questionID string) (*domain.Question, error) {
	executor := GetExecutor(ctx, a.db)
	var modelQuestion models.Question
	query := `SELECT ` + questionColumns + `
	FROM questions
	WHERE question_id = :1`

	err := executor.GetContext(ctx, &modelQuestion, query, questionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", questionID, err)
	}
	return toDomainQuestion(&modelQuestion), nil
}

// SaveQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	executor := GetExecutor(ctx, a.db)
	modelQuestion := toModelQuestion(question)
	if modelQuestion.ID == "" {
		modelQuestion.ID = util.NewULID()
	}
	modelQuestion.CreatedAt = time.Now()
	modelQuestion.UpdatedAt = time.Now()

	query := `INSERT INTO questions (
		id, question_id, book_id, chapter_id, set_id,
		question_text, option_a, option_b, option_c, option_d,
		correct_answer, explanation, difficulty, question_type,
		created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14, :15, :16
	)`

	_, err := executor.ExecContext(ctx, query,
		modelQuestion.ID,
		modelQuestion.QuestionID,
		modelQuestion.BookID,
		modelQuestion.ChapterID,
		modelQuestion.SetID,
		modelQuestion.QuestionText,
		modelQuestion.OptionA,
		modelQuestion.OptionB,
		modelQuestion.OptionC,
		modelQuestion.OptionD,
		modelQuestion.CorrectAnswer,
		modelQuestion.Explanation,
		modelQuestion.Difficulty,
		modelQuestion.QuestionType,
		modelQuestion.CreatedAt,
		modelQuestion.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question %s: %w", modelQuestion.QuestionID, err)
	}

	question.ID = modelQuestion.ID
	question.CreatedAt = modelQuestion.CreatedAt
	question.UpdatedAt = modelQuestion.UpdatedAt
	return nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:            m.ID,
		QuestionID:    m.QuestionID,
		BookID:        m.BookID,
		ChapterID:     m.ChapterID,
		SetID:         m.SetID.String,
		QuestionText:  m.QuestionText,
		OptionA:       m.OptionA,
		OptionB:       m.OptionB,
		OptionC:       m.OptionC,
		OptionD:       m.OptionD,
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation.String,
		Difficulty:    m.Difficulty,
		QuestionType:  m.QuestionType,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:            q.ID,
		QuestionID:    q.QuestionID,
		BookID:        q.BookID,
		ChapterID:     q.ChapterID,
		SetID:         util.StringToNullString(q.SetID),
		QuestionText:  q.QuestionText,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   util.StringToNullString(q.Explanation),
		Difficulty:    q.Difficulty,
		QuestionType:  q.QuestionType,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
