package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

var questionRowColumns = []string{
	"id", "question_id", "book_id", "chapter_id", "set_id",
	"question_text", "option_a", "option_b", "option_c", "option_d",
	"correct_answer", "explanation", "difficulty", "question_type",
	"created_at", "updated_at",
}

func TestToDomainQuestion(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	modelQuestion := &models.Question{
		ID:            "01HQX",
		QuestionID:    "E01-C00-01-002",
		BookID:        "eng-01",
		ChapterID:     "E01-C00",
		SetID:         sql.NullString{String: "E01-C00-01", Valid: true},
		QuestionText:  "次の単語の品詞は？",
		OptionA:       "名詞",
		OptionB:       "動詞",
		OptionC:       "形容詞",
		OptionD:       "副詞",
		CorrectAnswer: "C",
		Explanation:   sql.NullString{String: "解説はP12を参照。", Valid: true},
		Difficulty:    2,
		QuestionType:  "multiple_choice",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	q := toDomainQuestion(modelQuestion)
	assert.NotNil(t, q)
	assert.Equal(t, modelQuestion.ID, q.ID)
	assert.Equal(t, modelQuestion.QuestionID, q.QuestionID)
	assert.Equal(t, "E01-C00-01", q.SetID)
	assert.Equal(t, "解説はP12を参照。", q.Explanation)
	assert.Equal(t, "C", q.CorrectAnswer)
	assert.True(t, modelQuestion.CreatedAt.Equal(q.CreatedAt))

	// Null set_id maps to an empty string; EffectiveSetID derives it instead.
	modelQuestion.SetID.Valid = false
	q = toDomainQuestion(modelQuestion)
	assert.Equal(t, "", q.SetID)
	assert.Equal(t, "E01-C00-01", q.EffectiveSetID())
}

func TestToModelQuestion(t *testing.T) {
	q := &domain.Question{
		QuestionID:    "E01-C00-01-001",
		BookID:        "eng-01",
		ChapterID:     "E01-C00",
		QuestionText:  "text",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: "A",
	}

	m := toModelQuestion(q)
	assert.NotNil(t, m)
	assert.Equal(t, q.QuestionID, m.QuestionID)
	assert.False(t, m.SetID.Valid, "empty set_id stores as NULL")
	assert.False(t, m.Explanation.Valid, "empty explanation stores as NULL")
}

func TestQuestionDatabaseAdapter_GetQuestionsByChapter(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewQuestionDatabaseAdapter(db)

	now := time.Now()
	rows := sqlmock.NewRows(questionRowColumns).
		AddRow("01A", "E01-C00-01-001", "eng-01", "E01-C00", "E01-C00-01",
			"q1", "a", "b", "c", "d", "A", "exp", 1, "multiple_choice", now, now).
		AddRow("01B", "E01-C00-01-002", "eng-01", "E01-C00", "E01-C00-01",
			"q2", "a", "b", "c", "d", "B", nil, 1, "multiple_choice", now, now)

	mock.ExpectQuery(`SELECT .* FROM questions\s+WHERE chapter_id = :1\s+ORDER BY question_id`).
		WithArgs("E01-C00").
		WillReturnRows(rows)

	questions, err := adapter.GetQuestionsByChapter(context.Background(), "E01-C00")

	assert.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.Equal(t, "E01-C00-01-001", questions[0].QuestionID)
	assert.Equal(t, "", questions[1].Explanation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_GetQuestionsByChapter_Empty(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT .* FROM questions\s+WHERE chapter_id = :1`).
		WithArgs("no-such-chapter").
		WillReturnRows(sqlmock.NewRows(questionRowColumns))

	questions, err := adapter.GetQuestionsByChapter(context.Background(), "no-such-chapter")

	assert.NoError(t, err)
	assert.Empty(t, questions)
	assert.NotNil(t, questions, "empty chapter yields an empty slice, not nil")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_GetQuestionByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT .* FROM questions\s+WHERE question_id = :1`).
		WithArgs("E99-C99-99-999").
		WillReturnError(sql.ErrNoRows)

	q, err := adapter.GetQuestionByID(context.Background(), "E99-C99-99-999")

	assert.NoError(t, err, "not found is nil, nil")
	assert.Nil(t, q)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_SaveQuestion(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewQuestionDatabaseAdapter(db)

	q := &domain.Question{
		QuestionID:    "E01-C00-01-003",
		BookID:        "eng-01",
		ChapterID:     "E01-C00",
		SetID:         "E01-C00-01",
		QuestionText:  "text",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: "D",
	}

	mock.ExpectExec(`INSERT INTO questions`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.SaveQuestion(context.Background(), q)

	assert.NoError(t, err)
	assert.NotEmpty(t, q.ID, "save assigns a ULID")
	assert.False(t, q.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionDatabaseAdapter_SaveQuestion_Nil(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()
	adapter := NewQuestionDatabaseAdapter(db)

	err := adapter.SaveQuestion(context.Background(), nil)
	assert.Error(t, err)
}
