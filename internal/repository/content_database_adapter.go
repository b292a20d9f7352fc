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

const textbookColumns = `
		id "id",
		book_id "book_id",
		title "title",
		subject "subject",
		publisher "publisher",
		chapter_count "chapter_count",
		question_count "question_count",
		created_at "created_at",
		updated_at "updated_at"`

const chapterColumns = `
		id "id",
		chapter_id "chapter_id",
		book_id "book_id",
		title "title",
		position "position",
		question_count "question_count",
		description "description",
		created_at "created_at",
		updated_at "updated_at"`

// ContentDatabaseAdapter implements domain.ContentRepository using sqlx
type ContentDatabaseAdapter struct {
	db *sqlx.DB
}

// NewContentDatabaseAdapter creates a new instance of ContentDatabaseAdapter
func NewContentDatabaseAdapter(db *sqlx.DB) domain.ContentRepository {
	return &ContentDatabaseAdapter{db: db}
}

// GetTextbooks implements domain.ContentRepository. An empty subject
// returns every textbook.
func (a *ContentDatabaseAdapter) GetTextbooks(ctx context.Context, subject string) ([]*domain.Textbook, error) {
	executor := GetExecutor(ctx, a.db)
	var modelBooks []models.Textbook
	var err error

	if subject == "" {
		query := `SELECT ` + textbookColumns + ` FROM textbooks ORDER BY subject, book_id`
		err = executor.SelectContext(ctx, &modelBooks, query)
	} else {
		query := `SELECT ` + textbookColumns + ` FROM textbooks WHERE subject = :1 ORDER BY book_id`
		err = executor.SelectContext(ctx, &modelBooks, query, subject)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get textbooks: %w", err)
	}

	books := make([]*domain.Textbook, 0, len(modelBooks))
	for i := range modelBooks {
		books = append(books, toDomainTextbook(&modelBooks[i]))
	}
	return books, nil
}

// GetTextbookByID implements domain.ContentRepository
func (a *ContentDatabaseAdapter) GetTextbookByID(ctx context.Context, bookID string) (*domain.Textbook, error) {
	executor := GetExecutor(ctx, a.db)
	var modelBook models.Textbook
	query := `SELECT ` + textbookColumns + ` FROM textbooks WHERE book_id = :1`

	err := executor.GetContext(ctx, &modelBook, query, bookID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get textbook %s: %w", bookID, err)
	}
	return toDomainTextbook(&modelBook), nil
}

// GetChaptersByBook implements domain.ContentRepository
func (a *ContentDatabaseAdapter) GetChaptersByBook(ctx context.Context, bookID string) ([]*domain.Chapter, error) {
	executor := GetExecutor(ctx, a.db)
	var modelChapters []models.Chapter
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE book_id = :1 ORDER BY position`

	if err := executor.SelectContext(ctx, &modelChapters, query, bookID); err != nil {
		return nil, fmt.Errorf("failed to get chapters for book %s: %w", bookID, err)
	}

	chapters := make([]*domain.Chapter, 0, len(modelChapters))
	for i := range modelChapters {
		chapters = append(chapters, toDomainChapter(&modelChapters[i]))
	}
	return chapters, nil
}

// GetSubjectSummaries implements domain.ContentRepository
func (a *ContentDatabaseAdapter) GetSubjectSummaries(ctx context.Context) ([]*domain.SubjectSummary, error) {
	executor := GetExecutor(ctx, a.db)
	var rows []struct {
		Subject       string `db:"subject"`
		BookCount     int    `db:"book_count"`
		ChapterCount  int    `db:"chapter_count"`
		QuestionCount int    `db:"question_count"`
	}
	query := `SELECT
		subject "subject",
		COUNT(*) "book_count",
		SUM(chapter_count) "chapter_count",
		SUM(question_count) "question_count"
	FROM textbooks
	GROUP BY subject
	ORDER BY subject`

	if err := executor.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get subject summaries: %w", err)
	}

	summaries := make([]*domain.SubjectSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, &domain.SubjectSummary{
			Subject:       r.Subject,
			BookCount:     r.BookCount,
			ChapterCount:  r.ChapterCount,
			QuestionCount: r.QuestionCount,
		})
	}
	return summaries, nil
}

// SaveTextbook implements domain.ContentRepository
func (a *ContentDatabaseAdapter) SaveTextbook(ctx context.Context, book *domain.Textbook) error {
	if book == nil {
		return fmt.Errorf("cannot save nil textbook")
	}
	executor := GetExecutor(ctx, a.db)
	modelBook := toModelTextbook(book)
	if modelBook.ID == "" {
		modelBook.ID = util.NewULID()
	}
	modelBook.CreatedAt = time.Now()
	modelBook.UpdatedAt = time.Now()

	query := `INSERT INTO textbooks (
		id, book_id, title, subject, publisher,
		chapter_count, question_count, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	_, err := executor.ExecContext(ctx, query,
		modelBook.ID,
		modelBook.BookID,
		modelBook.Title,
		modelBook.Subject,
		modelBook.Publisher,
		modelBook.ChapterCount,
		modelBook.QuestionCount,
		modelBook.CreatedAt,
		modelBook.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save textbook %s: %w", modelBook.BookID, err)
	}

	book.ID = modelBook.ID
	book.CreatedAt = modelBook.CreatedAt
	book.UpdatedAt = modelBook.UpdatedAt
	return nil
}

// SaveChapter implements domain.ContentRepository
func (a *ContentDatabaseAdapter) SaveChapter(ctx context.Context, chapter *domain.Chapter) error {
	if chapter == nil {
		return fmt.Errorf("cannot save nil chapter")
	}
	executor := GetExecutor(ctx, a.db)
	modelChapter := toModelChapter(chapter)
	if modelChapter.ID == "" {
		modelChapter.ID = util.NewULID()
	}
	modelChapter.CreatedAt = time.Now()
	modelChapter.UpdatedAt = time.Now()

	query := `INSERT INTO chapters (
		id, chapter_id, book_id, title, position,
		question_count, description, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	_, err := executor.ExecContext(ctx, query,
		modelChapter.ID,
		modelChapter.ChapterID,
		modelChapter.BookID,
		modelChapter.Title,
		modelChapter.Position,
		modelChapter.QuestionCount,
		modelChapter.Description,
		modelChapter.CreatedAt,
		modelChapter.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save chapter %s: %w", modelChapter.ChapterID, err)
	}

	chapter.ID = modelChapter.ID
	chapter.CreatedAt = modelChapter.CreatedAt
	chapter.UpdatedAt = modelChapter.UpdatedAt
	return nil
}

func toDomainTextbook(m *models.Textbook) *domain.Textbook {
	return &domain.Textbook{
		ID:            m.ID,
		BookID:        m.BookID,
		Title:         m.Title,
		Subject:       m.Subject,
		Publisher:     m.Publisher,
		ChapterCount:  m.ChapterCount,
		QuestionCount: m.QuestionCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toModelTextbook(b *domain.Textbook) *models.Textbook {
	return &models.Textbook{
		ID:            b.ID,
		BookID:        b.BookID,
		Title:         b.Title,
		Subject:       b.Subject,
		Publisher:     b.Publisher,
		ChapterCount:  b.ChapterCount,
		QuestionCount: b.QuestionCount,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toDomainChapter(m *models.Chapter) *domain.Chapter {
	return &domain.Chapter{
		ID:            m.ID,
		ChapterID:     m.ChapterID,
		BookID:        m.BookID,
		Title:         m.Title,
		Position:      m.Position,
		QuestionCount: m.QuestionCount,
		Description:   m.Description.String,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toModelChapter(c *domain.Chapter) *models.Chapter {
	return &models.Chapter{
		ID:            c.ID,
		ChapterID:     c.ChapterID,
		BookID:        c.BookID,
		Title:         c.Title,
		Position:      c.Position,
		QuestionCount: c.QuestionCount,
		Description:   util.StringToNullString(c.Description),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
