package domain

import "context"

// QuestionRepository defines the read side of the question content store.
// Implementations must not return nil slices for "no rows"; absence is
// reported by the caller as a NOT_FOUND condition.
type QuestionRepository interface {
	// GetQuestionsByChapter returns every question belonging to a chapter.
	GetQuestionsByChapter(ctx context.Context, chapterID string) ([]*Question, error)

	// GetQuestionByID retrieves a question by its business key.
	GetQuestionByID(ctx context.Context, questionID string) (*Question, error)

	// SaveQuestion persists a new question.
	SaveQuestion(ctx context.Context, question *Question) error
}

// ContentRepository defines persistence for the textbook/chapter catalogue.
type ContentRepository interface {
	// GetTextbooks returns all textbooks, optionally filtered by subject
	// (empty subject means all).
	GetTextbooks(ctx context.Context, subject string) ([]*Textbook, error)

	// GetTextbookByID retrieves a textbook by its business key.
	GetTextbookByID(ctx context.Context, bookID string) (*Textbook, error)

	// GetChaptersByBook returns a book's chapters ordered by position.
	GetChaptersByBook(ctx context.Context, bookID string) ([]*Chapter, error)

	// GetSubjectSummaries aggregates the catalogue per subject.
	GetSubjectSummaries(ctx context.Context) ([]*SubjectSummary, error)

	// SaveTextbook persists a new textbook.
	SaveTextbook(ctx context.Context, textbook *Textbook) error

	// SaveChapter persists a new chapter.
	SaveChapter(ctx context.Context, chapter *Chapter) error
}

// ResultRepository defines persistence for completed session results.
type ResultRepository interface {
	// SaveResult persists one completed session's score.
	SaveResult(ctx context.Context, result *TestResult) error

	// GetResultsByUser returns a user's results, most recent first.
	GetResultsByUser(ctx context.Context, userID string) ([]*TestResult, error)
}

// FeedbackRepository defines persistence for user feedback records.
type FeedbackRepository interface {
	// SaveFeedback persists a new feedback record.
	SaveFeedback(ctx context.Context, feedback *Feedback) error

	// GetFeedbackByStatus returns feedback records in a review state
	// (empty status means all), most recent first.
	GetFeedbackByStatus(ctx context.Context, status string) ([]*Feedback, error)

	// UpdateFeedbackStatus moves a feedback record through the review
	// workflow.
	UpdateFeedbackStatus(ctx context.Context, id, status string) error
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// GetUserByID retrieves a user by ID, nil when absent.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByUsername retrieves a user by username, nil when absent.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// SaveUser persists a new user account.
	SaveUser(ctx context.Context, user *User) error
}

// TransactionManager runs a function within a database transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
