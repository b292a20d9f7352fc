package models

import (
	"database/sql"
	"time"
)

// Question is the questions table row.
type Question struct {
	ID            string         `db:"id"`
	QuestionID    string         `db:"question_id"`
	BookID        string         `db:"book_id"`
	ChapterID     string         `db:"chapter_id"`
	SetID         sql.NullString `db:"set_id"`
	QuestionText  string         `db:"question_text"`
	OptionA       string         `db:"option_a"`
	OptionB       string         `db:"option_b"`
	OptionC       string         `db:"option_c"`
	OptionD       string         `db:"option_d"`
	CorrectAnswer string         `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
	Difficulty    int            `db:"difficulty"`
	QuestionType  string         `db:"question_type"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Textbook is the textbooks table row.
type Textbook struct {
	ID            string    `db:"id"`
	BookID        string    `db:"book_id"`
	Title         string    `db:"title"`
	Subject       string    `db:"subject"`
	Publisher     string    `db:"publisher"`
	ChapterCount  int       `db:"chapter_count"`
	QuestionCount int       `db:"question_count"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Chapter is the chapters table row.
type Chapter struct {
	ID            string         `db:"id"`
	ChapterID     string         `db:"chapter_id"`
	BookID        string         `db:"book_id"`
	Title         string         `db:"title"`
	Position      int            `db:"position"`
	QuestionCount int            `db:"question_count"`
	Description   sql.NullString `db:"description"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// TestResult is the test_results table row.
type TestResult struct {
	ID          string         `db:"id"`
	SessionID   string         `db:"session_id"`
	UserID      string         `db:"user_id"`
	BookID      string         `db:"book_id"`
	ChapterID   string         `db:"chapter_id"`
	SetID       sql.NullString `db:"set_id"`
	Score       int            `db:"score"`
	TotalCount  int            `db:"total_count"`
	Percentage  int            `db:"percentage"`
	CompletedAt time.Time      `db:"completed_at"`
}

// Feedback is the feedback table row.
type Feedback struct {
	ID           string         `db:"id"`
	UserID       sql.NullString `db:"user_id"`
	BookID       sql.NullString `db:"book_id"`
	ChapterID    sql.NullString `db:"chapter_id"`
	QuestionID   sql.NullString `db:"question_id"`
	FeedbackType string         `db:"feedback_type"`
	Categories   StringSlice    `db:"categories"`
	Content      sql.NullString `db:"content"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// User is the users table row.
type User struct {
	ID           string         `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Nickname     sql.NullString `db:"nickname"`
	Affiliation  sql.NullString `db:"affiliation"`
	UserRole     string         `db:"user_role"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    sql.NullTime   `db:"deleted_at"`
}
