package domain

import "time"

// Textbook represents one study book in the catalogue.
type Textbook struct {
	ID            string
	BookID        string
	Title         string
	Subject       string
	Publisher     string
	ChapterCount  int
	QuestionCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate validates the textbook record.
func (t *Textbook) Validate() error {
	var errs ValidationErrors
	if t.BookID == "" {
		errs = append(errs, NewMissingFieldError("book_id"))
	}
	if t.Title == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if t.Subject == "" {
		errs = append(errs, NewMissingFieldError("subject"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Chapter represents one chapter of a textbook.
type Chapter struct {
	ID            string
	ChapterID     string
	BookID        string
	Title         string
	Position      int
	QuestionCount int
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate validates the chapter record.
func (c *Chapter) Validate() error {
	var errs ValidationErrors
	if c.ChapterID == "" {
		errs = append(errs, NewMissingFieldError("chapter_id"))
	}
	if c.BookID == "" {
		errs = append(errs, NewMissingFieldError("book_id"))
	}
	if c.Title == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubjectSummary aggregates the catalogue per subject for the dashboard.
type SubjectSummary struct {
	Subject       string
	BookCount     int
	ChapterCount  int
	QuestionCount int
}
