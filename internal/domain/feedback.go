package domain

import "time"

// Feedback statuses follow the review workflow used by administrators.
const (
	FeedbackStatusOpen     = "open"
	FeedbackStatusReviewed = "reviewed"
	FeedbackStatusResolved = "resolved"
)

// Feedback is a user report about content: a wrong answer key, a typo in an
// explanation, a request for more questions, and so on.
type Feedback struct {
	ID         string
	UserID     string
	BookID     string
	ChapterID  string
	QuestionID string
	Type       string
	Categories []string
	Content    string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewFeedback creates a feedback record in the open state.
func NewFeedback(userID, bookID, chapterID, questionID, feedbackType, content string, categories []string) *Feedback {
	now := time.Now()
	return &Feedback{
		UserID:     userID,
		BookID:     bookID,
		ChapterID:  chapterID,
		QuestionID: questionID,
		Type:       feedbackType,
		Categories: categories,
		Content:    content,
		Status:     FeedbackStatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate validates the feedback record.
func (f *Feedback) Validate() error {
	var errs ValidationErrors
	if f.Type == "" {
		errs = append(errs, NewMissingFieldError("feedback_type"))
	}
	if f.Content == "" && len(f.Categories) == 0 {
		errs = append(errs, ValidationError{
			Field:   "feedback_content",
			Message: "either content or at least one category is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
