package dto

import "time"

// FeedbackRequest is the request body for submitting content feedback
type FeedbackRequest struct {
	BookID     string   `json:"book_id,omitempty"`
	ChapterID  string   `json:"chapter_id,omitempty"`
	QuestionID string   `json:"question_id,omitempty"`
	Type       string   `json:"type"`
	Categories []string `json:"categories,omitempty"`
	Content    string   `json:"content,omitempty"`
}

// FeedbackResponse represents a feedback record in the API response
type FeedbackResponse struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id,omitempty"`
	ChapterID  string    `json:"chapter_id,omitempty"`
	QuestionID string    `json:"question_id,omitempty"`
	Type       string    `json:"type"`
	Categories []string  `json:"categories,omitempty"`
	Content    string    `json:"content,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// UpdateFeedbackStatusRequest moves a feedback record through the review workflow
type UpdateFeedbackStatusRequest struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
