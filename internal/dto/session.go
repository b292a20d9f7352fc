package dto

import "time"

// StartSessionRequest is the request body for starting a test session
type StartSessionRequest struct {
	BookID    string `json:"book_id"`
	ChapterID string `json:"chapter_id"`
	SetID     string `json:"set_id,omitempty"`
}

// SessionQuestionResponse is one question as presented to the client.
// The correct answer never appears here; grading happens server side.
type SessionQuestionResponse struct {
	QuestionID   string   `json:"question_id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Flagged      bool     `json:"flagged"`
	Answered     bool     `json:"answered"`
	UserAnswer   string   `json:"user_answer,omitempty"`
}

// SessionResponse represents a test session in the API response
type SessionResponse struct {
	SessionID    string                     `json:"session_id"`
	BookID       string                     `json:"book_id"`
	ChapterID    string                     `json:"chapter_id"`
	SetID        string                     `json:"set_id"`
	State        string                     `json:"state"`
	CurrentIndex int                        `json:"current_index"`
	Questions    []*SessionQuestionResponse `json:"questions"`
	StartedAt    time.Time                  `json:"started_at"`
}

// SubmitAnswerRequest is the request body for answering one question
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// AnswerFeedbackResponse is the immediate grading feedback for one answer
type AnswerFeedbackResponse struct {
	IsCorrect       bool   `json:"is_correct"`
	AlreadyAnswered bool   `json:"already_answered"`
	CorrectText     string `json:"correct_text"`
	Explanation     string `json:"explanation,omitempty"`
}

// AdvanceResponse reports the result of moving to the next question.
// Question is set while the session continues; Report is set exactly when
// advancing past the last question completed the session.
type AdvanceResponse struct {
	CurrentIndex int                      `json:"current_index"`
	Completed    bool                     `json:"completed"`
	State        string                   `json:"state"`
	Question     *SessionQuestionResponse `json:"question,omitempty"`
	Report       *ScoreReportResponse     `json:"report,omitempty"`
}

// ToggleFlagRequest is the request body for flagging a question for review
type ToggleFlagRequest struct {
	QuestionID string `json:"question_id"`
}

// ToggleFlagResponse reports the flag state after toggling
type ToggleFlagResponse struct {
	QuestionID string `json:"question_id"`
	Flagged    bool   `json:"flagged"`
}

// ReportEntryResponse is one question's outcome in the final report
type ReportEntryResponse struct {
	QuestionID   string   `json:"question_id"`
	QuestionText string   `json:"question_text"`
	UserAnswer   string   `json:"user_answer,omitempty"`
	Outcome      string   `json:"outcome"`
	CorrectText  string   `json:"correct_text"`
	Explanation  string   `json:"explanation,omitempty"`
	PageRefs     []string `json:"page_refs,omitempty"`
}

// ScoreReportResponse is the final score report for a completed session
type ScoreReportResponse struct {
	SessionID    string                 `json:"session_id"`
	CorrectCount int                    `json:"correct_count"`
	Total        int                    `json:"total"`
	Percentage   int                    `json:"percentage"`
	Breakdown    []*ReportEntryResponse `json:"breakdown"`
	CompletedAt  time.Time              `json:"completed_at"`
}

// TestResultResponse is one persisted result in a user's history
type TestResultResponse struct {
	SessionID   string    `json:"session_id"`
	BookID      string    `json:"book_id"`
	ChapterID   string    `json:"chapter_id"`
	SetID       string    `json:"set_id,omitempty"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  int       `json:"percentage"`
	CompletedAt time.Time `json:"completed_at"`
}
