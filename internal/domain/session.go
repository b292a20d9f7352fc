package domain

import (
	"fmt"
	"math"
	"time"
)

// SessionState is the lifecycle state of a test session.
type SessionState string

const (
	SessionNotStarted SessionState = "not_started"
	SessionInProgress SessionState = "in_progress"
	SessionCompleted  SessionState = "completed"
)

// AnswerOutcome is the per-question grading outcome. Unanswered questions
// are reported distinctly, not collapsed into incorrect.
type AnswerOutcome string

const (
	OutcomeCorrect    AnswerOutcome = "correct"
	OutcomeIncorrect  AnswerOutcome = "incorrect"
	OutcomeUnanswered AnswerOutcome = "unanswered"
)

// AnswerFeedback is the immediate feedback returned when a question is
// answered.
type AnswerFeedback struct {
	IsCorrect       bool
	AlreadyAnswered bool
	CorrectText     string
	Explanation     string
}

// ReportEntry is one question's line in the final score report.
type ReportEntry struct {
	QuestionID   string
	QuestionText string
	UserAnswer   string
	Outcome      AnswerOutcome
	CorrectText  string
	Explanation  string
	PageRefs     []PageRef
}

// ScoreReport is the terminal grading result of one session.
type ScoreReport struct {
	SessionID    string
	CorrectCount int
	Total        int
	Percentage   int
	Breakdown    []ReportEntry
	CompletedAt  time.Time
}

// Percentage computes round(100 * correct / total), guarding total == 0.
func Percentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// TestSession is one user's attempt at a sampled question set.
//
// The session is a single-writer state machine: NotStarted -> InProgress ->
// Completed, with no way back. Callers that share a session across
// goroutines must serialize access; the session store does this by handing
// out copies and persisting whole sessions atomically.
type TestSession struct {
	ID           string
	UserID       string
	BookID       string
	ChapterID    string
	SetID        string
	State        SessionState
	Questions    []*SessionQuestion
	Answers      map[string]string
	CorrectCount int
	CurrentIndex int
	Flagged      map[string]bool
	StartedAt    time.Time
	Result       *ScoreReport
}

// NewTestSession creates a session in NotStarted. UserID may be empty for
// anonymous attempts.
func NewTestSession(id, userID, bookID, chapterID, setID string) *TestSession {
	return &TestSession{
		ID:        id,
		UserID:    userID,
		BookID:    bookID,
		ChapterID: chapterID,
		SetID:     setID,
		State:     SessionNotStarted,
	}
}

// Start transitions NotStarted -> InProgress with the sampled, shuffled
// question sequence. Question and option order are fixed from here on.
func (s *TestSession) Start(questions []*SessionQuestion) error {
	if s.State != SessionNotStarted {
		return NewInvalidStateError(fmt.Sprintf("cannot start session in state %s", s.State))
	}
	if len(questions) == 0 {
		return NewInvalidInputError("cannot start a session with no questions")
	}
	s.Questions = questions
	s.Answers = make(map[string]string)
	s.Flagged = make(map[string]bool)
	s.CurrentIndex = 0
	s.CorrectCount = 0
	s.StartedAt = time.Now()
	s.State = SessionInProgress
	return nil
}

// CurrentQuestion returns the question at the presentation pointer, or nil
// when the session holds no questions.
func (s *TestSession) CurrentQuestion() *SessionQuestion {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.CurrentIndex]
}

func (s *TestSession) findQuestion(questionID string) *SessionQuestion {
	for _, sq := range s.Questions {
		if sq.Question.QuestionID == questionID {
			return sq
		}
	}
	return nil
}

// Answer records the user's selected option text for a question and returns
// immediate feedback.
//
// Answering is idempotent: the first answer wins, and answering an already
// answered question is a no-op that reports the recorded answer's outcome.
func (s *TestSession) Answer(questionID, selectedText string) (*AnswerFeedback, error) {
	if s.State != SessionInProgress {
		return nil, NewInvalidStateError(fmt.Sprintf("cannot answer in state %s", s.State))
	}
	sq := s.findQuestion(questionID)
	if sq == nil {
		return nil, NewInvalidInputError(fmt.Sprintf("question %s is not part of this session", questionID))
	}

	if recorded, ok := s.Answers[questionID]; ok {
		return &AnswerFeedback{
			IsCorrect:       sq.IsCorrectText(recorded),
			AlreadyAnswered: true,
			CorrectText:     sq.OriginalCorrectText,
			Explanation:     sq.Question.Explanation,
		}, nil
	}

	s.Answers[questionID] = selectedText
	correct := sq.IsCorrectText(selectedText)
	if correct {
		s.CorrectCount++
	}
	return &AnswerFeedback{
		IsCorrect:   correct,
		CorrectText: sq.OriginalCorrectText,
		Explanation: sq.Question.Explanation,
	}, nil
}

// Advance moves the presentation pointer to the next question. Advancing
// past the last question completes the session and finalizes the report.
// The returned question is nil exactly when completed is true.
func (s *TestSession) Advance() (next *SessionQuestion, completed bool, err error) {
	if s.State != SessionInProgress {
		return nil, false, NewInvalidStateError(fmt.Sprintf("cannot advance in state %s", s.State))
	}
	if s.CurrentIndex >= len(s.Questions)-1 {
		s.finalize()
		return nil, true, nil
	}
	s.CurrentIndex++
	return s.Questions[s.CurrentIndex], false, nil
}

// ToggleFlag marks or unmarks a question for review. Flags are bookkeeping
// only and never affect grading.
func (s *TestSession) ToggleFlag(questionID string) (flagged bool, err error) {
	if s.State != SessionInProgress {
		return false, NewInvalidStateError(fmt.Sprintf("cannot flag in state %s", s.State))
	}
	if s.findQuestion(questionID) == nil {
		return false, NewInvalidInputError(fmt.Sprintf("question %s is not part of this session", questionID))
	}
	if s.Flagged[questionID] {
		delete(s.Flagged, questionID)
		return false, nil
	}
	s.Flagged[questionID] = true
	return true, nil
}

// Finalize force-completes the session (timeout or explicit submit) and
// returns the score report. Finalizing an already completed session returns
// the existing report unchanged.
func (s *TestSession) Finalize() (*ScoreReport, error) {
	switch s.State {
	case SessionCompleted:
		return s.Result, nil
	case SessionInProgress:
		s.finalize()
		return s.Result, nil
	default:
		return nil, NewInvalidStateError(fmt.Sprintf("cannot finalize session in state %s", s.State))
	}
}

// Report returns the score report. Valid only after completion.
func (s *TestSession) Report() (*ScoreReport, error) {
	if s.State != SessionCompleted {
		return nil, NewInvalidStateError(fmt.Sprintf("report is not available in state %s", s.State))
	}
	return s.Result, nil
}

func (s *TestSession) finalize() {
	breakdown := make([]ReportEntry, 0, len(s.Questions))
	for _, sq := range s.Questions {
		entry := ReportEntry{
			QuestionID:   sq.Question.QuestionID,
			QuestionText: sq.Question.QuestionText,
			CorrectText:  sq.OriginalCorrectText,
			Explanation:  sq.Question.Explanation,
			PageRefs:     ExtractPageRefs(sq.Question.Explanation),
		}
		if answer, ok := s.Answers[sq.Question.QuestionID]; ok {
			entry.UserAnswer = answer
			if sq.IsCorrectText(answer) {
				entry.Outcome = OutcomeCorrect
			} else {
				entry.Outcome = OutcomeIncorrect
			}
		} else {
			entry.Outcome = OutcomeUnanswered
		}
		breakdown = append(breakdown, entry)
	}

	s.Result = &ScoreReport{
		SessionID:    s.ID,
		CorrectCount: s.CorrectCount,
		Total:        len(s.Questions),
		Percentage:   Percentage(s.CorrectCount, len(s.Questions)),
		Breakdown:    breakdown,
		CompletedAt:  time.Now(),
	}
	s.State = SessionCompleted
}
