package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// OptionLabels enumerates the authored option positions, in order.
var OptionLabels = []string{"A", "B", "C", "D"}

// Option pairs an option label with its text.
type Option struct {
	Label string
	Text  string
}

// Question represents one immutable multiple-choice content record.
//
// QuestionID is the business key and encodes set membership:
// {subjectPrefix}{bookNumber}-C{chapterNumber}-{setNumber}-{sequence},
// e.g. "E01-C00-01-002" belongs to set "E01-C00-01".
type Question struct {
	ID            string
	QuestionID    string
	BookID        string
	ChapterID     string
	SetID         string
	QuestionText  string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
	Explanation   string
	Difficulty    int
	QuestionType  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// setIDPattern captures the set prefix of a question ID, e.g. "E01-C00-01" from "E01-C00-01-002".
var setIDPattern = regexp.MustCompile(`^([A-Za-z]+\d+-C\d+-\d+)-\d+$`)

// EffectiveSetID returns the stored set ID, falling back to the set prefix
// derived from the question ID when the column was imported empty.
func (q *Question) EffectiveSetID() string {
	if q.SetID != "" {
		return q.SetID
	}
	if m := setIDPattern.FindStringSubmatch(q.QuestionID); m != nil {
		return m[1]
	}
	return ""
}

// Options returns the populated {label, text} pairs in authored order.
// Imported data is required to have all four options, but rows with blank
// options have shown up in practice, so blanks are dropped rather than kept.
func (q *Question) Options() []Option {
	texts := []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
	options := make([]Option, 0, len(texts))
	for i, text := range texts {
		if text == "" {
			continue
		}
		options = append(options, Option{Label: OptionLabels[i], Text: text})
	}
	return options
}

// OptionText returns the text of the option authored under label, or "" if
// the label is unknown or the option is empty.
func (q *Question) OptionText(label string) string {
	switch label {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}

// Validate validates the question content record.
func (q *Question) Validate() error {
	var errs ValidationErrors
	if q.QuestionID == "" {
		errs = append(errs, NewMissingFieldError("question_id"))
	}
	if q.BookID == "" {
		errs = append(errs, NewMissingFieldError("book_id"))
	}
	if q.ChapterID == "" {
		errs = append(errs, NewMissingFieldError("chapter_id"))
	}
	if q.QuestionText == "" {
		errs = append(errs, NewMissingFieldError("question_text"))
	}
	switch q.CorrectAnswer {
	case "A", "B", "C", "D":
		if q.OptionText(q.CorrectAnswer) == "" {
			errs = append(errs, ValidationError{
				Field:   "correct_answer",
				Message: fmt.Sprintf("option %s is empty", q.CorrectAnswer),
			})
		}
	default:
		errs = append(errs, NewInvalidFormatError("correct_answer", q.CorrectAnswer))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PageRef is a study-material page reference embedded in an explanation,
// written as "P12" or "P12-P15".
type PageRef struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (r PageRef) String() string {
	if r.To > r.From {
		return fmt.Sprintf("P%d-P%d", r.From, r.To)
	}
	return fmt.Sprintf("P%d", r.From)
}

var pageRefPattern = regexp.MustCompile(`P(\d+)(?:-P(\d+))?`)

// ExtractPageRefs collects page references from explanation prose, in order
// of appearance.
func ExtractPageRefs(explanation string) []PageRef {
	matches := pageRefPattern.FindAllStringSubmatch(explanation, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]PageRef, 0, len(matches))
	for _, m := range matches {
		from, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		ref := PageRef{From: from, To: from}
		if m[2] != "" {
			if to, err := strconv.Atoi(m[2]); err == nil {
				ref.To = to
			}
		}
		refs = append(refs, ref)
	}
	return refs
}
