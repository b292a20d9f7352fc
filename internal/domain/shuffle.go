package domain

import (
	"fmt"
	"math/rand"
)

// SessionQuestion wraps a Question for one session with its options in
// randomized order and correctness re-derived against the new positions.
//
// Invariant: ShuffledOptions[index of ShuffledCorrectLabel] == OriginalCorrectText.
type SessionQuestion struct {
	Question             Question
	ShuffledOptions      []string
	ShuffledCorrectLabel string
	OriginalCorrectText  string
}

// CorrectIndex returns the position of the correct option within
// ShuffledOptions, or -1 if the label is unset.
func (sq *SessionQuestion) CorrectIndex() int {
	for i, label := range OptionLabels {
		if label == sq.ShuffledCorrectLabel {
			if i < len(sq.ShuffledOptions) {
				return i
			}
			return -1
		}
	}
	return -1
}

// IsCorrectText reports whether the selected option text is the correct one.
// Correctness is judged on option text, not label, so it survives reshuffles.
func (sq *SessionQuestion) IsCorrectText(selected string) bool {
	return selected == sq.OriginalCorrectText
}

// ShuffleOptions derives a SessionQuestion from a Question by applying a
// uniform random permutation (Fisher-Yates) to its populated options.
//
// The function is pure given rng, so a seeded source makes it deterministic.
// A correct-answer label that does not resolve to a populated option fails
// with a DATA_INTEGRITY error naming the question; sessions never silently
// fall back to treating option A as correct.
func ShuffleOptions(q *Question, rng *rand.Rand) (*SessionQuestion, error) {
	options := q.Options()
	if len(options) == 0 {
		return nil, NewDataIntegrityError(q.QuestionID,
			fmt.Sprintf("Question %s has no populated options", q.QuestionID))
	}

	correctText := q.OptionText(q.CorrectAnswer)
	if correctText == "" {
		return nil, NewDataIntegrityError(q.QuestionID,
			fmt.Sprintf("Question %s: correct answer label %q does not match any populated option",
				q.QuestionID, q.CorrectAnswer))
	}

	shuffled := make([]Option, len(options))
	copy(shuffled, options)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	// Track the correct option by its authored label rather than by text so
	// duplicate option texts cannot misattribute correctness.
	correctIndex := -1
	texts := make([]string, len(shuffled))
	for i, opt := range shuffled {
		texts[i] = opt.Text
		if opt.Label == q.CorrectAnswer {
			correctIndex = i
		}
	}
	if correctIndex < 0 {
		return nil, NewDataIntegrityError(q.QuestionID,
			fmt.Sprintf("Question %s: correct option lost during shuffle", q.QuestionID))
	}

	return &SessionQuestion{
		Question:             *q,
		ShuffledOptions:      texts,
		ShuffledCorrectLabel: OptionLabels[correctIndex],
		OriginalCorrectText:  correctText,
	}, nil
}
