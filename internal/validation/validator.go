package validation

import (
	"regexp"
	"strings"

	"studyquiz/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateStartSessionRequest validates the session start parameters.
func (v *Validator) ValidateStartSessionRequest(bookID, chapterID, setID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(bookID) == "" {
		errors = append(errors, domain.NewMissingFieldError("book_id"))
	}

	if strings.TrimSpace(chapterID) == "" {
		errors = append(errors, domain.NewMissingFieldError("chapter_id"))
	} else if !isValidContentID(chapterID) {
		errors = append(errors, domain.NewInvalidFormatError("chapter_id", chapterID))
	}

	// set_id is optional; when omitted a set is picked at random.
	if setID != "" && !isValidContentID(setID) {
		errors = append(errors, domain.NewInvalidFormatError("set_id", setID))
	}

	return errors
}

// ValidateSubmitAnswerRequest validates one answer submission.
func (v *Validator) ValidateSubmitAnswerRequest(questionID, answer string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	}

	if strings.TrimSpace(answer) == "" {
		errors = append(errors, domain.NewMissingFieldError("answer"))
	} else if len(answer) > 500 {
		errors = append(errors, domain.NewOutOfRangeError("answer", len(answer), 1, 500))
	}

	return errors
}

// ValidateSessionID validates a session path parameter.
func (v *Validator) ValidateSessionID(sessionID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(sessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !isValidULID(sessionID) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", sessionID))
	}

	return errors
}

// ValidateFeedbackRequest validates a feedback submission.
func (v *Validator) ValidateFeedbackRequest(feedbackType, content string, categories []string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(feedbackType) == "" {
		errors = append(errors, domain.NewMissingFieldError("type"))
	}

	if strings.TrimSpace(content) == "" && len(categories) == 0 {
		errors = append(errors, domain.ValidationError{
			Field:   "content",
			Message: "either content or at least one category is required",
		})
	}
	if len(content) > 2000 {
		errors = append(errors, domain.NewOutOfRangeError("content", len(content), 0, 2000))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

// isValidContentID accepts chapter and set identifiers such as "E01-C00" and
// "E01-C00-01" (alphanumeric segments joined by hyphens).
func isValidContentID(s string) bool {
	validID := regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`)
	return validID.MatchString(s)
}
