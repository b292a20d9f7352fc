package domain

import "time"

// User represents a registered account. Anonymous users can still take test
// sessions; accounts exist so results can be kept per user.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Nickname     string
	Affiliation  string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Validate validates the user record.
func (u *User) Validate() error {
	var errs ValidationErrors
	if u.Username == "" {
		errs = append(errs, NewMissingFieldError("username"))
	}
	if u.PasswordHash == "" {
		errs = append(errs, NewMissingFieldError("password"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsAdmin reports whether the user may access review endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TestResult is the persisted outcome of a completed session for a
// registered user. Intermediate session state is never persisted.
type TestResult struct {
	ID          string
	SessionID   string
	UserID      string
	BookID      string
	ChapterID   string
	SetID       string
	Score       int
	Total       int
	Percentage  int
	CompletedAt time.Time
}
