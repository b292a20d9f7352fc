package dto

// SubjectResponse is one subject aggregate in the catalogue listing
type SubjectResponse struct {
	Subject       string `json:"subject"`
	BookCount     int    `json:"book_count"`
	ChapterCount  int    `json:"chapter_count"`
	QuestionCount int    `json:"question_count"`
}

// TextbookResponse represents a textbook in the API response
type TextbookResponse struct {
	BookID        string `json:"book_id"`
	Title         string `json:"title"`
	Subject       string `json:"subject"`
	Publisher     string `json:"publisher,omitempty"`
	ChapterCount  int    `json:"chapter_count"`
	QuestionCount int    `json:"question_count"`
}

// ChapterResponse represents a chapter in the API response
type ChapterResponse struct {
	ChapterID     string `json:"chapter_id"`
	BookID        string `json:"book_id"`
	Title         string `json:"title"`
	Position      int    `json:"position"`
	QuestionCount int    `json:"question_count"`
	Description   string `json:"description,omitempty"`
}
