package domain

import (
	"testing"
)

func validQuestion() *Question {
	return &Question{
		ID:            "01HQ0000000000000000000000",
		QuestionID:    "E01-C00-01-002",
		BookID:        "eng-01",
		ChapterID:     "ch00",
		QuestionText:  "Which part of speech is the underlined word?",
		OptionA:       "名詞",
		OptionB:       "動詞",
		OptionC:       "形容詞",
		OptionD:       "副詞",
		CorrectAnswer: "C",
		Explanation:   "形容詞は名詞を修飾する。P12-P15を参照。",
		Difficulty:    2,
		QuestionType:  "multiple_choice",
	}
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid question", func(q *Question) {}, false},
		{"missing question_id", func(q *Question) { q.QuestionID = "" }, true},
		{"missing book_id", func(q *Question) { q.BookID = "" }, true},
		{"missing chapter_id", func(q *Question) { q.ChapterID = "" }, true},
		{"missing question text", func(q *Question) { q.QuestionText = "" }, true},
		{"correct answer label out of range", func(q *Question) { q.CorrectAnswer = "E" }, true},
		{"correct answer label empty", func(q *Question) { q.CorrectAnswer = "" }, true},
		{"correct answer points at empty option", func(q *Question) { q.OptionC = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestion_EffectiveSetID(t *testing.T) {
	tests := []struct {
		name       string
		setID      string
		questionID string
		want       string
	}{
		{"stored set id wins", "E01-C00-02", "E01-C00-01-002", "E01-C00-02"},
		{"derived from question id", "", "E01-C00-01-002", "E01-C00-01"},
		{"derived with long prefix", "", "JH02-C11-03-010", "JH02-C11-03"},
		{"underivable id", "", "legacy-question-7", ""},
		{"empty everything", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &Question{SetID: tt.setID, QuestionID: tt.questionID}
			if got := q.EffectiveSetID(); got != tt.want {
				t.Errorf("EffectiveSetID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuestion_Options_DropsBlanks(t *testing.T) {
	q := validQuestion()
	q.OptionB = ""

	options := q.Options()
	if len(options) != 3 {
		t.Fatalf("Options() returned %d options, want 3", len(options))
	}
	for _, opt := range options {
		if opt.Label == "B" {
			t.Errorf("Options() kept blank option B")
		}
		if opt.Text == "" {
			t.Errorf("Options() kept empty text for label %s", opt.Label)
		}
	}
}

func TestExtractPageRefs(t *testing.T) {
	tests := []struct {
		name        string
		explanation string
		want        []PageRef
	}{
		{"no refs", "形容詞は名詞を修飾する。", nil},
		{"single page", "P12を参照。", []PageRef{{From: 12, To: 12}}},
		{"page range", "詳細はP12-P15。", []PageRef{{From: 12, To: 15}}},
		{
			"multiple refs in order",
			"P3の例とP40-P41の表を参照。",
			[]PageRef{{From: 3, To: 3}, {From: 40, To: 41}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPageRefs(tt.explanation)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractPageRefs() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ref[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPageRef_String(t *testing.T) {
	if got := (PageRef{From: 12, To: 12}).String(); got != "P12" {
		t.Errorf("String() = %q, want P12", got)
	}
	if got := (PageRef{From: 12, To: 15}).String(); got != "P12-P15" {
		t.Errorf("String() = %q, want P12-P15", got)
	}
}
