package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"studyquiz/internal/config"
	"studyquiz/internal/database"
	"studyquiz/internal/domain"
	"studyquiz/internal/logger"
	"studyquiz/internal/repository"

	"go.uber.org/zap"
)

// Seed file layout: textbooks, each carrying its chapters, each carrying its
// questions. IDs are the content IDs referenced by the API, not surrogate keys.
type seedQuestion struct {
	QuestionID    string `json:"question_id"`
	SetID         string `json:"set_id,omitempty"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
	Difficulty    int    `json:"difficulty,omitempty"`
	QuestionType  string `json:"question_type,omitempty"`
}

type seedChapter struct {
	ChapterID   string         `json:"chapter_id"`
	Title       string         `json:"title"`
	Position    int            `json:"position"`
	Description string         `json:"description,omitempty"`
	Questions   []seedQuestion `json:"questions"`
}

type seedTextbook struct {
	BookID    string        `json:"book_id"`
	Title     string        `json:"title"`
	Subject   string        `json:"subject"`
	Publisher string        `json:"publisher,omitempty"`
	Chapters  []seedChapter `json:"chapters"`
}

func main() {
	seedFilePath := flag.String("file", "configs/seed_data/textbooks.json", "path to the seed JSON file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting seeding process", zap.String("file", *seedFilePath))
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	raw, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var books []seedTextbook
	if err := json.Unmarshal(raw, &books); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Loaded seed data", zap.Int("textbooks", len(books)))

	contentRepo := repository.NewContentDatabaseAdapter(db)
	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	for _, book := range books {
		// One transaction per textbook so a bad book does not poison the rest.
		err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			return seedTextbookData(txCtx, log, contentRepo, questionRepo, book)
		})
		if err != nil {
			log.Error("Seeding textbook failed, transaction rolled back", zap.String("bookID", book.BookID), zap.Error(err))
		}
	}
	log.Info("Seeding process completed")
}

func seedTextbookData(
	ctx context.Context,
	log *zap.Logger,
	contentRepo domain.ContentRepository,
	questionRepo domain.QuestionRepository,
	book seedTextbook,
) error {
	existing, err := contentRepo.GetTextbookByID(ctx, book.BookID)
	if err != nil {
		return fmt.Errorf("error checking textbook %s: %w", book.BookID, err)
	}
	if existing != nil {
		log.Info("Textbook already seeded, skipping", zap.String("bookID", book.BookID))
		return nil
	}

	textbook := &domain.Textbook{
		BookID:    book.BookID,
		Title:     book.Title,
		Subject:   book.Subject,
		Publisher: book.Publisher,
	}
	if err := textbook.Validate(); err != nil {
		return fmt.Errorf("invalid textbook %s: %w", book.BookID, err)
	}
	if err := contentRepo.SaveTextbook(ctx, textbook); err != nil {
		return fmt.Errorf("failed to save textbook %s: %w", book.BookID, err)
	}
	log.Info("Created textbook", zap.String("bookID", book.BookID), zap.String("title", book.Title))

	for _, ch := range book.Chapters {
		chapter := &domain.Chapter{
			ChapterID:   ch.ChapterID,
			BookID:      book.BookID,
			Title:       ch.Title,
			Position:    ch.Position,
			Description: ch.Description,
		}
		if err := chapter.Validate(); err != nil {
			return fmt.Errorf("invalid chapter %s: %w", ch.ChapterID, err)
		}
		if err := contentRepo.SaveChapter(ctx, chapter); err != nil {
			return fmt.Errorf("failed to save chapter %s: %w", ch.ChapterID, err)
		}

		for _, q := range ch.Questions {
			question := &domain.Question{
				QuestionID:    q.QuestionID,
				BookID:        book.BookID,
				ChapterID:     ch.ChapterID,
				SetID:         q.SetID,
				QuestionText:  q.QuestionText,
				OptionA:       q.OptionA,
				OptionB:       q.OptionB,
				OptionC:       q.OptionC,
				OptionD:       q.OptionD,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
				Difficulty:    q.Difficulty,
				QuestionType:  q.QuestionType,
			}
			if err := question.Validate(); err != nil {
				return fmt.Errorf("invalid question %s: %w", q.QuestionID, err)
			}
			if err := questionRepo.SaveQuestion(ctx, question); err != nil {
				return fmt.Errorf("failed to save question %s: %w", q.QuestionID, err)
			}
		}
		log.Info("Created chapter", zap.String("chapterID", ch.ChapterID), zap.Int("questions", len(ch.Questions)))
	}
	return nil
}
