package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"studyquiz/internal/cache"
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ContentService serves the textbook/chapter catalogue. Listings are cached;
// concurrent cache misses for the same key are collapsed into one database
// query via singleflight.
type ContentService interface {
	GetSubjects(ctx context.Context) ([]*dto.SubjectResponse, error)
	GetTextbooks(ctx context.Context, subject string) ([]*dto.TextbookResponse, error)
	GetChapters(ctx context.Context, bookID string) ([]*dto.ChapterResponse, error)
}

type contentServiceImpl struct {
	repo  domain.ContentRepository
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewContentService creates a new ContentService. A nil cache disables
// caching; every call then hits the repository.
func NewContentService(repo domain.ContentRepository, c domain.Cache, ttl time.Duration) ContentService {
	return &contentServiceImpl{repo: repo, cache: c, ttl: ttl}
}

func (s *contentServiceImpl) GetSubjects(ctx context.Context) ([]*dto.SubjectResponse, error) {
	key := cache.GenerateCacheKey("content", "subjects", "all")
	var responses []*dto.SubjectResponse
	err := s.cached(ctx, key, &responses, func() (interface{}, error) {
		summaries, err := s.repo.GetSubjectSummaries(ctx)
		if err != nil {
			return nil, domain.NewInternalError("failed to load subjects", err)
		}
		out := make([]*dto.SubjectResponse, 0, len(summaries))
		for _, sum := range summaries {
			out = append(out, &dto.SubjectResponse{
				Subject:       sum.Subject,
				BookCount:     sum.BookCount,
				ChapterCount:  sum.ChapterCount,
				QuestionCount: sum.QuestionCount,
			})
		}
		return out, nil
	})
	return responses, err
}

func (s *contentServiceImpl) GetTextbooks(ctx context.Context, subject string) ([]*dto.TextbookResponse, error) {
	identifier := subject
	if identifier == "" {
		identifier = "all"
	}
	key := cache.GenerateCacheKey("content", "textbooks", identifier)

	var responses []*dto.TextbookResponse
	err := s.cached(ctx, key, &responses, func() (interface{}, error) {
		books, err := s.repo.GetTextbooks(ctx, subject)
		if err != nil {
			return nil, domain.NewInternalError("failed to load textbooks", err)
		}
		out := make([]*dto.TextbookResponse, 0, len(books))
		for _, b := range books {
			out = append(out, &dto.TextbookResponse{
				BookID:        b.BookID,
				Title:         b.Title,
				Subject:       b.Subject,
				Publisher:     b.Publisher,
				ChapterCount:  b.ChapterCount,
				QuestionCount: b.QuestionCount,
			})
		}
		return out, nil
	})
	return responses, err
}

// GetChapters lists a book's chapters in reading order. An unknown book is a
// NOT_FOUND condition rather than an empty listing.
func (s *contentServiceImpl) GetChapters(ctx context.Context, bookID string) ([]*dto.ChapterResponse, error) {
	key := cache.GenerateCacheKey("content", "chapters", bookID)

	var responses []*dto.ChapterResponse
	err := s.cached(ctx, key, &responses, func() (interface{}, error) {
		book, err := s.repo.GetTextbookByID(ctx, bookID)
		if err != nil {
			return nil, domain.NewInternalError("failed to load textbook", err)
		}
		if book == nil {
			return nil, domain.NewNotFoundError("Textbook " + bookID + " does not exist")
		}

		chapters, err := s.repo.GetChaptersByBook(ctx, bookID)
		if err != nil {
			return nil, domain.NewInternalError("failed to load chapters", err)
		}
		out := make([]*dto.ChapterResponse, 0, len(chapters))
		for _, ch := range chapters {
			out = append(out, &dto.ChapterResponse{
				ChapterID:     ch.ChapterID,
				BookID:        ch.BookID,
				Title:         ch.Title,
				Position:      ch.Position,
				QuestionCount: ch.QuestionCount,
				Description:   ch.Description,
			})
		}
		return out, nil
	})
	return responses, err
}

// cached resolves dest from the cache, falling back to load on a miss and
// writing the result back. Load errors are never cached.
func (s *contentServiceImpl) cached(ctx context.Context, key string, dest interface{}, load func() (interface{}, error)) error {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		if err == nil {
			if unmarshalErr := json.Unmarshal([]byte(data), dest); unmarshalErr == nil {
				return nil
			}
			// A corrupt entry falls through to a fresh load.
			logger.Get().Warn("Dropping corrupt content cache entry", zap.String("key", key))
			_ = s.cache.Delete(ctx, key)
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Content cache unavailable, loading from database", zap.Error(err), zap.String("key", key))
		}
	}

	value, err, _ := s.group.Do(key, load)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return domain.NewInternalError("failed to encode content listing", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
			logger.Get().Warn("Failed to populate content cache", zap.Error(err), zap.String("key", key))
		}
	}
	return json.Unmarshal(data, dest)
}
