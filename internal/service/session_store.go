package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"studyquiz/internal/cache"
	"studyquiz/internal/domain"
	"studyquiz/internal/logger"

	"go.uber.org/zap"
)

// SessionStore persists active test sessions between requests.
//
// Implementations hand out independent copies: mutating a returned session
// has no effect until it is saved back. Sessions expire after the configured
// TTL so abandoned attempts do not accumulate.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.TestSession, error)
	Save(ctx context.Context, session *domain.TestSession) error
	Delete(ctx context.Context, sessionID string) error
}

// redisSessionStore stores whole sessions as JSON documents in the cache.
type redisSessionStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewRedisSessionStore creates a session store backed by the generic cache.
func NewRedisSessionStore(c domain.Cache, ttl time.Duration) SessionStore {
	return &redisSessionStore{cache: c, ttl: ttl}
}

func (s *redisSessionStore) key(sessionID string) string {
	return cache.GenerateCacheKey("session", "state", sessionID)
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*domain.TestSession, error) {
	data, err := s.cache.Get(ctx, s.key(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		logger.Get().Error("Failed to load session from cache", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, domain.NewInternalError("failed to load session", err)
	}

	var session domain.TestSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		logger.Get().Error("Failed to unmarshal cached session", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, domain.NewInternalError("failed to decode session", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *domain.TestSession) error {
	if session == nil {
		return domain.NewInvalidInputError("cannot save nil session")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to encode session", err)
	}
	if err := s.cache.Set(ctx, s.key(session.ID), string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to save session to cache", zap.Error(err), zap.String("sessionID", session.ID))
		return domain.NewInternalError("failed to save session", err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, s.key(sessionID)); err != nil {
		return domain.NewInternalError("failed to delete session", err)
	}
	return nil
}

// memorySessionStore keeps sessions in process memory. Single node only;
// used in tests and local development without Redis.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemorySessionStore creates an in-memory session store.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string][]byte)}
}

func (s *memorySessionStore) Get(_ context.Context, sessionID string) (*domain.TestSession, error) {
	s.mu.RLock()
	data, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	var session domain.TestSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, domain.NewInternalError("failed to decode session", err)
	}
	return &session, nil
}

func (s *memorySessionStore) Save(_ context.Context, session *domain.TestSession) error {
	if session == nil {
		return domain.NewInvalidInputError("cannot save nil session")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to encode session", err)
	}
	s.mu.Lock()
	s.sessions[session.ID] = data
	s.mu.Unlock()
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
