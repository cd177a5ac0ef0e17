// Package session keeps interview state between requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SAP-F-2025/interview-service/internal/cache"
	"github.com/SAP-F-2025/interview-service/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Store persists interview snapshots keyed by session ID.
type Store interface {
	Get(ctx context.Context, id string) (*models.InterviewState, error)
	Put(ctx context.Context, id string, state *models.InterviewState) error
	Remove(ctx context.Context, id string) error
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.InterviewState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.InterviewState)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*models.InterviewState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return state.Clone(), nil
}

func (m *MemoryStore) Put(_ context.Context, id string, state *models.InterviewState) error {
	if state == nil {
		return fmt.Errorf("nil state for session %s", id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = state.Clone()
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

const keyPrefix = "interview:session:"

// CacheStore keeps JSON snapshots in the shared cache with a sliding TTL.
type CacheStore struct {
	cache cache.CacheService
	ttl   time.Duration
}

func NewCacheStore(c cache.CacheService, ttl time.Duration) *CacheStore {
	return &CacheStore{cache: c, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func (s *CacheStore) Get(ctx context.Context, id string) (*models.InterviewState, error) {
	var state models.InterviewState
	if err := s.cache.Get(ctx, key(id), &state); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return &state, nil
}

func (s *CacheStore) Put(ctx context.Context, id string, state *models.InterviewState) error {
	if state == nil {
		return fmt.Errorf("nil state for session %s", id)
	}
	if err := s.cache.Set(ctx, key(id), state, s.ttl); err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}
	return nil
}

func (s *CacheStore) Remove(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, key(id)); err != nil {
		return fmt.Errorf("failed to remove session %s: %w", id, err)
	}
	return nil
}

// Clear drops every stored session.
func (s *CacheStore) Clear(ctx context.Context) error {
	return s.cache.DeletePattern(ctx, keyPrefix+"*")
}
