package repository

import (
	"context"
	"sync"
	"time"
)

type memorySessionStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // key -> expiry
	now     func() time.Time
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *memorySessionStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, expiresAt := range s.revoked {
		if now.After(expiresAt) {
			delete(s.revoked, key)
		}
	}
	s.revoked[revokedSessionKey(tokenID)] = now.Add(ttl)
	return nil
}

func (s *memorySessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	key := revokedSessionKey(tokenID)

	s.mu.RLock()
	expiresAt, ok := s.revoked[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if s.now().After(expiresAt) {
		s.mu.Lock()
		delete(s.revoked, key)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
