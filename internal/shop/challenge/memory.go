package challenge

import (
	"context"
	"sync"
	"time"

	"github.com/chocomax/shop/internal/shop/domain"
)

// MemoryStore keeps challenges in process. It is only suitable for a single
// instance; expired entries are removed on access and by DeleteExpired.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]domain.SecondFactorChallenge
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]domain.SecondFactorChallenge),
		now:   time.Now,
	}
}

// WithClock replaces the time source. Tests only.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Save(_ context.Context, c domain.SecondFactorChallenge) error {
	if c.Expired(s.now()) {
		return ErrExpired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.Token] = c
	return nil
}

// lookup returns the live challenge for token. Callers hold s.mu.
func (s *MemoryStore) lookup(token string) (domain.SecondFactorChallenge, error) {
	c, ok := s.items[token]
	if !ok {
		return domain.SecondFactorChallenge{}, ErrNotFound
	}
	if c.Expired(s.now()) {
		delete(s.items, token)
		return domain.SecondFactorChallenge{}, ErrExpired
	}
	return c, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (domain.SecondFactorChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(token)
}

func (s *MemoryStore) RecordFailure(_ context.Context, token string, maxAttempts int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.lookup(token)
	if err != nil {
		return false, err
	}
	c.Attempts++
	if c.Attempts >= maxAttempts {
		delete(s.items, token)
		return true, nil
	}
	s.items[token] = c
	return false, nil
}

func (s *MemoryStore) Consume(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(token); err != nil {
		return false, nil
	}
	delete(s.items, token)
	return true, nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for token, c := range s.items {
		if c.Expired(now) {
			delete(s.items, token)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// Len reports the number of stored challenges, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
