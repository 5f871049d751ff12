package memory

import (
	"context"
	"sync"
	"time"

	"learner-activity-service/internal/domain"
)

// TokenStore keeps reset tokens in process memory with an expiry per token.
type TokenStore struct {
	mu     sync.Mutex
	clock  func() time.Time
	tokens map[string]resetToken
}

type resetToken struct {
	email     string
	expiresAt time.Time
}

func NewTokenStore() *TokenStore {
	return NewTokenStoreWithClock(time.Now)
}

// NewTokenStoreWithClock is test-only for deterministic expiry.
func NewTokenStoreWithClock(now func() time.Time) *TokenStore {
	return &TokenStore{clock: now, tokens: make(map[string]resetToken)}
}

func (s *TokenStore) Put(_ context.Context, token, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = resetToken{email: email, expiresAt: s.clock().Add(ttl)}
	return nil
}

// Consume removes token and returns its email if it had not expired.
func (s *TokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.tokens, token)
	if !entry.expiresAt.After(s.clock()) {
		return "", domain.ErrInvalidResetToken
	}
	return entry.email, nil
}

// Sweep drops expired tokens and reports how many were removed.
func (s *TokenStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	removed := 0
	for token, entry := range s.tokens {
		if !entry.expiresAt.After(now) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}

// Len reports how many tokens are held, expired or not.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
