package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"learner-activity-service/internal/domain"
)

// TokenStore keeps reset tokens as expiring keys; Redis evicts them on TTL
// and GETDEL makes consumption atomic across instances.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Put(ctx context.Context, token, email string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(token), email, ttl).Err()
}

func (s *TokenStore) Consume(ctx context.Context, token string) (string, error) {
	email, err := s.client.GetDel(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidResetToken
	}
	if err != nil {
		return "", fmt.Errorf("consume token: %w", err)
	}
	return email, nil
}

func (s *TokenStore) key(token string) string {
	return "activity:reset:" + token
}
