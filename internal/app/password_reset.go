package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"learner-activity-service/internal/domain"
)

// PasswordResetService issues single-use reset tokens and applies new passwords.
type PasswordResetService struct {
	users   UserStore
	tokens  TokenStore
	mailer  Mailer
	ttl     time.Duration
	baseURL string
	retry   RetryPolicy
}

func NewPasswordResetService(users UserStore, tokens TokenStore, mailer Mailer, ttl time.Duration, baseURL string, retry RetryPolicy) *PasswordResetService {
	return &PasswordResetService{
		users:   users,
		tokens:  tokens,
		mailer:  mailer,
		ttl:     ttl,
		baseURL: strings.TrimRight(baseURL, "/"),
		retry:   retry,
	}
}

// RequestReset stores a fresh token for email and mails the reset link.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrEmailNotFound
	}
	if err != nil {
		return err
	}

	token, err := newToken()
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	if err := s.tokens.Put(ctx, token, user.Email, s.ttl); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.FirstName, link); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes token and stores a bcrypt hash of password.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	email, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return err
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = update(ctx, s.users, s.retry, user.ID, func(u *domain.User) error {
		u.PasswordHash = string(hash)
		return nil
	})
	return err
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
