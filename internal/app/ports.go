package app

import (
	"context"
	"time"

	"learner-activity-service/internal/domain"
)

// UserStore abstracts where user records live (in-memory, Redis, Postgres).
//
// Save writes user only if the stored version still equals user.Version and
// returns the record with its new version; otherwise it returns
// domain.ErrConflict and the caller must reload.
type UserStore interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Load(ctx context.Context, userID string) (domain.User, error)
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, userID string) error
}

// SnapshotReader is implemented by stores that can serve read-only lookups
// more cheaply than Load, for example by sharing concurrent queries. A
// snapshot is never saved back.
type SnapshotReader interface {
	Snapshot(ctx context.Context, userID string) (domain.User, error)
}

// readUser loads userID for display, preferring a snapshot when the store has one.
func readUser(ctx context.Context, users UserStore, userID string) (domain.User, error) {
	if r, ok := users.(SnapshotReader); ok {
		return r.Snapshot(ctx, userID)
	}
	return users.Load(ctx, userID)
}

// TokenStore keeps password reset tokens until they expire or are used.
type TokenStore interface {
	Put(ctx context.Context, token, email string, ttl time.Duration) error
	// Consume returns the email for token and removes it in one step.
	Consume(ctx context.Context, token string) (string, error)
}

// Mailer delivers password reset links.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, toName, link string) error
}
