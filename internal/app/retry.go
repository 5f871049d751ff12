package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"

	"learner-activity-service/internal/domain"
)

// RetryPolicy bounds how often a lost save race is replayed.
type RetryPolicy struct {
	MaxRetries uint64
	Interval   time.Duration
}

// DefaultRetryPolicy is used when no policy is configured.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 5, Interval: 20 * time.Millisecond}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.Interval > 0 {
		b.InitialInterval = p.Interval
	}
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)
}

// update loads userID, lets fn mutate the copy and saves it. When the save
// loses to a concurrent writer the record is reloaded and fn runs again on the
// fresh copy, so fn must derive everything from the user it is given.
func update(ctx context.Context, users UserStore, policy RetryPolicy, userID string, fn func(*domain.User) error) (domain.User, error) {
	var saved domain.User
	attempt := 0
	op := func() error {
		attempt++
		user, err := users.Load(ctx, userID)
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := fn(&user); err != nil {
			return backoff.Permanent(err)
		}
		saved, err = users.Save(ctx, user)
		if errors.Is(err, domain.ErrConflict) {
			log.Printf("conflict saving user %s on attempt %d", userID, attempt)
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}
	if err := backoff.Retry(op, policy.backOff(ctx)); err != nil {
		return domain.User{}, err
	}
	return saved, nil
}
