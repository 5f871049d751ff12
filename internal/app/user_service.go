package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"learner-activity-service/internal/domain"
)

// UserService covers the learner record operations around the activity core.
type UserService struct {
	users UserStore
	retry RetryPolicy
	now   func() time.Time
}

func NewUserService(users UserStore, retry RetryPolicy) *UserService {
	return &UserService{users: users, retry: retry, now: time.Now}
}

// Create registers a learner with the student role and empty activity.
func (s *UserService) Create(ctx context.Context, nu domain.NewUser) (domain.User, error) {
	email := strings.TrimSpace(nu.Email)
	if email == "" {
		return domain.User{}, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Username:     nu.Username,
		Email:        email,
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		Role:         domain.RoleStudent,
		RegisteredAt: s.now().UTC(),
		Progress:     map[domain.ProgressField]float64{},
		Activity: domain.ActivityState{
			QuizHistory:  []domain.QuizRecord{},
			ActivityLogs: []domain.DailyActivityLog{},
		},
	}
	return s.users.Create(ctx, user)
}

func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	if err := requireUserID(userID); err != nil {
		return domain.User{}, err
	}
	return readUser(ctx, s.users, userID)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Hide takes the learner off listings by switching the role to Offline.
func (s *UserService) Hide(ctx context.Context, userID string) (domain.User, error) {
	return s.setRole(ctx, userID, domain.RoleOffline)
}

// Unhide restores the student role.
func (s *UserService) Unhide(ctx context.Context, userID string) (domain.User, error) {
	return s.setRole(ctx, userID, domain.RoleStudent)
}

func (s *UserService) setRole(ctx context.Context, userID string, role domain.Role) (domain.User, error) {
	if err := requireUserID(userID); err != nil {
		return domain.User{}, err
	}
	return update(ctx, s.users, s.retry, userID, func(u *domain.User) error {
		u.Role = role
		return nil
	})
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := requireUserID(userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}

// UpdateProgressScore stores score in the progress slot for quizType.
func (s *UserService) UpdateProgressScore(ctx context.Context, userID, quizType string, score float64) (domain.User, error) {
	if err := requireUserID(userID); err != nil {
		return domain.User{}, err
	}
	field, err := domain.ProgressFieldFor(quizType)
	if err != nil {
		return domain.User{}, err
	}
	return update(ctx, s.users, s.retry, userID, func(u *domain.User) error {
		if u.Progress == nil {
			u.Progress = map[domain.ProgressField]float64{}
		}
		u.Progress[field] = score
		return nil
	})
}
