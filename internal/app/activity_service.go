package app

import (
	"context"
	"fmt"
	"strings"

	"learner-activity-service/internal/activity"
	"learner-activity-service/internal/domain"
)

// ActivityService records learner events against the stored user record.
type ActivityService struct {
	users    UserStore
	calendar *Calendar
	retry    RetryPolicy
}

func NewActivityService(users UserStore, calendar *Calendar, retry RetryPolicy) *ActivityService {
	return &ActivityService{users: users, calendar: calendar, retry: retry}
}

// RecordLogin stamps a login for userID and returns the day's log.
func (s *ActivityService) RecordLogin(ctx context.Context, userID string) (domain.DailyActivityLog, error) {
	return s.recordSession(ctx, userID, activity.RecordLogin)
}

// RecordLogout stamps a logout for userID and returns the day's log.
func (s *ActivityService) RecordLogout(ctx context.Context, userID string) (domain.DailyActivityLog, error) {
	return s.recordSession(ctx, userID, activity.RecordLogout)
}

func (s *ActivityService) recordSession(
	ctx context.Context,
	userID string,
	record func(domain.ActivityState, string, string) (domain.ActivityState, error),
) (domain.DailyActivityLog, error) {
	if err := requireUserID(userID); err != nil {
		return domain.DailyActivityLog{}, err
	}
	day, ts := s.calendar.Stamp()

	saved, err := update(ctx, s.users, s.retry, userID, func(u *domain.User) error {
		next, err := record(u.Activity, day, ts)
		if err != nil {
			return err
		}
		u.Activity = next
		return nil
	})
	if err != nil {
		return domain.DailyActivityLog{}, err
	}
	log, _ := saved.Activity.Log(day)
	return log, nil
}

// RecordQuizAttempt applies a quiz attempt to the user's lifetime history and
// today's log, retrying on concurrent modification.
func (s *ActivityService) RecordQuizAttempt(ctx context.Context, userID string, attempt domain.QuizAttempt) (domain.AttemptOutcome, error) {
	if err := requireUserID(userID); err != nil {
		return domain.AttemptOutcome{}, err
	}
	day, _ := s.calendar.Stamp()

	var outcome domain.AttemptOutcome
	_, err := update(ctx, s.users, s.retry, userID, func(u *domain.User) error {
		next, out, err := activity.RecordAttempt(u.Activity, day, attempt)
		if err != nil {
			return err
		}
		u.Activity = next
		outcome = out
		return nil
	})
	if err != nil {
		return domain.AttemptOutcome{}, err
	}
	return outcome, nil
}

// Activity returns the user's daily logs.
func (s *ActivityService) Activity(ctx context.Context, userID string) ([]domain.DailyActivityLog, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	user, err := readUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	logs := user.Activity.ActivityLogs
	if logs == nil {
		logs = []domain.DailyActivityLog{}
	}
	return logs, nil
}

func requireUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: missing userId", domain.ErrInvalidInput)
	}
	return nil
}
