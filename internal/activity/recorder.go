package activity

import (
	"fmt"
	"strings"

	"learner-activity-service/internal/domain"
)

// RecordLogin appends timestamp to the login times of day's bucket, creating
// the bucket on first use. The input state is not modified.
func RecordLogin(state domain.ActivityState, day, timestamp string) (domain.ActivityState, error) {
	return appendSessionTime(state, day, timestamp, func(l *domain.DailyActivityLog) *[]string {
		return &l.LoginTimes
	})
}

// RecordLogout is the logout counterpart of RecordLogin. A logout without a
// prior login on the same day is recorded as is.
func RecordLogout(state domain.ActivityState, day, timestamp string) (domain.ActivityState, error) {
	return appendSessionTime(state, day, timestamp, func(l *domain.DailyActivityLog) *[]string {
		return &l.LogoutTimes
	})
}

func appendSessionTime(state domain.ActivityState, day, timestamp string, field func(*domain.DailyActivityLog) *[]string) (domain.ActivityState, error) {
	if err := validateDay(day); err != nil {
		return state, err
	}
	next := state.Clone()
	times := field(dayLog(&next, day))
	*times = append(*times, timestamp)
	return next, nil
}

// dayLog finds or creates the bucket for day.
func dayLog(state *domain.ActivityState, day string) *domain.DailyActivityLog {
	return getOrInsert(&state.ActivityLogs,
		func(l *domain.DailyActivityLog) string { return l.Date },
		day,
		func() domain.DailyActivityLog { return domain.NewDailyActivityLog(day) },
	)
}

func validateDay(day string) error {
	if strings.TrimSpace(day) == "" {
		return fmt.Errorf("%w: day is required", domain.ErrInvalidInput)
	}
	return nil
}
