package activity

import (
	"fmt"
	"math"
	"strings"

	"learner-activity-service/internal/domain"
)

// MasteryThreshold is the score at or above which a quiz counts as mastered.
const MasteryThreshold = 80

// RecordAttempt applies one quiz attempt to the lifetime quiz history and to
// day's quiz records. Each scope tracks its own threshold crossing. Scores and
// times are recorded as given, without range checks.
//
// On error the input state is returned untouched; on success the returned
// state is a fresh copy and the input is left as it was.
func RecordAttempt(state domain.ActivityState, day string, attempt domain.QuizAttempt) (domain.ActivityState, domain.AttemptOutcome, error) {
	if err := validateAttempt(day, attempt); err != nil {
		return state, domain.AttemptOutcome{}, err
	}

	next := state.Clone()

	lifetime := quizRecord(&next.QuizHistory, attempt.QuizType)
	lifetimeCrossed := apply(lifetime, attempt)

	log := dayLog(&next, day)
	daily := quizRecord(&log.Quizzes, attempt.QuizType)
	dailyCrossed := apply(daily, attempt)

	outcome := domain.AttemptOutcome{
		Day:             day,
		Lifetime:        lifetime.Clone(),
		Daily:           daily.Clone(),
		LifetimeCrossed: lifetimeCrossed,
		DailyCrossed:    dailyCrossed,
		QuizHistory:     domain.CloneRecords(next.QuizHistory),
		DailyActivity:   domain.CloneRecords(log.Quizzes),
	}
	return next, outcome, nil
}

func quizRecord(records *[]domain.QuizRecord, quizType string) *domain.QuizRecord {
	return getOrInsert(records,
		func(r *domain.QuizRecord) string { return r.QuizType },
		quizType,
		func() domain.QuizRecord { return domain.NewQuizRecord(quizType) },
	)
}

// apply updates r in place and reports whether this attempt crossed the threshold.
func apply(r *domain.QuizRecord, attempt domain.QuizAttempt) bool {
	r.Attempts++
	r.Scores = append(r.Scores, attempt.Score)
	r.TimeSpent = append(r.TimeSpent, attempt.TimeSpent)

	if attempt.Score >= MasteryThreshold && !r.ReachedThreshold {
		r.ReachedThreshold = true
		r.AttemptsToReachThreshold = r.Attempts
		return true
	}
	return false
}

func validateAttempt(day string, attempt domain.QuizAttempt) error {
	if err := validateDay(day); err != nil {
		return err
	}
	if strings.TrimSpace(attempt.QuizType) == "" {
		return fmt.Errorf("%w: quiz type is required", domain.ErrInvalidInput)
	}
	if !finite(attempt.Score) {
		return fmt.Errorf("%w: score must be a finite number", domain.ErrInvalidInput)
	}
	if !finite(attempt.TimeSpent) {
		return fmt.Errorf("%w: time spent must be a finite number", domain.ErrInvalidInput)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
