package activity

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"learner-activity-service/internal/domain"
)

func attempt(quizType string, score, timeSpent float64) domain.QuizAttempt {
	return domain.QuizAttempt{QuizType: quizType, Score: score, TimeSpent: timeSpent}
}

func mustRecord(t *testing.T, state domain.ActivityState, day string, a domain.QuizAttempt) (domain.ActivityState, domain.AttemptOutcome) {
	t.Helper()
	next, outcome, err := RecordAttempt(state, day, a)
	require.NoError(t, err)
	return next, outcome
}

func TestRecordAttemptScenarios(t *testing.T) {
	var state domain.ActivityState

	// A: first attempt below the threshold.
	state, out := mustRecord(t, state, "2024-01-01", attempt("algorithms", 65, 30))
	want := domain.QuizRecord{
		QuizType:  "algorithms",
		Attempts:  1,
		Scores:    []float64{65},
		TimeSpent: []float64{30},
	}
	require.Equal(t, want, out.Lifetime)
	require.Equal(t, want, out.Daily)
	require.False(t, out.LifetimeCrossed)
	require.False(t, out.DailyCrossed)

	// B: second attempt on the same day crosses in both scopes.
	state, out = mustRecord(t, state, "2024-01-01", attempt("algorithms", 85, 20))
	want = domain.QuizRecord{
		QuizType:                 "algorithms",
		Attempts:                 2,
		Scores:                   []float64{65, 85},
		TimeSpent:                []float64{30, 20},
		ReachedThreshold:         true,
		AttemptsToReachThreshold: 2,
	}
	require.Equal(t, want, out.Lifetime)
	require.Equal(t, want, out.Daily)
	require.True(t, out.LifetimeCrossed)
	require.True(t, out.DailyCrossed)

	// C: a new day crosses locally on its first attempt; lifetime stays frozen at 2.
	state, out = mustRecord(t, state, "2024-01-02", attempt("algorithms", 90, 10))
	require.Equal(t, domain.QuizRecord{
		QuizType:                 "algorithms",
		Attempts:                 3,
		Scores:                   []float64{65, 85, 90},
		TimeSpent:                []float64{30, 20, 10},
		ReachedThreshold:         true,
		AttemptsToReachThreshold: 2,
	}, out.Lifetime)
	require.Equal(t, domain.QuizRecord{
		QuizType:                 "algorithms",
		Attempts:                 1,
		Scores:                   []float64{90},
		TimeSpent:                []float64{10},
		ReachedThreshold:         true,
		AttemptsToReachThreshold: 1,
	}, out.Daily)
	require.False(t, out.LifetimeCrossed)
	require.True(t, out.DailyCrossed)

	require.Len(t, state.ActivityLogs, 2)
	require.Len(t, state.QuizHistory, 1)
	first, ok := state.Log("2024-01-01")
	require.True(t, ok)
	require.Equal(t, 2, first.Quizzes[0].Attempts)
}

func TestThresholdIsWriteOnce(t *testing.T) {
	var state domain.ActivityState
	scores := []float64{50, 80, 95, 100, 20, 81}
	for _, s := range scores {
		state, _ = mustRecord(t, state, "2024-03-01", attempt("review", s, 5))
	}
	rec := state.QuizHistory[0]
	require.True(t, rec.ReachedThreshold)
	require.Equal(t, 2, rec.AttemptsToReachThreshold)
	require.Equal(t, len(scores), rec.Attempts)
}

func TestScopesCrossIndependently(t *testing.T) {
	var state domain.ActivityState
	for i := 0; i < 4; i++ {
		state, _ = mustRecord(t, state, "2024-02-01", attempt("python1", 40, 60))
	}
	// Fifth lifetime attempt, first of the new day.
	state, out := mustRecord(t, state, "2024-02-02", attempt("python1", 88, 45))
	require.Equal(t, 5, out.Lifetime.AttemptsToReachThreshold)
	require.Equal(t, 1, out.Daily.AttemptsToReachThreshold)

	// The earlier day never crossed and is not touched by later days.
	day1, ok := state.Log("2024-02-01")
	require.True(t, ok)
	require.False(t, day1.Quizzes[0].ReachedThreshold)
	require.Zero(t, day1.Quizzes[0].AttemptsToReachThreshold)

	// Crossing a second time in a later day leaves lifetime frozen.
	state, _ = mustRecord(t, state, "2024-02-03", attempt("python1", 10, 1))
	state, out = mustRecord(t, state, "2024-02-03", attempt("python1", 99, 1))
	require.Equal(t, 5, out.Lifetime.AttemptsToReachThreshold)
	require.Equal(t, 2, out.Daily.AttemptsToReachThreshold)
	require.True(t, out.DailyCrossed)
	require.False(t, out.LifetimeCrossed)
	require.Len(t, state.ActivityLogs, 3)
}

func TestNewQuizTypeDoesNotDisturbOthers(t *testing.T) {
	var state domain.ActivityState
	state, _ = mustRecord(t, state, "2024-01-01", attempt("intro", 70, 10))
	state, _ = mustRecord(t, state, "2024-01-01", attempt("intro", 90, 11))

	before := state.Clone()
	state, out := mustRecord(t, state, "2024-01-01", attempt("cobol2", 30, 99))

	require.Len(t, state.QuizHistory, 2)
	require.Equal(t, before.QuizHistory[0], state.QuizHistory[0])
	log, _ := state.Log("2024-01-01")
	require.Len(t, log.Quizzes, 2)
	require.Equal(t, before.ActivityLogs[0].Quizzes[0], log.Quizzes[0])
	require.Len(t, out.DailyActivity, 2)
	require.Len(t, out.QuizHistory, 2)
}

func TestLengthInvariantHolds(t *testing.T) {
	var state domain.ActivityState
	types := []string{"a", "b", "c"}
	for i := 0; i < 30; i++ {
		day := fmt.Sprintf("2024-05-%02d", i%4+1)
		state, _ = mustRecord(t, state, day, attempt(types[i%len(types)], float64(i*7%110), float64(i)))
	}
	check := func(r domain.QuizRecord) {
		require.Equal(t, r.Attempts, len(r.Scores), r.QuizType)
		require.Equal(t, r.Attempts, len(r.TimeSpent), r.QuizType)
		require.Equal(t, r.ReachedThreshold, r.AttemptsToReachThreshold > 0)
		require.LessOrEqual(t, r.AttemptsToReachThreshold, r.Attempts)
	}
	total := 0
	for _, r := range state.QuizHistory {
		check(r)
		total += r.Attempts
	}
	require.Equal(t, 30, total)
	require.Len(t, state.ActivityLogs, 4)
	for _, l := range state.ActivityLogs {
		seen := map[string]bool{}
		for _, r := range l.Quizzes {
			require.False(t, seen[r.QuizType], "duplicate %s on %s", r.QuizType, l.Date)
			seen[r.QuizType] = true
			check(r)
		}
	}
}

func TestOutOfRangeScoresAreRecorded(t *testing.T) {
	state, out := mustRecord(t, domain.ActivityState{}, "2024-01-01", attempt("beyond", -10, 0))
	require.Equal(t, []float64{-10}, out.Lifetime.Scores)
	require.False(t, out.Lifetime.ReachedThreshold)

	_, out = mustRecord(t, state, "2024-01-01", attempt("beyond", 150, -3))
	require.Equal(t, []float64{-10, 150}, out.Lifetime.Scores)
	require.Equal(t, []float64{0, -3}, out.Lifetime.TimeSpent)
	require.Equal(t, 2, out.Lifetime.AttemptsToReachThreshold)
}

func TestRecordAttemptRejectsInvalidInput(t *testing.T) {
	base, _ := mustRecord(t, domain.ActivityState{}, "2024-01-01", attempt("intro", 50, 5))
	snapshot := base.Clone()

	cases := map[string]struct {
		day     string
		attempt domain.QuizAttempt
	}{
		"empty day":       {"", attempt("intro", 50, 5)},
		"blank type":      {"2024-01-01", attempt("  ", 50, 5)},
		"nan score":       {"2024-01-01", attempt("intro", math.NaN(), 5)},
		"infinite score":  {"2024-01-01", attempt("intro", math.Inf(1), 5)},
		"nan time spent":  {"2024-01-01", attempt("intro", 50, math.NaN())},
		"negative inf ts": {"2024-01-01", attempt("intro", 50, math.Inf(-1))},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, out, err := RecordAttempt(base, tc.day, tc.attempt)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			require.Equal(t, snapshot, got)
			require.Equal(t, domain.AttemptOutcome{}, out)
		})
	}
	require.Equal(t, snapshot, base)
}

func TestRecordAttemptLeavesInputUntouched(t *testing.T) {
	base, _ := mustRecord(t, domain.ActivityState{}, "2024-01-01", attempt("intro", 50, 5))
	snapshot := base.Clone()

	_, out := mustRecord(t, base, "2024-01-01", attempt("intro", 90, 5))
	require.Equal(t, snapshot, base)

	// The outcome does not alias the returned state either.
	out.Lifetime.Scores[0] = -1
	require.Equal(t, float64(50), base.QuizHistory[0].Scores[0])
}
