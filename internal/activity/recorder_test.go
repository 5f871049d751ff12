package activity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"learner-activity-service/internal/domain"
)

func TestLoginAndLogoutShareOneBucket(t *testing.T) {
	orders := map[string][]string{
		"login first":  {"login", "logout"},
		"logout first": {"logout", "login"},
	}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			var (
				state domain.ActivityState
				err   error
			)
			for _, ev := range order {
				if ev == "login" {
					state, err = RecordLogin(state, "2024-01-01", "09:00:00")
				} else {
					state, err = RecordLogout(state, "2024-01-01", "17:30:00")
				}
				require.NoError(t, err)
			}
			require.Len(t, state.ActivityLogs, 1)
			log := state.ActivityLogs[0]
			require.Equal(t, "2024-01-01", log.Date)
			require.Equal(t, []string{"09:00:00"}, log.LoginTimes)
			require.Equal(t, []string{"17:30:00"}, log.LogoutTimes)
			require.Empty(t, log.Quizzes)
			require.NotNil(t, log.PagesVisited)
		})
	}
}

func TestLoginBucketsByDay(t *testing.T) {
	state, err := RecordLogin(domain.ActivityState{}, "2024-01-01", "08:00:00")
	require.NoError(t, err)
	state, err = RecordLogin(state, "2024-01-01", "12:00:00")
	require.NoError(t, err)
	state, err = RecordLogin(state, "2024-01-02", "08:00:00")
	require.NoError(t, err)

	require.Len(t, state.ActivityLogs, 2)
	require.Equal(t, []string{"08:00:00", "12:00:00"}, state.ActivityLogs[0].LoginTimes)
	require.Equal(t, []string{"08:00:00"}, state.ActivityLogs[1].LoginTimes)
}

func TestLoginSharesBucketWithQuizAttempts(t *testing.T) {
	state, _, err := RecordAttempt(domain.ActivityState{}, "2024-01-01", domain.QuizAttempt{QuizType: "intro", Score: 10})
	require.NoError(t, err)
	state, err = RecordLogout(state, "2024-01-01", "10:00:00")
	require.NoError(t, err)

	require.Len(t, state.ActivityLogs, 1)
	require.Len(t, state.ActivityLogs[0].Quizzes, 1)
	require.Equal(t, []string{"10:00:00"}, state.ActivityLogs[0].LogoutTimes)
}

func TestLoginRequiresDay(t *testing.T) {
	base, err := RecordLogin(domain.ActivityState{}, "2024-01-01", "08:00:00")
	require.NoError(t, err)

	got, err := RecordLogin(base, " ", "09:00:00")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Equal(t, base, got)

	_, err = RecordLogout(base, "", "09:00:00")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetOrInsertKeepsKeysUnique(t *testing.T) {
	type item struct {
		key string
		n   int
	}
	var items []item
	key := func(i *item) string { return i.key }
	for _, k := range []string{"a", "b", "a", "c", "b", "a"} {
		getOrInsert(&items, key, k, func() item { return item{key: k} }).n++
	}
	require.Equal(t, []item{{"a", 3}, {"b", 2}, {"c", 1}}, items)
}
