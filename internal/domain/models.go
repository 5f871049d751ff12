package domain

// QuizRecord summarises the attempts at one quiz type within a single scope,
// either one calendar day or the learner's whole history.
type QuizRecord struct {
	QuizType  string    `json:"type"`
	Attempts  int       `json:"attempts"`
	Scores    []float64 `json:"scores"`
	TimeSpent []float64 `json:"timeSpent"`
	// ReachedThreshold and AttemptsToReachThreshold are set together, once.
	ReachedThreshold         bool `json:"reachedThreshold"`
	AttemptsToReachThreshold int  `json:"attemptsToReachThreshold"`
}

// NewQuizRecord returns an empty record for quizType.
func NewQuizRecord(quizType string) QuizRecord {
	return QuizRecord{
		QuizType:  quizType,
		Scores:    []float64{},
		TimeSpent: []float64{},
	}
}

// Clone returns a deep copy of r.
func (r QuizRecord) Clone() QuizRecord {
	r.Scores = cloneSlice(r.Scores)
	r.TimeSpent = cloneSlice(r.TimeSpent)
	return r
}

// DailyActivityLog is the bucket of events for one calendar day.
type DailyActivityLog struct {
	Date         string       `json:"date"`
	LoginTimes   []string     `json:"loginTimes"`
	LogoutTimes  []string     `json:"logoutTimes"`
	PagesVisited []string     `json:"pagesVisited"`
	Quizzes      []QuizRecord `json:"quizzes"`
}

// NewDailyActivityLog returns an empty bucket for date.
func NewDailyActivityLog(date string) DailyActivityLog {
	return DailyActivityLog{
		Date:         date,
		LoginTimes:   []string{},
		LogoutTimes:  []string{},
		PagesVisited: []string{},
		Quizzes:      []QuizRecord{},
	}
}

// Clone returns a deep copy of l.
func (l DailyActivityLog) Clone() DailyActivityLog {
	l.LoginTimes = cloneSlice(l.LoginTimes)
	l.LogoutTimes = cloneSlice(l.LogoutTimes)
	l.PagesVisited = cloneSlice(l.PagesVisited)
	l.Quizzes = CloneRecords(l.Quizzes)
	return l
}

// ActivityState is the part of a user record owned by the aggregation engine.
type ActivityState struct {
	QuizHistory  []QuizRecord       `json:"quizHistory"`
	ActivityLogs []DailyActivityLog `json:"activityLogs"`
}

// Clone returns a deep copy of s. Mutating the copy never affects s.
func (s ActivityState) Clone() ActivityState {
	logs := make([]DailyActivityLog, len(s.ActivityLogs))
	for i, l := range s.ActivityLogs {
		logs[i] = l.Clone()
	}
	return ActivityState{
		QuizHistory:  CloneRecords(s.QuizHistory),
		ActivityLogs: logs,
	}
}

// Log returns the bucket for day, if one exists.
func (s ActivityState) Log(day string) (DailyActivityLog, bool) {
	for _, l := range s.ActivityLogs {
		if l.Date == day {
			return l, true
		}
	}
	return DailyActivityLog{}, false
}

// QuizAttempt is a single submitted quiz result.
type QuizAttempt struct {
	QuizType  string  `json:"type"`
	Score     float64 `json:"score"`
	TimeSpent float64 `json:"timeSpent"`
}

// AttemptOutcome reports what a recorded attempt changed.
type AttemptOutcome struct {
	Day      string     `json:"day"`
	Lifetime QuizRecord `json:"lifetime"`
	Daily    QuizRecord `json:"daily"`
	// LifetimeCrossed and DailyCrossed are true only on the attempt that crossed the threshold.
	LifetimeCrossed bool         `json:"lifetimeCrossed"`
	DailyCrossed    bool         `json:"dailyCrossed"`
	QuizHistory     []QuizRecord `json:"quizHistory"`
	DailyActivity   []QuizRecord `json:"dailyActivity"`
}

// CloneRecords returns a deep copy of in.
func CloneRecords(in []QuizRecord) []QuizRecord {
	out := make([]QuizRecord, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
