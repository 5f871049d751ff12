package domain

import "time"

// Role controls whether a learner is listed.
type Role string

const (
	RoleStudent Role = "student"
	RoleOffline Role = "Offline"
)

// User is the stored learner record. Version is maintained by the store and
// is not part of the serialized document.
type User struct {
	ID           string                    `json:"id"`
	Username     string                    `json:"username"`
	Email        string                    `json:"email"`
	FirstName    string                    `json:"firstName"`
	LastName     string                    `json:"lastName"`
	PasswordHash string                    `json:"passwordHash,omitempty"`
	Role         Role                      `json:"role"`
	RegisteredAt time.Time                 `json:"registeredAt"`
	Progress     map[ProgressField]float64 `json:"progress"`
	Activity     ActivityState             `json:"activity"`
	Version      int64                     `json:"-"`
}

// NewUser holds the fields supplied when registering a learner.
type NewUser struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	progress := make(map[ProgressField]float64, len(u.Progress))
	for k, v := range u.Progress {
		progress[k] = v
	}
	u.Progress = progress
	u.Activity = u.Activity.Clone()
	return u
}

// ProgressScore returns the stored score for f, or -1 when none was recorded.
func (u User) ProgressScore(f ProgressField) float64 {
	if v, ok := u.Progress[f]; ok {
		return v
	}
	return -1
}

// ProgressScores returns every progress slot, with -1 for slots never scored.
func (u User) ProgressScores() map[ProgressField]float64 {
	out := make(map[ProgressField]float64, len(progressFields))
	for _, f := range progressFields {
		out[f] = u.ProgressScore(f)
	}
	return out
}
