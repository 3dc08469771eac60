package models

import "time"

// Status is the per-(goal, date) state. Completion and miss never coexist.
type Status int

const (
	StatusUnset Status = iota
	StatusCompleted
	StatusMissed
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusMissed:
		return "missed"
	default:
		return "unset"
	}
}

type Completion struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	GoalID        string    `json:"goal_id"`
	CompletedDate string    `json:"completed_date"` // YYYY-MM-DD format
	CreatedAt     time.Time `json:"created_at"`
}

type Miss struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	GoalID          string    `json:"goal_id"`
	MissedDate      string    `json:"missed_date"` // YYYY-MM-DD format
	Reason          string    `json:"reason"`
	ImprovementPlan string    `json:"improvement_plan"`
	CreatedAt       time.Time `json:"created_at"`
}
