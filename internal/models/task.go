package models

import "time"

// GoalEntryPrefix marks timeline entries synthesized from goals.
const GoalEntryPrefix = "goal-"

type DailyTask struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	StartTime string    `json:"start_time"` // HH:MM format
	EndTime   string    `json:"end_time"`   // HH:MM format
	Date      string    `json:"date"`       // YYYY-MM-DD format
	CreatedAt time.Time `json:"created_at"`
}

// TimelineEntry is one row of the daily planner: either a persisted task or
// an entry derived from a goal active on that date.
type TimelineEntry struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Date      string `json:"date"`
	IsGoal    bool   `json:"is_goal"`
	Color     string `json:"color,omitempty"`
}

func (t DailyTask) Entry() TimelineEntry {
	return TimelineEntry{
		ID:        t.ID,
		Content:   t.Content,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Date:      t.Date,
	}
}

func (g Goal) Entry(date string) TimelineEntry {
	return TimelineEntry{
		ID:        GoalEntryPrefix + g.ID,
		Content:   g.Title,
		StartTime: g.StartTime,
		EndTime:   g.EndTime,
		Date:      date,
		IsGoal:    true,
		Color:     g.Color,
	}
}
