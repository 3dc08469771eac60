package models

import "time"

type Mood struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

// Energy is rated from 1 (very low) to 5 (very high).
const (
	MinEnergyLevel = 1
	MaxEnergyLevel = 5
)

// EnergyLevel is one hour's self-reported energy. At most one exists per
// (user, date, hour).
type EnergyLevel struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Hour       int       `json:"hour"` // 0-23
	Level      int       `json:"level"`
	Date       string    `json:"date"` // YYYY-MM-DD format
	Notes      string    `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type HourlyAverage struct {
	Hour         int     `json:"hour"`
	AverageLevel float64 `json:"average_level"`
	RecordCount  int     `json:"record_count"`
}
