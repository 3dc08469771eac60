package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) SaveGoal(ctx context.Context, goal models.Goal) error {
	frequency, err := json.Marshal(goal.Frequency)
	if err != nil {
		return fmt.Errorf("failed to encode frequency: %w", err)
	}

	var endDate sql.NullString
	if goal.EndDate != "" {
		endDate = sql.NullString{String: goal.EndDate, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO goals (id, user_id, title, description, color, frequency, start_date, end_date, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			color = excluded.color,
			frequency = excluded.frequency,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			start_time = excluded.start_time,
			end_time = excluded.end_time
		WHERE goals.user_id = excluded.user_id`,
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.Color, string(frequency),
		goal.StartDate, endDate, goal.StartTime, goal.EndTime, formatTimestamp(goal.CreatedAt))
	return err
}

func (s *Store) GetGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, description, color, frequency, start_date, end_date, start_time, end_time, created_at
		FROM goals WHERE user_id = ?
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		var frequency, createdAt string
		var endDate sql.NullString
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Color, &frequency,
			&g.StartDate, &endDate, &g.StartTime, &g.EndTime, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(frequency), &g.Frequency); err != nil {
			return nil, fmt.Errorf("failed to decode frequency for goal %s: %w", g.ID, err)
		}
		g.EndDate = endDate.String
		if g.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) DeleteGoal(ctx context.Context, userID, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	return err
}
