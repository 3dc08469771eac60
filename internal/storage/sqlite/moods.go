package sqlite

import (
	"context"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) SaveMood(ctx context.Context, mood models.Mood) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO moods (id, user_id, mood, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		mood.ID, mood.UserID, mood.Mood, formatTimestamp(mood.CreatedAt))
	return err
}

func (s *Store) GetMoods(ctx context.Context, userID string, from, to time.Time) ([]models.Mood, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, mood, created_at
		FROM moods
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at`, userID, formatTimestamp(from), formatTimestamp(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moods := []models.Mood{}
	for rows.Next() {
		var m models.Mood
		var createdAt string
		if err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &createdAt); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}
