package postgres

import (
	"context"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) SaveMood(ctx context.Context, mood models.Mood) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO moods (id, user_id, mood, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`,
		mood.ID, mood.UserID, mood.Mood, mood.CreatedAt.UTC())
	return err
}

func (s *Store) GetMoods(ctx context.Context, userID string, from, to time.Time) ([]models.Mood, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, mood, created_at
FROM moods
WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
ORDER BY created_at`, userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moods := []models.Mood{}
	for rows.Next() {
		var m models.Mood
		if err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &m.CreatedAt); err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}
