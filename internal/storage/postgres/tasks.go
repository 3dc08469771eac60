package postgres

import (
	"context"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) SaveDailyTask(ctx context.Context, task models.DailyTask) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO daily_tasks (id, user_id, content, start_time, end_time, date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    content = EXCLUDED.content,
    start_time = EXCLUDED.start_time,
    end_time = EXCLUDED.end_time,
    date = EXCLUDED.date
WHERE daily_tasks.user_id = EXCLUDED.user_id`,
		task.ID, task.UserID, task.Content, task.StartTime, task.EndTime, task.Date, task.CreatedAt.UTC())
	return err
}

func (s *Store) GetDailyTasks(ctx context.Context, userID, date string) ([]models.DailyTask, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, content, start_time, end_time, date, created_at
FROM daily_tasks WHERE user_id = $1 AND date = $2
ORDER BY start_time`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.DailyTask{}
	for rows.Next() {
		var t models.DailyTask
		if err := rows.Scan(&t.ID, &t.UserID, &t.Content, &t.StartTime, &t.EndTime, &t.Date, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) DeleteDailyTask(ctx context.Context, userID, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM daily_tasks WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}
