package sqlite

import (
	"context"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) SaveDailyTask(ctx context.Context, task models.DailyTask) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_tasks (id, user_id, content, start_time, end_time, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			date = excluded.date
		WHERE daily_tasks.user_id = excluded.user_id`,
		task.ID, task.UserID, task.Content, task.StartTime, task.EndTime, task.Date, formatTimestamp(task.CreatedAt))
	return err
}

func (s *Store) GetDailyTasks(ctx context.Context, userID, date string) ([]models.DailyTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, content, start_time, end_time, date, created_at
		FROM daily_tasks WHERE user_id = ? AND date = ?
		ORDER BY start_time`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.DailyTask{}
	for rows.Next() {
		var t models.DailyTask
		var createdAt string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Content, &t.StartTime, &t.EndTime, &t.Date, &createdAt); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) DeleteDailyTask(ctx context.Context, userID, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM daily_tasks WHERE id = ? AND user_id = ?`, id, userID)
	return err
}
