package postgres

import (
	"context"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) SaveCompletion(ctx context.Context, c models.Completion) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO goal_completions (id, user_id, goal_id, completed_date, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`,
		c.ID, c.UserID, c.GoalID, c.CompletedDate, c.CreatedAt.UTC())
	return err
}

func (s *Store) GetCompletion(ctx context.Context, userID, goalID, date string) (models.Completion, error) {
	var c models.Completion
	err := s.db.QueryRowContext(ctx, `
SELECT id, user_id, goal_id, completed_date, created_at
FROM goal_completions WHERE user_id = $1 AND goal_id = $2 AND completed_date = $3`,
		userID, goalID, date).Scan(&c.ID, &c.UserID, &c.GoalID, &c.CompletedDate, &c.CreatedAt)
	if err != nil {
		return models.Completion{}, notFound(err, "completion")
	}
	return c, nil
}

func (s *Store) GetCompletions(ctx context.Context, userID, startDate, endDate string) ([]models.Completion, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, goal_id, completed_date, created_at
FROM goal_completions
WHERE user_id = $1 AND completed_date >= $2 AND completed_date <= $3
ORDER BY completed_date`, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completions := []models.Completion{}
	for rows.Next() {
		var c models.Completion
		if err := rows.Scan(&c.ID, &c.UserID, &c.GoalID, &c.CompletedDate, &c.CreatedAt); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (s *Store) DeleteCompletion(ctx context.Context, userID, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM goal_completions WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (s *Store) DeleteCompletionOn(ctx context.Context, userID, goalID, date string) error {
	_, err := s.db.ExecContext(ctx, `
DELETE FROM goal_completions WHERE user_id = $1 AND goal_id = $2 AND completed_date = $3`,
		userID, goalID, date)
	return err
}

func (s *Store) SaveMiss(ctx context.Context, m models.Miss) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO goal_misses (id, user_id, goal_id, missed_date, reason, improvement_plan, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    reason = EXCLUDED.reason,
    improvement_plan = EXCLUDED.improvement_plan
WHERE goal_misses.user_id = EXCLUDED.user_id`,
		m.ID, m.UserID, m.GoalID, m.MissedDate, m.Reason, m.ImprovementPlan, m.CreatedAt.UTC())
	return err
}

func (s *Store) GetMiss(ctx context.Context, userID, goalID, date string) (models.Miss, error) {
	var m models.Miss
	err := s.db.QueryRowContext(ctx, `
SELECT id, user_id, goal_id, missed_date, reason, improvement_plan, created_at
FROM goal_misses WHERE user_id = $1 AND goal_id = $2 AND missed_date = $3`,
		userID, goalID, date).Scan(&m.ID, &m.UserID, &m.GoalID, &m.MissedDate, &m.Reason, &m.ImprovementPlan, &m.CreatedAt)
	if err != nil {
		return models.Miss{}, notFound(err, "miss")
	}
	return m, nil
}

func (s *Store) GetMisses(ctx context.Context, userID, startDate, endDate string) ([]models.Miss, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, goal_id, missed_date, reason, improvement_plan, created_at
FROM goal_misses
WHERE user_id = $1 AND missed_date >= $2 AND missed_date <= $3
ORDER BY missed_date DESC`, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	misses := []models.Miss{}
	for rows.Next() {
		var m models.Miss
		if err := rows.Scan(&m.ID, &m.UserID, &m.GoalID, &m.MissedDate, &m.Reason, &m.ImprovementPlan, &m.CreatedAt); err != nil {
			return nil, err
		}
		misses = append(misses, m)
	}
	return misses, rows.Err()
}

func (s *Store) DeleteMissOn(ctx context.Context, userID, goalID, date string) error {
	_, err := s.db.ExecContext(ctx, `
DELETE FROM goal_misses WHERE user_id = $1 AND goal_id = $2 AND missed_date = $3`,
		userID, goalID, date)
	return err
}
