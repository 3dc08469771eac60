package postgres

import (
	"context"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) SaveEnergyLevel(ctx context.Context, level models.EnergyLevel) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO hourly_energy_levels (id, user_id, hour, level, date, notes, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    level = EXCLUDED.level,
    notes = EXCLUDED.notes,
    recorded_at = EXCLUDED.recorded_at
WHERE hourly_energy_levels.user_id = EXCLUDED.user_id`,
		level.ID, level.UserID, level.Hour, level.Level, level.Date, level.Notes, level.RecordedAt.UTC())
	return err
}

func (s *Store) GetEnergyLevel(ctx context.Context, userID, date string, hour int) (models.EnergyLevel, error) {
	var e models.EnergyLevel
	err := s.db.QueryRowContext(ctx, `
SELECT id, user_id, hour, level, date, notes, recorded_at
FROM hourly_energy_levels WHERE user_id = $1 AND date = $2 AND hour = $3`,
		userID, date, hour).Scan(&e.ID, &e.UserID, &e.Hour, &e.Level, &e.Date, &e.Notes, &e.RecordedAt)
	if err != nil {
		return models.EnergyLevel{}, notFound(err, "energy level")
	}
	return e, nil
}

func (s *Store) GetEnergyLevels(ctx context.Context, userID, startDate, endDate string) ([]models.EnergyLevel, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, hour, level, date, notes, recorded_at
FROM hourly_energy_levels
WHERE user_id = $1 AND date >= $2 AND date <= $3
ORDER BY date, hour`, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	levels := []models.EnergyLevel{}
	for rows.Next() {
		var e models.EnergyLevel
		if err := rows.Scan(&e.ID, &e.UserID, &e.Hour, &e.Level, &e.Date, &e.Notes, &e.RecordedAt); err != nil {
			return nil, err
		}
		levels = append(levels, e)
	}
	return levels, rows.Err()
}
