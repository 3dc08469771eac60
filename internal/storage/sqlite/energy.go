package sqlite

import (
	"context"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) SaveEnergyLevel(ctx context.Context, level models.EnergyLevel) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hourly_energy_levels (id, user_id, hour, level, date, notes, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			level = excluded.level,
			notes = excluded.notes,
			recorded_at = excluded.recorded_at
		WHERE hourly_energy_levels.user_id = excluded.user_id`,
		level.ID, level.UserID, level.Hour, level.Level, level.Date, level.Notes, formatTimestamp(level.RecordedAt))
	return err
}

func (s *Store) GetEnergyLevel(ctx context.Context, userID, date string, hour int) (models.EnergyLevel, error) {
	var e models.EnergyLevel
	var recordedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, hour, level, date, notes, recorded_at
		FROM hourly_energy_levels WHERE user_id = ? AND date = ? AND hour = ?`,
		userID, date, hour).Scan(&e.ID, &e.UserID, &e.Hour, &e.Level, &e.Date, &e.Notes, &recordedAt)
	if err != nil {
		return models.EnergyLevel{}, notFound(err, "energy level")
	}
	if e.RecordedAt, err = parseTimestamp("recorded_at", recordedAt); err != nil {
		return models.EnergyLevel{}, err
	}
	return e, nil
}

func (s *Store) GetEnergyLevels(ctx context.Context, userID, startDate, endDate string) ([]models.EnergyLevel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, hour, level, date, notes, recorded_at
		FROM hourly_energy_levels
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date, hour`, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	levels := []models.EnergyLevel{}
	for rows.Next() {
		var e models.EnergyLevel
		var recordedAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Hour, &e.Level, &e.Date, &e.Notes, &recordedAt); err != nil {
			return nil, err
		}
		if e.RecordedAt, err = parseTimestamp("recorded_at", recordedAt); err != nil {
			return nil, err
		}
		levels = append(levels, e)
	}
	return levels, rows.Err()
}
