package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/sallieha/HabitTrackerApp/internal/constants"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/retry"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

type EnergyStore struct {
	state
	*env
	levels   []models.EnergyLevel
	averages []models.HourlyAverage
}

func (s *EnergyStore) Levels() []models.EnergyLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.levels)
}

func (s *EnergyStore) Averages() []models.HourlyAverage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.averages)
}

// FetchHourlyLevels loads every level recorded on date, ordered by hour.
func (s *EnergyStore) FetchHourlyLevels(ctx context.Context, date string) error {
	s.beginFetch()
	if _, err := utils.ParseDate(date, time.UTC); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.failLocked("fetch energy levels", err, true)
	}
	levels, err := fetchScoped(ctx, s.env, func(ctx context.Context, uid string) ([]models.EnergyLevel, error) {
		return s.provider.GetEnergyLevels(ctx, uid, date, date)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.levels = []models.EnergyLevel{}
		return s.failLocked("fetch energy levels", err, true)
	}
	s.levels = levels
	s.status = StatusReady
	return nil
}

// FetchHourlyAverages averages the last thirty days of levels, through
// today, into one bucket per hour.
func (s *EnergyStore) FetchHourlyAverages(ctx context.Context) error {
	s.beginFetch()
	now := s.now()
	start := now.AddDate(0, 0, -constants.EnergyWindowDays).Format(constants.DateFormat)
	end := now.Format(constants.DateFormat)
	levels, err := fetchScoped(ctx, s.env, func(ctx context.Context, uid string) ([]models.EnergyLevel, error) {
		return s.provider.GetEnergyLevels(ctx, uid, start, end)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.averages = []models.HourlyAverage{}
		return s.failLocked("fetch averages", err, true)
	}
	s.averages = HourlyAverages(levels)
	s.status = StatusReady
	return nil
}

// HourlyAverages returns 24 buckets, one per hour, each averaged to two
// decimals. Hours without records average 0.
func HourlyAverages(levels []models.EnergyLevel) []models.HourlyAverage {
	var totals, counts [constants.HoursPerDay]int
	for _, l := range levels {
		if l.Hour < 0 || l.Hour >= constants.HoursPerDay {
			continue
		}
		totals[l.Hour] += l.Level
		counts[l.Hour]++
	}

	out := make([]models.HourlyAverage, constants.HoursPerDay)
	for h := range out {
		out[h] = models.HourlyAverage{Hour: h, RecordCount: counts[h]}
		if counts[h] > 0 {
			out[h].AverageLevel = math.Round(float64(totals[h])/float64(counts[h])*100) / 100
		}
	}
	return out
}

// SetHourlyLevel records level for hour on date, updating the existing
// record for that hour if there is one, then refreshes the averages.
func (s *EnergyStore) SetHourlyLevel(ctx context.Context, hour, level int, date, notes string) (models.EnergyLevel, error) {
	s.beginMutation()
	uid, err := s.userID(ctx)
	if err != nil {
		return models.EnergyLevel{}, s.fail("set energy level", err)
	}
	if err := validateEnergy(hour, level, date); err != nil {
		return models.EnergyLevel{}, s.fail("set energy level", err)
	}

	newID := uuid.NewString()
	now := s.now()
	saved, err := retry.Do(ctx, s.retry, func(ctx context.Context) (models.EnergyLevel, error) {
		l, err := s.provider.GetEnergyLevel(ctx, uid, date, hour)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			l = models.EnergyLevel{ID: newID, UserID: uid, Hour: hour, Date: date}
		case err != nil:
			return models.EnergyLevel{}, err
		}
		l.Level = level
		l.RecordedAt = now
		if notes != "" {
			l.Notes = notes
		}
		return l, s.provider.SaveEnergyLevel(ctx, l)
	})
	if err != nil {
		return models.EnergyLevel{}, s.fail("set energy level", err)
	}

	s.mu.Lock()
	s.levels = energyRecorded(s.levels, saved)
	s.mu.Unlock()

	if err := s.FetchHourlyAverages(ctx); err != nil {
		return saved, err
	}
	return saved, nil
}

func validateEnergy(hour, level int, date string) error {
	if hour < 0 || hour >= constants.HoursPerDay {
		return fmt.Errorf("%w: hour must be between 0 and 23, got %d", apperrors.ErrInvalidInput, hour)
	}
	if level < models.MinEnergyLevel || level > models.MaxEnergyLevel {
		return fmt.Errorf("%w: energy level must be between %d and %d, got %d",
			apperrors.ErrInvalidInput, models.MinEnergyLevel, models.MaxEnergyLevel, level)
	}
	_, err := utils.ParseDate(date, time.UTC)
	return err
}
