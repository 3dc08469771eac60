package store

import (
	"context"
	"math"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/models"
)

type StatsStore struct {
	state
	*env
	stats models.Stats
}

func (s *StatsStore) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// FetchStats computes the dashboard figures from the goal list and the
// last thirty days of completions.
func (s *StatsStore) FetchStats(ctx context.Context) error {
	s.beginFetch()
	now := s.now()
	start := now.AddDate(0, 0, -constants.StatsWindowDays).Format(constants.DateFormat)
	end := now.Format(constants.DateFormat)

	goals, err := fetchScoped(ctx, s.env, s.provider.GetGoals)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.failLocked("fetch stats", err, true)
	}
	completions, err := fetchScoped(ctx, s.env, func(ctx context.Context, uid string) ([]models.Completion, error) {
		return s.provider.GetCompletions(ctx, uid, start, end)
	})
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.failLocked("fetch stats", err, true)
	}

	stats := ComputeStats(now, len(goals), completions)
	s.mu.Lock()
	s.stats = stats
	s.status = StatusReady
	s.mu.Unlock()
	return nil
}

// ComputeStats derives the streak and completion rate. The streak counts
// consecutive days, ending today, with at least one completion of any goal.
// The rate compares the completions against one per goal per day of the
// window.
func ComputeStats(today time.Time, goalCount int, completions []models.Completion) models.Stats {
	days := make(map[string]bool, len(completions))
	for _, c := range completions {
		days[c.CompletedDate] = true
	}

	streak := 0
	for d := today; days[d.Format(constants.DateFormat)]; d = d.AddDate(0, 0, -1) {
		streak++
	}

	rate := 0
	if possible := goalCount * constants.StatsWindowDays; possible > 0 {
		rate = int(math.Round(float64(len(completions)) / float64(possible) * 100))
	}
	return models.Stats{CurrentStreak: streak, CompletionRate: rate, ActiveGoals: goalCount}
}
