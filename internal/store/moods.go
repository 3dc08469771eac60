package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/retry"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

type MoodStore struct {
	state
	*env
	moods []models.Mood
	today *models.Mood
}

func (s *MoodStore) Moods() []models.Mood {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.moods)
}

// TodaysMood returns the latest mood recorded today, if any was fetched or set.
func (s *MoodStore) TodaysMood() (models.Mood, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.today == nil {
		return models.Mood{}, false
	}
	return *s.today, true
}

// SetTodaysMood records a new mood. Earlier moods for the day are kept;
// the latest one wins.
func (s *MoodStore) SetTodaysMood(ctx context.Context, mood string) (models.Mood, error) {
	s.beginMutation()
	uid, err := s.userID(ctx)
	if err != nil {
		return models.Mood{}, s.fail("set mood", err)
	}
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return models.Mood{}, s.fail("set mood", fmt.Errorf("%w: mood cannot be empty", apperrors.ErrInvalidInput))
	}

	m := models.Mood{ID: uuid.NewString(), UserID: uid, Mood: mood, CreatedAt: s.now()}
	if err := retry.Run(ctx, s.retry, func(ctx context.Context) error {
		return s.provider.SaveMood(ctx, m)
	}); err != nil {
		return models.Mood{}, s.fail("set mood", err)
	}

	s.mu.Lock()
	s.today = &m
	s.mu.Unlock()
	return m, nil
}

// FetchTodaysMood loads the latest mood created within the current day.
func (s *MoodStore) FetchTodaysMood(ctx context.Context) error {
	s.beginFetch()
	start := utils.StartOfDay(s.now())
	moods, err := fetchScoped(ctx, s.env, func(ctx context.Context, uid string) ([]models.Mood, error) {
		return s.provider.GetMoods(ctx, uid, start, start.AddDate(0, 0, 1))
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.today = nil
		return s.failLocked("fetch today's mood", err, true)
	}
	s.today = nil
	if len(moods) > 0 {
		latest := moods[len(moods)-1]
		s.today = &latest
	}
	s.status = StatusReady
	return nil
}

// FetchMoods replaces the mood slice with moods created in [from, to),
// oldest first.
func (s *MoodStore) FetchMoods(ctx context.Context, from, to time.Time) error {
	s.beginFetch()
	moods, err := fetchScoped(ctx, s.env, func(ctx context.Context, uid string) ([]models.Mood, error) {
		return s.provider.GetMoods(ctx, uid, from, to)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.moods = []models.Mood{}
		return s.failLocked("fetch month moods", err, true)
	}
	s.moods = moods
	s.status = StatusReady
	return nil
}
