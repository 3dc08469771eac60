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

// GoalStore holds goals together with the completions and misses of the
// most recently fetched date range.
type GoalStore struct {
	state
	*env
	data goalState
}

func (s *GoalStore) Goals() []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.goals)
}

func (s *GoalStore) Goal(id string) (models.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.data.goals {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goal{}, false
}

func (s *GoalStore) Completions() []models.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.completions)
}

func (s *GoalStore) Misses() []models.Miss {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.misses)
}

// FetchGoals replaces the goal list, newest first.
func (s *GoalStore) FetchGoals(ctx context.Context) error {
	s.beginFetch()
	goals, err := fetchScoped(ctx, s.env, s.provider.GetGoals)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.data.goals = []models.Goal{}
		return s.failLocked("fetch goals", err, true)
	}
	s.data.goals = goals
	s.status = StatusReady
	return nil
}

// AddGoal validates and stores a new goal. ID, owner and creation time
// are assigned here.
func (s *GoalStore) AddGoal(ctx context.Context, goal models.Goal) (models.Goal, error) {
	s.beginMutation()
	uid, err := s.userID(ctx)
	if err != nil {
		return models.Goal{}, s.fail("add goal", err)
	}
	if err := goal.Validate(); err != nil {
		return models.Goal{}, s.fail("add goal", err)
	}

	goal.ID = uuid.NewString()
	goal.UserID = uid
	goal.CreatedAt = s.now()
	if err := retry.Run(ctx, s.retry, func(ctx context.Context) error {
		return s.provider.SaveGoal(ctx, goal)
	}); err != nil {
		return models.Goal{}, s.fail("add goal", err)
	}

	s.mu.Lock()
	s.data = goalAdded(s.data, goal)
	s.mu.Unlock()
	return goal, nil
}

// UpdateGoal replaces every editable field of an existing goal.
func (s *GoalStore) UpdateGoal(ctx context.Context, goal models.Goal) error {
	s.beginMutation()
	uid, err := s.userID(ctx)
	if err != nil {
		return s.fail("update goal", err)
	}
	if err := goal.Validate(); err != nil {
		return s.fail("update goal", err)
	}
	if goal.ID == "" {
		return s.fail("update goal", fmt.Errorf("%w: goal ID is required", apperrors.ErrInvalidInput))
	}
	goal.UserID = uid
	if goal.CreatedAt.IsZero() {
		if existing, ok := s.Goal(goal.ID); ok {
			goal.CreatedAt = existing.CreatedAt
		} else {
			goal.CreatedAt = s.now()
		}
	}

	if err := retry.Run(ctx, s.retry, func(ctx context.Context) error {
		return s.provider.SaveGoal(ctx, goal)
	}); err != nil {
		return s.fail("update goal", err)
	}

	s.mu.Lock()
	s.data = goalUpdated(s.data, goal)
	s.mu.Unlock()
	return nil
}

func (s *GoalStore) DeleteGoal(ctx context.Context, id string) error {
	s.beginMutation()
	uid, err := s.userID(ctx)
	if err != nil {
		return s.fail("delete goal", err)
	}
	if err := retry.Run(ctx, s.retry, func(ctx context.Context) error {
		return s.provider.DeleteGoal(ctx, uid, id)
	}); err != nil {
		return s.fail("delete goal", err)
	}

	s.mu.Lock()
	s.data = goalDeleted(s.data, id)
	s.mu.Unlock()
	return nil
}

// ToggleCompletion flips the completion for goalID on date. An existing
// completion is removed; otherwise any miss for that day is removed and a
// completion is recorded.
// When the miss is removed but the completion cannot be saved, the local
// miss is dropped as well and the day reads as unset.
func (s *GoalStore) ToggleCompletion(ctx context.Context, goalID, date string) error {
	s.beginMutation()
	uid, err := s.userID(ctx)
	if err != nil {
		return s.fail("toggle goal completion", err)
	}
	if _, err := utils.ParseDate(date, time.UTC); err != nil {
		return s.fail("toggle goal completion", err)
	}

	existing, err := s.completionOn(ctx, uid, goalID, date)
	if err != nil {
		return s.fail("toggle goal completion", err)
	}

	if existing != nil {
		if err := retry.Run(ctx, s.retry, func(ctx context.Context) error {
			return s.provider.DeleteCompletionOn(ctx, uid, goalID, date)
		}); err != nil {
			return s.fail("toggle goal completion", err)
		}
		s.mu.Lock()
		s.data = completionRemoved(s.data, goalID, date)
		s.mu.Unlock()
		return nil
	}

	completion := models.Completion{
		ID:            uuid.NewString(),
		UserID:        uid,
		GoalID:        goalID,
		CompletedDate: date,
		CreatedAt:     s.now(),
	}
	missDeleted := false
	if err := retry.Run(ctx, s.retry, func(ctx context.Context) error {
		if err := s.provider.DeleteMissOn(ctx, uid, goalID, date); err != nil {
			return err
		}
		missDeleted = true
		return s.provider.SaveCompletion(ctx, completion)
	}); err != nil {
		if missDeleted {
			s.mu.Lock()
			s.data = missRemoved(s.data, goalID, date)
			s.mu.Unlock()
		}
		return s.fail("toggle goal completion", err)
	}

	s.mu.Lock()
	s.data = completionAdded(s.data, completion)
	s.mu.Unlock()
	return nil
}

// completionOn checks the fetched slice first and falls back to the data
// service, so a day outside the fetched range still toggles correctly.
func (s *GoalStore) completionOn(ctx context.Context, uid, goalID, date string) (*models.Completion, error) {
	s.mu.Lock()
	for _, c := range s.data.completions {
		if c.GoalID == goalID && c.CompletedDate == date {
			s.mu.Unlock()
			return &c, nil
		}
	}
	s.mu.Unlock()

	c, err := retry.Do(ctx, s.retry, func(ctx context.Context) (models.Completion, error) {
		c, err := s.provider.GetCompletion(ctx, uid, goalID, date)
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.Completion{}, nil
		}
		return c, err
	})
	if err != nil || c.ID == "" {
		return nil, err
	}
	return &c, nil
}

// MarkMissed records why goalID was missed on date. An existing miss has
// its reason and plan updated; otherwise any completion for that day is
// removed and a new miss is recorded. A completion removed before a failed save
// is dropped locally too.
func (s *GoalStore) MarkMissed(ctx context.Context, goalID, date, reason, plan string) (models.Miss, error) {
	s.beginMutation()
	uid, err := s.userID(ctx)
	if err != nil {
		return models.Miss{}, s.fail("mark goal as missed", err)
	}
	if _, err := utils.ParseDate(date, time.UTC); err != nil {
		return models.Miss{}, s.fail("mark goal as missed", err)
	}

	newID := uuid.NewString()
	now := s.now()
	completionDeleted := false
	miss, err := retry.Do(ctx, s.retry, func(ctx context.Context) (models.Miss, error) {
		existing, err := s.provider.GetMiss(ctx, uid, goalID, date)
		switch {
		case err == nil:
			existing.Reason = reason
			existing.ImprovementPlan = plan
			return existing, s.provider.SaveMiss(ctx, existing)
		case !errors.Is(err, apperrors.ErrNotFound):
			return models.Miss{}, err
		}

		if err := s.provider.DeleteCompletionOn(ctx, uid, goalID, date); err != nil {
			return models.Miss{}, err
		}
		completionDeleted = true
		m := models.Miss{
			ID:              newID,
			UserID:          uid,
			GoalID:          goalID,
			MissedDate:      date,
			Reason:          reason,
			ImprovementPlan: plan,
			CreatedAt:       now,
		}
		return m, s.provider.SaveMiss(ctx, m)
	})
	if err != nil {
		if completionDeleted {
			s.mu.Lock()
			s.data = completionRemoved(s.data, goalID, date)
			s.mu.Unlock()
		}
		return models.Miss{}, s.fail("mark goal as missed", err)
	}

	s.mu.Lock()
	s.data = missRecorded(s.data, miss)
	s.mu.Unlock()
	return miss, nil
}

// FetchCompletions replaces the completion slice with those dated within
// [startDate, endDate].
func (s *GoalStore) FetchCompletions(ctx context.Context, startDate, endDate string) error {
	s.beginFetch()
	completions, err := fetchScoped(ctx, s.env, func(ctx context.Context, uid string) ([]models.Completion, error) {
		return s.provider.GetCompletions(ctx, uid, startDate, endDate)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.data.completions = []models.Completion{}
		return s.failLocked("fetch completions", err, true)
	}
	s.data.completions = completions
	s.status = StatusReady
	return nil
}

// FetchMisses replaces the miss slice with those dated within
// [startDate, endDate], newest first.
func (s *GoalStore) FetchMisses(ctx context.Context, startDate, endDate string) error {
	s.beginFetch()
	misses, err := fetchScoped(ctx, s.env, func(ctx context.Context, uid string) ([]models.Miss, error) {
		return s.provider.GetMisses(ctx, uid, startDate, endDate)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.data.misses = []models.Miss{}
		return s.failLocked("fetch misses", err, true)
	}
	s.data.misses = misses
	s.status = StatusReady
	return nil
}

// fetchScoped resolves the user and runs query through the retry policy.
func fetchScoped[T any](ctx context.Context, e *env, query func(context.Context, string) (T, error)) (T, error) {
	uid, err := e.userID(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return retry.Do(ctx, e.retry, func(ctx context.Context) (T, error) {
		return query(ctx, uid)
	})
}

// StatusOf reports whether goalID is completed, missed or unset on date,
// according to the fetched slices.
func (s *GoalStore) StatusOf(goalID, date string) models.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.data.completions {
		if c.GoalID == goalID && c.CompletedDate == date {
			return models.StatusCompleted
		}
	}
	for _, m := range s.data.misses {
		if m.GoalID == goalID && m.MissedDate == date {
			return models.StatusMissed
		}
	}
	return models.StatusUnset
}

// CompletionRate is the rounded percentage of goalID's scheduled days in
// month, counted from the goal's start date, that have a completion. It
// uses only fetched state and returns 0 when no day is eligible.
func (s *GoalStore) CompletionRate(goalID string, month time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var goal *models.Goal
	for i := range s.data.goals {
		if s.data.goals[i].ID == goalID {
			goal = &s.data.goals[i]
			break
		}
	}
	if goal == nil {
		return 0
	}

	done := make(map[string]bool)
	for _, c := range s.data.completions {
		if c.GoalID == goalID {
			done[c.CompletedDate] = true
		}
	}

	eligible, completed := 0, 0
	utils.EachDay(utils.StartOfMonth(month), utils.EndOfMonth(month), func(day time.Time) {
		date := day.Format(constants.DateFormat)
		if date < goal.StartDate || !utils.MatchesFrequency(goal.Frequency, day) {
			return
		}
		eligible++
		if done[date] {
			completed++
		}
	})
	if eligible == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(eligible) * 100))
}
