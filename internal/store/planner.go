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

// PlannerStore is the daily timeline: persisted tasks plus entries derived
// from the goals scheduled that day.
type PlannerStore struct {
	state
	*env
	goals   *GoalStore
	entries []models.TimelineEntry
}

func (s *PlannerStore) Entries() []models.TimelineEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// FetchTasks loads the tasks for date and merges in an entry for every
// goal active that day, using the goals already held by the goal store.
// The result is ordered by start time.
func (s *PlannerStore) FetchTasks(ctx context.Context, date string) error {
	s.beginFetch()
	day, err := utils.ParseDate(date, time.UTC)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.failLocked("fetch tasks", err, true)
	}
	tasks, err := fetchScoped(ctx, s.env, func(ctx context.Context, uid string) ([]models.DailyTask, error) {
		return s.provider.GetDailyTasks(ctx, uid, date)
	})
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.entries = []models.TimelineEntry{}
		return s.failLocked("fetch tasks", err, true)
	}

	entries := make([]models.TimelineEntry, 0, len(tasks))
	for _, t := range tasks {
		entries = append(entries, t.Entry())
	}
	for _, g := range s.goals.Goals() {
		if g.IsActiveOn(day) {
			entries = append(entries, g.Entry(date))
		}
	}
	sortTimeline(entries)

	s.mu.Lock()
	s.entries = entries
	s.status = StatusReady
	s.mu.Unlock()
	return nil
}

// AddTask stores a new task and inserts it into the timeline.
func (s *PlannerStore) AddTask(ctx context.Context, content, startTime, endTime, date string) (models.TimelineEntry, error) {
	s.beginMutation()
	uid, err := s.userID(ctx)
	if err != nil {
		return models.TimelineEntry{}, s.fail("add task", err)
	}
	task, err := s.newTask(uid, content, startTime, endTime, date)
	if err != nil {
		return models.TimelineEntry{}, s.fail("add task", err)
	}

	if err := retry.Run(ctx, s.retry, func(ctx context.Context) error {
		return s.provider.SaveDailyTask(ctx, task)
	}); err != nil {
		return models.TimelineEntry{}, s.fail("add task", err)
	}

	entry := task.Entry()
	s.mu.Lock()
	s.entries = timelineAdded(s.entries, entry)
	s.mu.Unlock()
	return entry, nil
}

func (s *PlannerStore) newTask(uid, content, startTime, endTime, date string) (models.DailyTask, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.DailyTask{}, fmt.Errorf("%w: task content cannot be empty", apperrors.ErrInvalidInput)
	}
	if _, err := utils.ParseDate(date, time.UTC); err != nil {
		return models.DailyTask{}, err
	}
	start, err := utils.NormalizeTime(startTime)
	if err != nil {
		return models.DailyTask{}, err
	}
	end, err := utils.NormalizeTime(endTime)
	if err != nil {
		return models.DailyTask{}, err
	}
	if end < start {
		return models.DailyTask{}, fmt.Errorf("%w: end time %s is before start time %s", apperrors.ErrInvalidInput, end, start)
	}
	return models.DailyTask{
		ID:        uuid.NewString(),
		UserID:    uid,
		Content:   content,
		StartTime: start,
		EndTime:   end,
		Date:      date,
		CreatedAt: s.now(),
	}, nil
}

// DeleteTask removes a task from the timeline. Goal-derived entries are
// never persisted, so they are only dropped locally.
func (s *PlannerStore) DeleteTask(ctx context.Context, id string) error {
	s.beginMutation()
	if !strings.HasPrefix(id, models.GoalEntryPrefix) {
		uid, err := s.userID(ctx)
		if err != nil {
			return s.fail("delete task", err)
		}
		if err := retry.Run(ctx, s.retry, func(ctx context.Context) error {
			return s.provider.DeleteDailyTask(ctx, uid, id)
		}); err != nil {
			return s.fail("delete task", err)
		}
	}

	s.mu.Lock()
	s.entries = timelineRemoved(s.entries, id)
	s.mu.Unlock()
	return nil
}
