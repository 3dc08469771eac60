package store

import (
	"slices"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

// Reducers derive new state from old plus a server-confirmed result. They
// never modify their inputs.

// goalState is the slice set owned by GoalStore.
type goalState struct {
	goals       []models.Goal
	completions []models.Completion
	misses      []models.Miss
}

func goalAdded(s goalState, g models.Goal) goalState {
	s.goals = append([]models.Goal{g}, s.goals...)
	return s
}

func goalUpdated(s goalState, g models.Goal) goalState {
	goals := slices.Clone(s.goals)
	for i := range goals {
		if goals[i].ID == g.ID {
			goals[i] = g
		}
	}
	s.goals = goals
	return s
}

// goalDeleted also drops the goal's completions and misses, which the
// data service removes by cascade.
func goalDeleted(s goalState, id string) goalState {
	s.goals = slices.DeleteFunc(slices.Clone(s.goals), func(g models.Goal) bool { return g.ID == id })
	s.completions = slices.DeleteFunc(slices.Clone(s.completions), func(c models.Completion) bool { return c.GoalID == id })
	s.misses = slices.DeleteFunc(slices.Clone(s.misses), func(m models.Miss) bool { return m.GoalID == id })
	return s
}

// completionAdded records c and removes any miss for the same goal and date.
func completionAdded(s goalState, c models.Completion) goalState {
	s.completions = append(withoutCompletionOn(s.completions, c.GoalID, c.CompletedDate), c)
	s.misses = withoutMissOn(s.misses, c.GoalID, c.CompletedDate)
	return s
}

func completionRemoved(s goalState, goalID, date string) goalState {
	s.completions = withoutCompletionOn(s.completions, goalID, date)
	return s
}

func missRemoved(s goalState, goalID, date string) goalState {
	s.misses = withoutMissOn(s.misses, goalID, date)
	return s
}

// missRecorded adds or replaces m and removes any completion for the same
// goal and date.
func missRecorded(s goalState, m models.Miss) goalState {
	s.misses = append(withoutMissOn(s.misses, m.GoalID, m.MissedDate), m)
	s.completions = withoutCompletionOn(s.completions, m.GoalID, m.MissedDate)
	return s
}

func withoutCompletionOn(cs []models.Completion, goalID, date string) []models.Completion {
	return slices.DeleteFunc(slices.Clone(cs), func(c models.Completion) bool {
		return c.GoalID == goalID && c.CompletedDate == date
	})
}

func withoutMissOn(ms []models.Miss, goalID, date string) []models.Miss {
	return slices.DeleteFunc(slices.Clone(ms), func(m models.Miss) bool {
		return m.GoalID == goalID && m.MissedDate == date
	})
}

// energyRecorded replaces the level with the same ID and keeps the slice
// ordered by hour.
func energyRecorded(levels []models.EnergyLevel, l models.EnergyLevel) []models.EnergyLevel {
	out := slices.DeleteFunc(slices.Clone(levels), func(e models.EnergyLevel) bool { return e.ID == l.ID })
	out = append(out, l)
	slices.SortStableFunc(out, func(a, b models.EnergyLevel) int { return a.Hour - b.Hour })
	return out
}

func timelineAdded(entries []models.TimelineEntry, e models.TimelineEntry) []models.TimelineEntry {
	out := append(slices.Clone(entries), e)
	sortTimeline(out)
	return out
}

func timelineRemoved(entries []models.TimelineEntry, id string) []models.TimelineEntry {
	return slices.DeleteFunc(slices.Clone(entries), func(e models.TimelineEntry) bool { return e.ID == id })
}

func sortTimeline(entries []models.TimelineEntry) {
	slices.SortStableFunc(entries, func(a, b models.TimelineEntry) int {
		switch {
		case a.StartTime < b.StartTime:
			return -1
		case a.StartTime > b.StartTime:
			return 1
		}
		return 0
	})
}
