// Package validation reports scheduling conflicts in goals and daily plans.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingEntries ConflictType = "overlapping_entries"
	ConflictDuplicateGoalTitle ConflictType = "duplicate_goal_title"
	ConflictInvalidTime        ConflictType = "invalid_time"
	ConflictEndBeforeStart     ConflictType = "end_before_start"
)

type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD, timeline conflicts only
	Items       []string // titles or task contents involved
	IDs         []string
}

type Result struct {
	Conflicts []Conflict
}

func (r Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Of returns the conflicts of the given types.
func (r Result) Of(types ...ConflictType) []Conflict {
	var out []Conflict
	for _, c := range r.Conflicts {
		for _, t := range types {
			if c.Type == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (r Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}
	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// ValidateGoals checks goal times and looks for goals sharing a title.
func ValidateGoals(goals []models.Goal) Result {
	var result Result

	byTitle := make(map[string][]string)
	var titles []string
	for _, g := range goals {
		key := strings.ToLower(strings.TrimSpace(g.Title))
		if key == "" {
			continue
		}
		if _, seen := byTitle[key]; !seen {
			titles = append(titles, key)
		}
		byTitle[key] = append(byTitle[key], g.ID)
	}
	for _, key := range titles {
		ids := byTitle[key]
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateGoalTitle,
				Description: fmt.Sprintf("Duplicate goal title: %q (IDs: %v)", key, ids),
				Items:       []string{key},
				IDs:         ids,
			})
		}
	}

	for _, g := range goals {
		result.Conflicts = append(result.Conflicts, checkTimes("Goal", g.ID, g.Title, g.StartTime, g.EndTime, "")...)
	}
	return result
}

// ValidateTimeline checks planner entries for bad times and for entries on
// the same date whose time ranges overlap. Entries touching at a boundary
// do not overlap; entries without a time window are never compared.
func ValidateTimeline(entries []models.TimelineEntry) Result {
	var result Result

	type span struct {
		models.TimelineEntry
		start, end time.Time
	}
	var valid []span
	for _, e := range entries {
		bad := checkTimes("Entry", e.ID, e.Content, e.StartTime, e.EndTime, e.Date)
		result.Conflicts = append(result.Conflicts, bad...)
		if len(bad) == 0 && e.StartTime != "" && e.EndTime != "" {
			start, _ := utils.ParseTime(e.StartTime)
			end, _ := utils.ParseTime(e.EndTime)
			valid = append(valid, span{e, start, end})
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].start.Before(valid[j].start)
	})
	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid); j++ {
			a, b := valid[i], valid[j]
			// sorted by start, nothing later can overlap a
			if !b.start.Before(a.end) {
				break
			}
			if a.Date != b.Date {
				continue
			}
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverlappingEntries,
				Description: fmt.Sprintf("%q (%s-%s) overlaps %q (%s-%s)",
					a.Content, a.StartTime, a.EndTime, b.Content, b.StartTime, b.EndTime),
				Date:  a.Date,
				Items: []string{a.Content, b.Content},
				IDs:   []string{a.ID, b.ID},
			})
		}
	}
	return result
}

func checkTimes(kind, id, name, start, end, date string) []Conflict {
	var out []Conflict
	var parsed []time.Time
	for _, t := range []string{start, end} {
		if t == "" {
			continue
		}
		p, err := utils.ParseTime(t)
		if err == nil {
			parsed = append(parsed, p)
			continue
		}
		out = append(out, Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("%s %q has invalid time: %q", kind, name, t),
			Date:        date,
			Items:       []string{name},
			IDs:         []string{id},
		})
	}
	if len(out) == 0 && len(parsed) == 2 && !parsed[1].After(parsed[0]) {
		out = append(out, Conflict{
			Type:        ConflictEndBeforeStart,
			Description: fmt.Sprintf("%s %q must end after it starts (%s-%s)", kind, name, start, end),
			Date:        date,
			Items:       []string{name},
			IDs:         []string{id},
		})
	}
	return out
}
