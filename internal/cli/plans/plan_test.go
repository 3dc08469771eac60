package plans

import (
	"context"
	"strings"
	"testing"

	"github.com/sallieha/HabitTrackerApp/internal/cli/clitest"
	"github.com/sallieha/HabitTrackerApp/internal/models"
)

const day = "2024-01-15" // a Monday

func TestPlanAddListDelete(t *testing.T) {
	ctx := clitest.SignedIn(t)

	if err := (&PlanAddCmd{Content: "Write report", Start: "9:00", End: "10:30", Date: day}).Run(ctx); err != nil {
		t.Fatalf("plan add failed: %v", err)
	}
	if err := (&PlanListCmd{Date: day}).Run(ctx); err != nil {
		t.Fatalf("plan list failed: %v", err)
	}

	entries := ctx.App.Planner.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	task := entries[0]
	if task.StartTime != "09:00" || task.EndTime != "10:30" {
		t.Errorf("times = %s-%s, want normalized 09:00-10:30", task.StartTime, task.EndTime)
	}

	if err := (&PlanDeleteCmd{ID: task.ID[:8], Date: day}).Run(ctx); err != nil {
		t.Fatalf("plan delete failed: %v", err)
	}
	if err := (&PlanListCmd{Date: day}).Run(ctx); err != nil {
		t.Fatalf("plan list failed: %v", err)
	}
	if n := len(ctx.App.Planner.Entries()); n != 0 {
		t.Errorf("entries after delete = %d, want 0", n)
	}
}

func TestPlanIncludesGoals(t *testing.T) {
	ctx := clitest.SignedIn(t)
	goal, err := ctx.App.Goals.AddGoal(context.Background(), models.Goal{
		Title:     "Morning run",
		Color:     "#22c55e",
		Frequency: []string{"Monday"},
		StartDate: "2024-01-01",
		StartTime: "07:00",
		EndTime:   "07:45",
	})
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if err := (&PlanAddCmd{Content: "Stand-up", Start: "09:00", End: "09:15", Date: day}).Run(ctx); err != nil {
		t.Fatalf("plan add failed: %v", err)
	}
	if err := (&PlanListCmd{Date: day}).Run(ctx); err != nil {
		t.Fatalf("plan list failed: %v", err)
	}

	entries := ctx.App.Planner.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if !entries[0].IsGoal || entries[0].Content != goal.Title {
		t.Errorf("first entry = %+v, want the goal ordered by start time", entries[0])
	}

	err = (&PlanDeleteCmd{ID: entries[0].ID, Date: day}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "comes from a goal") {
		t.Errorf("deleting a goal entry: err = %v", err)
	}

	// Tuesday has no goal entry.
	if err := (&PlanListCmd{Date: "2024-01-16"}).Run(ctx); err != nil {
		t.Fatalf("plan list failed: %v", err)
	}
	if n := len(ctx.App.Planner.Entries()); n != 0 {
		t.Errorf("Tuesday entries = %d, want 0", n)
	}
}

func TestPlanDeleteUnknown(t *testing.T) {
	ctx := clitest.SignedIn(t)
	if err := (&PlanDeleteCmd{ID: "nope", Date: day}).Run(ctx); err == nil {
		t.Error("expected not found")
	}
}

func TestFormatEntry(t *testing.T) {
	task := models.TimelineEntry{ID: "0123456789abcdef", Content: "Email", StartTime: "08:00", EndTime: "08:30"}
	if got := formatEntry(task, false); !strings.Contains(got, "[01234567]") {
		t.Errorf("short ID missing: %q", got)
	}
	if got := formatEntry(task, true); !strings.Contains(got, "[0123456789abcdef]") {
		t.Errorf("full ID missing: %q", got)
	}
	allDay := models.TimelineEntry{ID: models.GoalEntryPrefix + "g1", Content: "Read", IsGoal: true, Color: "#fff"}
	if got := formatEntry(allDay, false); !strings.Contains(got, "all day") {
		t.Errorf("all-day span missing: %q", got)
	}
}
