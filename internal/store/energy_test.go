package store

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func TestHourlyAverages(t *testing.T) {
	levels := []models.EnergyLevel{
		{Hour: 9, Level: 3}, {Hour: 9, Level: 4},
		{Hour: 10, Level: 1}, {Hour: 10, Level: 2}, {Hour: 10, Level: 2},
	}
	got := HourlyAverages(levels)
	if len(got) != 24 {
		t.Fatalf("len = %d, want 24", len(got))
	}
	tests := []struct {
		hour  int
		avg   float64
		count int
	}{
		{hour: 0, avg: 0, count: 0},
		{hour: 9, avg: 3.5, count: 2},
		{hour: 10, avg: 1.67, count: 3},
	}
	for _, tt := range tests {
		if got[tt.hour].AverageLevel != tt.avg || got[tt.hour].RecordCount != tt.count {
			t.Errorf("hour %d = %+v, want avg %v count %d", tt.hour, got[tt.hour], tt.avg, tt.count)
		}
	}
}

func TestSetHourlyLevel(t *testing.T) {
	app, db := setupApp(t)
	ctx := context.Background()

	first, err := app.Energy.SetHourlyLevel(ctx, 9, 2, "2024-01-15", "slow start")
	if err != nil {
		t.Fatalf("SetHourlyLevel: %v", err)
	}
	second, err := app.Energy.SetHourlyLevel(ctx, 9, 4, "2024-01-15", "")
	if err != nil {
		t.Fatalf("SetHourlyLevel: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second set created a new record")
	}
	if second.Notes != "slow start" {
		t.Errorf("notes = %q, want kept", second.Notes)
	}

	levels, err := db.GetEnergyLevels(ctx, "user-1", "2024-01-15", "2024-01-15")
	if err != nil || len(levels) != 1 || levels[0].Level != 4 {
		t.Fatalf("remote levels = %+v, %v", levels, err)
	}
	if local := app.Energy.Levels(); len(local) != 1 || local[0].Level != 4 {
		t.Errorf("local levels = %+v", local)
	}
	if avg := app.Energy.Averages(); len(avg) != 24 || avg[9].AverageLevel != 4 || avg[9].RecordCount != 1 {
		t.Errorf("averages not refreshed: %+v", avg[9])
	}

	if err := app.Energy.FetchHourlyLevels(ctx, "2024-01-15"); err != nil {
		t.Fatalf("FetchHourlyLevels: %v", err)
	}
	if len(app.Energy.Levels()) != 1 {
		t.Errorf("fetched levels = %+v", app.Energy.Levels())
	}
}

func TestSetHourlyLevelValidation(t *testing.T) {
	app, _ := setupApp(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		hour  int
		level int
		date  string
	}{
		{name: "hour too large", hour: 24, level: 3, date: "2024-01-15"},
		{name: "negative hour", hour: -1, level: 3, date: "2024-01-15"},
		{name: "level out of range", hour: 8, level: 9, date: "2024-01-15"},
		{name: "bad date", hour: 8, level: 3, date: "15/01/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := app.Energy.SetHourlyLevel(ctx, tt.hour, tt.level, tt.date, ""); !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestFetchHourlyAveragesFailureEmpties(t *testing.T) {
	app := signedOutApp(t)
	app.Energy.averages = HourlyAverages([]models.EnergyLevel{{Hour: 9, Level: 4}})

	if err := app.Energy.FetchHourlyAverages(context.Background()); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("FetchHourlyAverages() error = %v", err)
	}
	if avg := app.Energy.Averages(); len(avg) != 0 {
		t.Errorf("averages after failure = %d buckets, want 0", len(avg))
	}
	if app.Energy.Status() != StatusErrored {
		t.Errorf("status = %v, want errored", app.Energy.Status())
	}
}
