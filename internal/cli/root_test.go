package cli

import (
	"testing"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
)

func TestFormatFrequency(t *testing.T) {
	tests := []struct {
		days []string
		want string
	}{
		{[]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}, "daily"},
		{[]string{"Friday", "Monday", "Tuesday", "Wednesday", "Thursday"}, "weekdays"},
		{[]string{"Sunday", "Saturday"}, "weekends"},
		{[]string{"Wednesday", "Monday"}, "Mon,Wed"},
		{[]string{"Saturday", "Sunday", "Monday"}, "Sun,Mon,Sat"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := FormatFrequency(tt.days); got != tt.want {
			t.Errorf("FormatFrequency(%v) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"too long here", 8, "too lon…"},
		{"héllo wörld", 6, "héllo…"},
		{"ab", 1, "a"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestContextDate(t *testing.T) {
	ctx := &Context{Clock: clock.Fake(time.Date(2024, 3, 9, 23, 30, 0, 0, time.Local))}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "2024-03-09", false},
		{"2024-02-29", "2024-02-29", false},
		{"2023-02-29", "", true},
		{"03/09/2024", "", true},
	}
	for _, tt := range tests {
		got, err := ctx.Date(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Date(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Date(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
