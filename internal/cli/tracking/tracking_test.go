package tracking

import (
	"errors"
	"strings"
	"testing"

	"github.com/sallieha/HabitTrackerApp/internal/chat"
	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/cli/clitest"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
)

func TestMoodSetAndShow(t *testing.T) {
	ctx := clitest.SignedIn(t)

	if err := (&MoodCmd{}).Run(ctx); err != nil {
		t.Fatalf("show with no mood failed: %v", err)
	}
	if _, ok := ctx.App.Moods.TodaysMood(); ok {
		t.Fatal("unexpected mood before one was recorded")
	}

	if err := (&MoodCmd{Mood: []string{"pretty", "good"}}).Run(ctx); err != nil {
		t.Fatalf("set mood failed: %v", err)
	}
	if err := (&MoodCmd{History: 7}).Run(ctx); err != nil {
		t.Fatalf("show mood failed: %v", err)
	}
	mood, ok := ctx.App.Moods.TodaysMood()
	if !ok || mood.Mood != "pretty good" {
		t.Errorf("today's mood = %+v, %v", mood, ok)
	}
	if n := len(ctx.App.Moods.Moods()); n != 1 {
		t.Errorf("history = %d moods, want 1", n)
	}
}

func TestMoodRequiresSignIn(t *testing.T) {
	ctx := clitest.NewContext(t)
	if err := (&MoodCmd{Mood: []string{"ok"}}).Run(ctx); !errors.Is(err, cli.ErrNotSignedIn) {
		t.Errorf("err = %v, want ErrNotSignedIn", err)
	}
}

func TestEnergySetUpdatesHour(t *testing.T) {
	ctx := clitest.SignedIn(t)

	if err := (&EnergySetCmd{Hour: 9, Level: 4, Date: "2024-01-15", Notes: "coffee"}).Run(ctx); err != nil {
		t.Fatalf("energy set failed: %v", err)
	}
	if err := (&EnergySetCmd{Hour: 9, Level: 2, Date: "2024-01-15"}).Run(ctx); err != nil {
		t.Fatalf("energy set failed: %v", err)
	}
	if err := (&EnergyShowCmd{Date: "2024-01-15"}).Run(ctx); err != nil {
		t.Fatalf("energy show failed: %v", err)
	}

	levels := ctx.App.Energy.Levels()
	if len(levels) != 1 {
		t.Fatalf("levels = %d, want 1", len(levels))
	}
	if levels[0].Level != 2 || levels[0].Notes != "coffee" {
		t.Errorf("level = %+v, want level 2 keeping the note", levels[0])
	}

	if err := (&EnergyAveragesCmd{}).Run(ctx); err != nil {
		t.Fatalf("energy averages failed: %v", err)
	}
	for _, a := range ctx.App.Energy.Averages() {
		if a.Hour == 9 && (a.RecordCount != 1 || a.AverageLevel != 2) {
			t.Errorf("hour 9 average = %+v", a)
		}
	}
}

func TestEnergySetValidation(t *testing.T) {
	ctx := clitest.SignedIn(t)

	tests := []struct {
		name string
		cmd  EnergySetCmd
	}{
		{"level too high", EnergySetCmd{Hour: 9, Level: 6}},
		{"level too low", EnergySetCmd{Hour: 9, Level: 0}},
		{"hour out of range", EnergySetCmd{Hour: 24, Level: 3}},
		{"bad date", EnergySetCmd{Hour: 9, Level: 3, Date: "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		level  float64
		filled int
	}{
		{0, 0},
		{2.4, 2},
		{2.5, 3},
		{5, 5},
		{9, 5},
	}
	for _, tt := range tests {
		got := Bar(tt.level)
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("Bar(%v) has %d filled cells, want %d", tt.level, n, tt.filled)
		}
		if n := strings.Count(got, "░"); n != 5-tt.filled {
			t.Errorf("Bar(%v) has %d empty cells, want %d", tt.level, n, 5-tt.filled)
		}
	}
}

func TestChatSendAndShow(t *testing.T) {
	ctx := clitest.SignedIn(t)

	if err := (&ChatCmd{}).Run(ctx); err != nil {
		t.Fatalf("show empty chat failed: %v", err)
	}
	if err := (&ChatCmd{Message: []string{"help", "with", "my", "habit"}}).Run(ctx); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := (&ChatCmd{Prompt: 4}).Run(ctx); err != nil {
		t.Fatalf("send prompt failed: %v", err)
	}

	var msgs []chat.Message
	if _, err := ctx.LocalState.Get(constants.StateChatMessages, &msgs); err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 4 {
		t.Fatalf("messages = %d, want 4", len(msgs))
	}
	if msgs[2].Content != chat.SuggestedPrompts[3].Text {
		t.Errorf("prompt message = %q", msgs[2].Content)
	}
	if msgs[3].Content != chat.Reply(chat.SuggestedPrompts[3].Text) {
		t.Errorf("prompt reply = %q", msgs[3].Content)
	}
	var show, cleared bool
	ctx.LocalState.Get(constants.StateChatShowChat, &show)
	ctx.LocalState.Get(constants.StateChatClearedLogin, &cleared)
	if !show || !cleared {
		t.Errorf("showChat = %v, cleared = %v, want both true", show, cleared)
	}

	if err := (&ChatCmd{}).Run(ctx); err != nil {
		t.Fatalf("show chat failed: %v", err)
	}
}

func TestChatClearsOnFirstSignIn(t *testing.T) {
	ctx := clitest.SignedIn(t)

	stale := []chat.Message{{ID: "old", Content: "from last time", IsUser: true}}
	if err := ctx.LocalState.Set(constants.StateChatMessages, stale); err != nil {
		t.Fatal(err)
	}
	if err := ctx.LocalState.Set(constants.StateChatShowChat, true); err != nil {
		t.Fatal(err)
	}

	if err := (&ChatCmd{Message: []string{"hi"}}).Run(ctx); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	var msgs []chat.Message
	ctx.LocalState.Get(constants.StateChatMessages, &msgs)
	if len(msgs) != 2 || msgs[0].ID == "old" {
		t.Errorf("messages = %+v, want only the new exchange", msgs)
	}
}

func TestChatClear(t *testing.T) {
	ctx := clitest.SignedIn(t)
	if err := (&ChatCmd{AddNew: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ChatCmd{Clear: true}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	var msgs []chat.Message
	var show bool
	ctx.LocalState.Get(constants.StateChatMessages, &msgs)
	ctx.LocalState.Get(constants.StateChatShowChat, &show)
	if len(msgs) != 0 || show {
		t.Errorf("after clear: %d messages, showChat = %v", len(msgs), show)
	}
}

func TestChatRejectsBadInput(t *testing.T) {
	ctx := clitest.SignedIn(t)
	tests := []struct {
		name string
		cmd  ChatCmd
		want string
	}{
		{"prompt too high", ChatCmd{Prompt: 5}, "between 1 and 4"},
		{"prompt negative", ChatCmd{Prompt: -1}, "between 1 and 4"},
		{"two sources", ChatCmd{Message: []string{"hi"}, Manual: true}, "give one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestChatRequiresSignIn(t *testing.T) {
	ctx := clitest.NewContext(t)
	if err := (&ChatCmd{Message: []string{"hi"}}).Run(ctx); !errors.Is(err, cli.ErrNotSignedIn) {
		t.Errorf("err = %v, want ErrNotSignedIn", err)
	}
}
