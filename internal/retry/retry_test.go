package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
)

var start = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func TestDo(t *testing.T) {
	errRemote := errors.New("remote unavailable")

	tests := []struct {
		name         string
		failures     int
		maxRetries   int
		wantErr      bool
		wantAttempts int
		wantElapsed  time.Duration
	}{
		{name: "first try succeeds", failures: 0, maxRetries: 3, wantAttempts: 1, wantElapsed: 0},
		{name: "succeeds after two failures", failures: 2, maxRetries: 3, wantAttempts: 3, wantElapsed: 3 * time.Second},
		{name: "succeeds on last attempt", failures: 3, maxRetries: 3, wantAttempts: 4, wantElapsed: 7 * time.Second},
		{name: "always fails", failures: 100, maxRetries: 3, wantErr: true, wantAttempts: 4, wantElapsed: 7 * time.Second},
		{name: "no retries", failures: 100, maxRetries: 0, wantErr: true, wantAttempts: 1, wantElapsed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := clock.Fake(start).AutoAdvance()
			p := Policy{MaxRetries: tt.maxRetries, InitialDelay: time.Second, Clock: clk}

			attempts := 0
			got, err := Do(context.Background(), p, func(context.Context) (string, error) {
				attempts++
				if attempts <= tt.failures {
					return "", errRemote
				}
				return "ok", nil
			})

			if tt.wantErr {
				if !errors.Is(err, errRemote) {
					t.Errorf("Do() error = %v, want %v", err, errRemote)
				}
			} else {
				if err != nil {
					t.Fatalf("Do() unexpected error: %v", err)
				}
				if got != "ok" {
					t.Errorf("Do() = %q, want %q", got, "ok")
				}
			}
			if attempts != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", attempts, tt.wantAttempts)
			}
			if elapsed := clk.Now().Sub(start); elapsed != tt.wantElapsed {
				t.Errorf("elapsed = %v, want %v", elapsed, tt.wantElapsed)
			}
		})
	}
}

func TestDoReturnsLastErrorUnchanged(t *testing.T) {
	clk := clock.Fake(start).AutoAdvance()
	p := Policy{MaxRetries: 2, InitialDelay: time.Millisecond, Clock: clk}

	var last error
	attempts := 0
	_, err := Do(context.Background(), p, func(context.Context) (int, error) {
		attempts++
		last = errors.New("failure " + string(rune('0'+attempts)))
		return 0, last
	})
	if err != last {
		t.Errorf("Do() error = %v, want the final attempt's error %v", err, last)
	}
}

func TestDoContextCancelled(t *testing.T) {
	clk := clock.Fake(start)
	p := Policy{MaxRetries: 3, InitialDelay: time.Second, Clock: clk}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, p, func(context.Context) error { return errors.New("down") })
	}()

	clk.WaitForTimers(1)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.MaxRetries != 3 || p.InitialDelay != time.Second {
		t.Errorf("DefaultPolicy() = %+v", p)
	}
}
