package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
)

type fakePinger struct {
	mu    sync.Mutex
	fails int
	calls int
}

func (p *fakePinger) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.fails != 0 {
		if p.fails > 0 {
			p.fails--
		}
		return errors.New("connection refused")
	}
	return nil
}

func (p *fakePinger) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

var start = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func noJitter() time.Duration { return 0 }

func TestBackoff(t *testing.T) {
	tests := []struct {
		retry  int
		jitter time.Duration
		want   time.Duration
	}{
		{1, 0, 2 * time.Second},
		{2, 500 * time.Millisecond, 4500 * time.Millisecond},
		{3, 0, 8 * time.Second},
		{3, 999 * time.Millisecond, 8999 * time.Millisecond},
		{4, 0, 10 * time.Second},
		{10, 999 * time.Millisecond, 10 * time.Second},
	}
	for _, tt := range tests {
		if got := Backoff(tt.retry, tt.jitter); got != tt.want {
			t.Errorf("Backoff(%d, %v) = %v, want %v", tt.retry, tt.jitter, got, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name        string
		fails       int
		wantHealthy bool
		wantCalls   int
		wantElapsed time.Duration
	}{
		{name: "healthy", fails: 0, wantHealthy: true, wantCalls: 1},
		{name: "recovers on second retry", fails: 2, wantHealthy: true, wantCalls: 3, wantElapsed: 6 * time.Second},
		{name: "gives up after max retries", fails: -1, wantHealthy: false, wantCalls: 4, wantElapsed: 14 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := clock.Fake(start).AutoAdvance()
			p := &fakePinger{fails: tt.fails}
			m := New(p, WithClock(clk), WithJitter(noJitter))

			if got := m.Check(context.Background()); got != tt.wantHealthy {
				t.Errorf("Check() = %v, want %v", got, tt.wantHealthy)
			}
			if m.Healthy() != tt.wantHealthy {
				t.Errorf("Healthy() = %v, want %v", m.Healthy(), tt.wantHealthy)
			}
			if p.Calls() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", p.Calls(), tt.wantCalls)
			}
			if elapsed := clk.Now().Sub(start); elapsed != tt.wantElapsed {
				t.Errorf("elapsed = %v, want %v", elapsed, tt.wantElapsed)
			}
		})
	}
}

func TestSetOnline(t *testing.T) {
	clk := clock.Fake(start).AutoAdvance()
	p := &fakePinger{}
	m := New(p, WithClock(clk), WithJitter(noJitter))
	ctx := context.Background()

	m.SetOnline(ctx, false)
	if m.Healthy() {
		t.Error("monitor should be unhealthy while offline")
	}
	if p.Calls() != 0 {
		t.Errorf("going offline pinged %d times", p.Calls())
	}

	m.SetOnline(ctx, true)
	if !m.Healthy() {
		t.Error("monitor should be healthy after coming back online")
	}
	if p.Calls() != 1 {
		t.Errorf("coming online pinged %d times, want 1", p.Calls())
	}

	// Already online: no extra check.
	m.SetOnline(ctx, true)
	if p.Calls() != 1 {
		t.Errorf("calls = %d, want 1", p.Calls())
	}
}

func TestRunProbesOnInterval(t *testing.T) {
	clk := clock.Fake(start)
	p := &fakePinger{}
	m := New(p, WithClock(clk), WithInterval(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	clk.WaitForTimers(1)
	for i := 0; i < 3; i++ {
		clk.Advance(time.Minute)
		want := i + 2
		deadline := time.Now().Add(2 * time.Second)
		for p.Calls() < want && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}
		if p.Calls() != want {
			t.Fatalf("after %d ticks calls = %d, want %d", i+1, p.Calls(), want)
		}
	}

	cancel()
	<-done
}
