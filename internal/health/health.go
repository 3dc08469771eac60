// Package health watches the connection to the data service. It is purely
// observational: nothing waits on it.
package health

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
)

// Pinger is anything that can cheaply ping the data service.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Monitor struct {
	pinger     Pinger
	clock      clock.Clock
	interval   time.Duration
	maxRetries int
	jitter     func() time.Duration

	mu      sync.Mutex
	healthy bool
	online  bool
}

type Option func(*Monitor)

func WithClock(c clock.Clock) Option { return func(m *Monitor) { m.clock = c } }

func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithJitter replaces the random jitter added to each backoff delay.
func WithJitter(fn func() time.Duration) Option { return func(m *Monitor) { m.jitter = fn } }

// New returns a monitor that starts out healthy and online.
func New(p Pinger, opts ...Option) *Monitor {
	m := &Monitor{
		pinger:     p,
		clock:      clock.Real(),
		interval:   constants.HealthCheckInterval,
		maxRetries: constants.HealthMaxRetries,
		jitter: func() time.Duration {
			return rand.N(constants.HealthMaxJitter)
		},
		healthy: true,
		online:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backoff is the wait before retry number n (1-based): 2^n seconds plus
// jitter, capped at ten seconds.
func Backoff(n int, jitter time.Duration) time.Duration {
	d := constants.HealthInitialDelay<<n + jitter
	if d > constants.HealthMaxBackoffDelay {
		return constants.HealthMaxBackoffDelay
	}
	return d
}

func (m *Monitor) Healthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy
}

// Check pings the service, retrying with backoff on failure. It returns
// the resulting health.
func (m *Monitor) Check(ctx context.Context) bool {
	for retry := 0; ; {
		err := m.pinger.Ping(ctx)
		if err == nil {
			m.mu.Lock()
			if !m.healthy {
				logger.Info("Database connection restored")
			}
			m.healthy = true
			m.mu.Unlock()
			return true
		}

		if retry >= m.maxRetries {
			m.mu.Lock()
			m.healthy = false
			m.mu.Unlock()
			logger.Error("Database health check failed after max retries", "error", err)
			return false
		}

		retry++
		delay := Backoff(retry, m.jitter())
		logger.Warn("Database health check failed, retrying", "attempt", retry, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			return m.Healthy()
		case <-m.clock.After(delay):
		}
	}
}

// SetOnline records a network transition. Going offline marks the service
// unhealthy at once; coming back online triggers a check.
func (m *Monitor) SetOnline(ctx context.Context, online bool) {
	m.mu.Lock()
	was := m.online
	m.online = online
	if !online {
		m.healthy = false
	}
	m.mu.Unlock()

	if !online {
		logger.Warn("Network offline")
		return
	}
	if !was {
		m.Check(ctx)
	}
}

// Run checks immediately and then on every interval until ctx is done.
// Probes are skipped while offline.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := m.clock.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mu.Lock()
			online := m.online
			m.mu.Unlock()
			if online {
				m.Check(ctx)
			}
		}
	}
}
