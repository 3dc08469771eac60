package store

import (
	"sync"

	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
)

// Status tracks a store's fetch lifecycle: idle until the first fetch,
// then loading and finally ready or errored. Both ready and errored go
// back to loading on the next fetch.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusErrored:
		return "errored"
	default:
		return "idle"
	}
}

// state is embedded in every store. mu also guards the embedding store's
// slices. It is never held across a remote call.
type state struct {
	mu     sync.Mutex
	status Status
	err    string
}

func (s *state) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastError returns the message recorded by the last failed action, or "".
func (s *state) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *state) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *state) beginFetch() {
	s.mu.Lock()
	s.status = StatusLoading
	s.err = ""
	s.mu.Unlock()
}

func (s *state) beginMutation() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// failLocked records the failure of action and returns err unchanged.
func (s *state) failLocked(action string, err error, fetch bool) error {
	s.err = apperrors.Action(action, err)
	if fetch {
		s.status = StatusErrored
	}
	logger.Error(s.err)
	return err
}

func (s *state) fail(action string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failLocked(action, err, false)
}
