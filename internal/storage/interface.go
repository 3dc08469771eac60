package storage

import (
	"context"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

// Provider is the remote data service. Every entity query is scoped by
// user ID. Writes are upserts keyed by a client-generated ID so they are
// safe to repeat. Single-row lookups return errors.ErrNotFound when no
// row matches; deletes of missing rows succeed.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Ping(ctx context.Context) error

	// Users and sessions
	AddUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	SaveSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, token string) (models.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// Goals, newest first
	SaveGoal(ctx context.Context, goal models.Goal) error
	GetGoals(ctx context.Context, userID string) ([]models.Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error

	// Completions; at most one per (goal, date)
	SaveCompletion(ctx context.Context, c models.Completion) error
	GetCompletion(ctx context.Context, userID, goalID, date string) (models.Completion, error)
	GetCompletions(ctx context.Context, userID, startDate, endDate string) ([]models.Completion, error)
	DeleteCompletion(ctx context.Context, userID, id string) error
	DeleteCompletionOn(ctx context.Context, userID, goalID, date string) error

	// Misses; at most one per (goal, date), newest date first
	SaveMiss(ctx context.Context, m models.Miss) error
	GetMiss(ctx context.Context, userID, goalID, date string) (models.Miss, error)
	GetMisses(ctx context.Context, userID, startDate, endDate string) ([]models.Miss, error)
	DeleteMissOn(ctx context.Context, userID, goalID, date string) error

	// Moods with CreatedAt in [from, to), oldest first
	SaveMood(ctx context.Context, mood models.Mood) error
	GetMoods(ctx context.Context, userID string, from, to time.Time) ([]models.Mood, error)

	// Hourly energy; at most one per (user, date, hour)
	SaveEnergyLevel(ctx context.Context, level models.EnergyLevel) error
	GetEnergyLevel(ctx context.Context, userID, date string, hour int) (models.EnergyLevel, error)
	GetEnergyLevels(ctx context.Context, userID, startDate, endDate string) ([]models.EnergyLevel, error)

	// Daily planner tasks, ordered by start time
	SaveDailyTask(ctx context.Context, task models.DailyTask) error
	GetDailyTasks(ctx context.Context, userID, date string) ([]models.DailyTask, error)
	DeleteDailyTask(ctx context.Context, userID, id string) error

	// Avatars and profiles
	GetAvatars(ctx context.Context) ([]models.Avatar, error)
	GetProfile(ctx context.Context, userID string) (models.Profile, error)
	SaveProfile(ctx context.Context, profile models.Profile) error

	// Utils
	GetConfigPath() string
}
