package constants

import "time"

// ViewMode is the granularity of a calendar view
type ViewMode string

// ExportFormat is the output requested from the calendar export endpoint
type ExportFormat string

const (
	AppName            = "habittracker"
	DefaultKeyringUser = "database-connection"
	SessionKeyringUser = "session-token"
	DefaultConfigDir   = "~/.config/habittracker"
	DefaultDBPath      = "~/.config/habittracker/habittracker.db"
	DefaultConfigFile  = "~/.config/habittracker/config.yaml"
	Version            = "v0.3.0"

	// Environment variables
	EnvConfigPath   = "HABITTRACKER_CONFIG"
	EnvDBConnection = "HABITTRACKER_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Retry defaults
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 1000 * time.Millisecond

	// Health monitor
	HealthCheckInterval   = 30 * time.Second
	HealthMaxRetries      = 3
	HealthInitialDelay    = 1000 * time.Millisecond
	HealthMaxJitter       = 1000 * time.Millisecond
	HealthMaxBackoffDelay = 10 * time.Second

	// Calendar cache
	CalendarCacheTTL       = 5 * time.Minute
	CalendarLoadRaceWindow = 100 * time.Millisecond

	// Stats / analytics windows
	StatsWindowDays  = 30
	EnergyWindowDays = 30
	HoursPerDay      = 24

	// Sessions
	SessionTTL = 30 * 24 * time.Hour

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habittracker-"
	BackupFileSuffix = ".db"

	// LocalStateFile lives next to the config file
	LocalStateFile = "localstate.json"

	// Server
	DefaultServerAddr = "localhost:8080"
	ExportPath        = "/functions/v1/google-calendar/download"
	GoogleImportURL   = "https://calendar.google.com/calendar/r/settings/export"

	// Calendar views
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"

	// Export formats
	ExportGoogle ExportFormat = "google"
	ExportICal   ExportFormat = "ical"

	// Local state keys, cleared on sign-out
	StateChatMessages     = "aiChatMessages"
	StateChatShowChat     = "aiChatShowChat"
	StateChatClearedLogin = "aiChatHasClearedOnLogin"
)

// LocalStateKeys lists every key persisted in local state.
var LocalStateKeys = []string{StateChatMessages, StateChatShowChat, StateChatClearedLogin}
