package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Avatar struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

type Profile struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	AvatarID string  `json:"avatar_id"`
	Avatar   *Avatar `json:"avatar,omitempty"`
}

type Stats struct {
	CurrentStreak  int `json:"current_streak"`
	CompletionRate int `json:"completion_rate"`
	ActiveGoals    int `json:"active_goals"`
}
