package sqlite

import (
	"context"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) AddUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, formatTimestamp(user.CreatedAt))
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.scanUser(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.scanUser(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email)
}

func (s *Store) scanUser(ctx context.Context, query string, arg string) (models.User, error) {
	var u models.User
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt)
	if err != nil {
		return models.User{}, notFound(err, "user")
	}
	if u.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) SaveSession(ctx context.Context, session models.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET expires_at = excluded.expires_at`,
		session.Token, session.UserID, formatTimestamp(session.CreatedAt), formatTimestamp(session.ExpiresAt))
	return err
}

func (s *Store) GetSession(ctx context.Context, token string) (models.Session, error) {
	var sess models.Session
	var createdAt, expiresAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = ?`, token).
		Scan(&sess.Token, &sess.UserID, &createdAt, &expiresAt)
	if err != nil {
		return models.Session{}, notFound(err, "session")
	}
	if sess.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return models.Session{}, err
	}
	if sess.ExpiresAt, err = parseTimestamp("expires_at", expiresAt); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}
