package postgres

import (
	"context"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) AddUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO users (id, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt.UTC())
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.scanUser(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.scanUser(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, email)
}

func (s *Store) scanUser(ctx context.Context, query, arg string) (models.User, error) {
	var u models.User
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return models.User{}, notFound(err, "user")
	}
	return u, nil
}

func (s *Store) SaveSession(ctx context.Context, session models.Session) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO sessions (token, user_id, created_at, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (token) DO UPDATE SET expires_at = EXCLUDED.expires_at`,
		session.Token, session.UserID, session.CreatedAt.UTC(), session.ExpiresAt.UTC())
	return err
}

func (s *Store) GetSession(ctx context.Context, token string) (models.Session, error) {
	var sess models.Session
	err := s.db.QueryRowContext(ctx, `
SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = $1`, token).
		Scan(&sess.Token, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		return models.Session{}, notFound(err, "session")
	}
	return sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}
