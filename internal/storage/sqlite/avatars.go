package sqlite

import (
	"context"

	"github.com/sallieha/HabitTrackerApp/internal/models"
)

func (s *Store) GetAvatars(ctx context.Context) ([]models.Avatar, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, emoji, color FROM avatars ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	avatars := []models.Avatar{}
	for rows.Next() {
		var a models.Avatar
		if err := rows.Scan(&a.ID, &a.Name, &a.Emoji, &a.Color); err != nil {
			return nil, err
		}
		avatars = append(avatars, a)
	}
	return avatars, rows.Err()
}

func (s *Store) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	var a models.Avatar
	err := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.user_id, p.avatar_id, a.id, a.name, a.emoji, a.color
		FROM user_profiles p
		JOIN avatars a ON a.id = p.avatar_id
		WHERE p.user_id = ?`, userID).
		Scan(&p.ID, &p.UserID, &p.AvatarID, &a.ID, &a.Name, &a.Emoji, &a.Color)
	if err != nil {
		return models.Profile{}, notFound(err, "profile")
	}
	p.Avatar = &a
	return p, nil
}

func (s *Store) SaveProfile(ctx context.Context, profile models.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (id, user_id, avatar_id)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET avatar_id = excluded.avatar_id`,
		profile.ID, profile.UserID, profile.AvatarID)
	return err
}
