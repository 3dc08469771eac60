package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/retry"
)

type AvatarStore struct {
	state
	*env
	avatars []models.Avatar
	profile *models.Profile
}

func (s *AvatarStore) Avatars() []models.Avatar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.avatars)
}

func (s *AvatarStore) Profile() (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return models.Profile{}, false
	}
	return *s.profile, true
}

// FetchAvatars loads the catalog, ordered by name. It needs no session.
func (s *AvatarStore) FetchAvatars(ctx context.Context) error {
	s.beginFetch()
	avatars, err := retry.Do(ctx, s.retry, s.provider.GetAvatars)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.avatars = []models.Avatar{}
		return s.failLocked("fetch avatars", err, true)
	}
	s.avatars = avatars
	s.status = StatusReady
	return nil
}

// FetchProfile loads the user's profile, creating one with the first
// catalog avatar when the user has none yet.
func (s *AvatarStore) FetchProfile(ctx context.Context) error {
	s.beginFetch()
	profile, err := s.fetchOrCreateProfile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.profile = nil
		return s.failLocked("fetch user profile", err, true)
	}
	s.profile = &profile
	s.status = StatusReady
	return nil
}

func (s *AvatarStore) fetchOrCreateProfile(ctx context.Context) (models.Profile, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return models.Profile{}, err
	}

	newID := uuid.NewString()
	return retry.Do(ctx, s.retry, func(ctx context.Context) (models.Profile, error) {
		profile, err := s.provider.GetProfile(ctx, uid)
		if !errors.Is(err, apperrors.ErrNotFound) {
			return profile, err
		}

		avatars, err := s.provider.GetAvatars(ctx)
		if err != nil {
			return models.Profile{}, err
		}
		if len(avatars) == 0 {
			return models.Profile{}, errors.New("avatar catalog is empty")
		}
		if err := s.provider.SaveProfile(ctx, models.Profile{ID: newID, UserID: uid, AvatarID: avatars[0].ID}); err != nil {
			return models.Profile{}, err
		}
		return s.provider.GetProfile(ctx, uid)
	})
}

// SetAvatar points the user's profile at avatarID.
func (s *AvatarStore) SetAvatar(ctx context.Context, avatarID string) error {
	s.beginFetch()
	profile, err := s.setAvatar(ctx, avatarID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.failLocked("update avatar", err, true)
	}
	s.profile = &profile
	s.status = StatusReady
	return nil
}

func (s *AvatarStore) setAvatar(ctx context.Context, avatarID string) (models.Profile, error) {
	uid, err := s.userID(ctx)
	if err != nil {
		return models.Profile{}, err
	}

	avatars, err := retry.Do(ctx, s.retry, s.provider.GetAvatars)
	if err != nil {
		return models.Profile{}, err
	}
	if !slices.ContainsFunc(avatars, func(a models.Avatar) bool { return a.ID == avatarID }) {
		return models.Profile{}, fmt.Errorf("%w: unknown avatar %q", apperrors.ErrInvalidInput, avatarID)
	}

	newID := uuid.NewString()
	return retry.Do(ctx, s.retry, func(ctx context.Context) (models.Profile, error) {
		if err := s.provider.SaveProfile(ctx, models.Profile{ID: newID, UserID: uid, AvatarID: avatarID}); err != nil {
			return models.Profile{}, err
		}
		return s.provider.GetProfile(ctx, uid)
	})
}
