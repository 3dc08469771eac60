// Package auth signs users up, in and out with an email and password and
// tracks the current session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/keyring"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
	"github.com/sallieha/HabitTrackerApp/internal/models"
)

const minPasswordLength = 6

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid login credentials")
	// ErrEmailTaken is returned when signing up with an email that already has an account.
	ErrEmailTaken = errors.New("user already registered")
)

// Users is the part of the data service auth needs.
type Users interface {
	AddUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	SaveSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, token string) (models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// TokenStore remembers the session token between runs.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// KeyringTokens keeps the token in the OS keyring.
type KeyringTokens struct{}

func (KeyringTokens) Get() (string, error)   { return keyring.GetSessionToken() }
func (KeyringTokens) Set(token string) error { return keyring.SetSessionToken(token) }
func (KeyringTokens) Delete() error          { return keyring.DeleteSessionToken() }

// MemoryTokens keeps the token in memory only; the server and tests use it.
type MemoryTokens struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryTokens) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", keyring.ErrNotFound
	}
	return m.token, nil
}

func (m *MemoryTokens) Set(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryTokens) Delete() error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}

type Service struct {
	users     Users
	tokens    TokenStore
	clock     clock.Clock
	cost      int
	ttl       time.Duration
	onSignOut []func() error
}

type Option func(*Service)

// WithClock overrides the clock used for session timestamps.
func WithClock(c clock.Clock) Option { return func(s *Service) { s.clock = c } }

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option { return func(s *Service) { s.cost = cost } }

// OnSignOut registers a hook run after a successful sign-out, e.g. to
// clear locally persisted chat state.
func OnSignOut(fn func() error) Option {
	return func(s *Service) { s.onSignOut = append(s.onSignOut, fn) }
}

func New(users Users, tokens TokenStore, opts ...Option) *Service {
	s := &Service{
		users:  users,
		tokens: tokens,
		clock:  clock.Real(),
		cost:   bcrypt.DefaultCost,
		ttl:    constants.SessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email address", apperrors.ErrInvalidInput)
	}
	return email, nil
}

// SignUp creates an account and signs it in.
func (s *Service) SignUp(ctx context.Context, email, password string) (models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if len(password) < minPasswordLength {
		return models.User{}, fmt.Errorf("%w: password should be at least %d characters", apperrors.ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.users.AddUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	logger.Info("User signed up", "user_id", user.ID)

	if _, err := s.startSession(ctx, user.ID); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SignIn checks the password and starts a new session.
func (s *Service) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return models.Session{}, ErrInvalidCredentials
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.Session{}, ErrInvalidCredentials
	}
	return s.startSession(ctx, user.ID)
}

func (s *Service) startSession(ctx context.Context, userID string) (models.Session, error) {
	now := s.clock.Now()
	sess := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.users.SaveSession(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	if err := s.tokens.Set(sess.Token); err != nil {
		return models.Session{}, err
	}
	logger.Debug("Session started", "user_id", userID)
	return sess, nil
}

// SignOut ends the current session and runs the sign-out hooks. Signing
// out without a session is not an error.
func (s *Service) SignOut(ctx context.Context) error {
	token, err := s.tokens.Get()
	if err == nil {
		if err := s.users.DeleteSession(ctx, token); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	} else if !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	if err := s.tokens.Delete(); err != nil {
		return err
	}

	for _, hook := range s.onSignOut {
		if err := hook(); err != nil {
			logger.Warn("Sign-out cleanup failed", "error", err)
		}
	}
	return nil
}

// CurrentSession returns the active session or ErrNotAuthenticated.
func (s *Service) CurrentSession(ctx context.Context) (models.Session, error) {
	token, err := s.tokens.Get()
	if errors.Is(err, keyring.ErrNotFound) {
		return models.Session{}, apperrors.ErrNotAuthenticated
	}
	if err != nil {
		return models.Session{}, err
	}
	return s.Authenticate(ctx, token)
}

// Authenticate resolves a session token presented by a client, rejecting
// unknown and expired tokens with ErrNotAuthenticated.
func (s *Service) Authenticate(ctx context.Context, token string) (models.Session, error) {
	if token == "" {
		return models.Session{}, apperrors.ErrNotAuthenticated
	}
	sess, err := s.users.GetSession(ctx, token)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.Session{}, apperrors.ErrNotAuthenticated
	}
	if err != nil {
		return models.Session{}, err
	}
	if sess.Expired(s.clock.Now()) {
		return models.Session{}, fmt.Errorf("session expired: %w", apperrors.ErrNotAuthenticated)
	}
	return sess, nil
}

// CurrentUser returns the signed-in user or ErrNotAuthenticated.
func (s *Service) CurrentUser(ctx context.Context) (models.User, error) {
	sess, err := s.CurrentSession(ctx)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.users.GetUser(ctx, sess.UserID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.User{}, apperrors.ErrNotAuthenticated
	}
	return user, err
}
