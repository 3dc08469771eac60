package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/storage/sqlite"
)

func setupService(t *testing.T, opts ...Option) (*Service, *clock.FakeClock) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clk := clock.Fake(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	opts = append([]Option{WithClock(clk), WithBcryptCost(bcrypt.MinCost)}, opts...)
	return New(store, &MemoryTokens{}, opts...), clk
}

func TestSignUpSignsIn(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "  Ada@Example.com ", "hunter22")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}

	current, err := svc.CurrentUser(ctx)
	if err != nil || current.ID != user.ID {
		t.Errorf("CurrentUser() = %+v, %v", current, err)
	}
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{name: "bad email", email: "not-an-email", password: "hunter22", want: apperrors.ErrInvalidInput},
		{name: "short password", email: "bob@example.com", password: "123", want: apperrors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SignUp(ctx, tt.email, tt.password); !errors.Is(err, tt.want) {
				t.Errorf("SignUp() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := svc.SignUp(ctx, "bob@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, err := svc.SignUp(ctx, "BOB@example.com", "other-pass"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate SignUp() error = %v, want ErrEmailTaken", err)
	}
}

func TestSignInAndOut(t *testing.T) {
	cleared := 0
	svc, _ := setupService(t, OnSignOut(func() error { cleared++; return nil }))
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if err := svc.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if cleared != 1 {
		t.Errorf("sign-out hook ran %d times, want 1", cleared)
	}
	if _, err := svc.CurrentUser(ctx); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Errorf("CurrentUser() after sign-out = %v, want ErrNotAuthenticated", err)
	}

	if _, err := svc.SignIn(ctx, "ada@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("SignIn(wrong password) = %v", err)
	}
	if _, err := svc.SignIn(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("SignIn(unknown email) = %v", err)
	}
	if _, err := svc.SignIn(ctx, "ADA@example.com", "hunter22"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if _, err := svc.CurrentSession(ctx); err != nil {
		t.Errorf("CurrentSession() after sign-in = %v", err)
	}

	// Signing out twice is harmless.
	if err := svc.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if err := svc.SignOut(ctx); err != nil {
		t.Errorf("second SignOut() = %v", err)
	}
}

func TestSessionExpires(t *testing.T) {
	svc, clk := setupService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	clk.Advance(svc.ttl)
	if _, err := svc.CurrentSession(ctx); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Errorf("CurrentSession() after ttl = %v, want ErrNotAuthenticated", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, clk := setupService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	sess, err := svc.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}

	got, err := svc.Authenticate(ctx, sess.Token)
	if err != nil || got.UserID != user.ID {
		t.Errorf("Authenticate(valid) = %+v, %v", got, err)
	}
	for _, token := range []string{"", "not-a-token"} {
		if _, err := svc.Authenticate(ctx, token); !errors.Is(err, apperrors.ErrNotAuthenticated) {
			t.Errorf("Authenticate(%q) = %v, want ErrNotAuthenticated", token, err)
		}
	}

	clk.Advance(svc.ttl)
	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Errorf("Authenticate(expired) = %v, want ErrNotAuthenticated", err)
	}
}
