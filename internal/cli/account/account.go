package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/sallieha/HabitTrackerApp/internal/auth"
	"github.com/sallieha/HabitTrackerApp/internal/chat"
	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
)

type SignUpCmd struct {
	Email    string `help:"Email address." required:""`
	Password string `help:"Password (at least 6 characters). Prompted when omitted."`
}

func (c *SignUpCmd) Run(ctx *cli.Context) error {
	password := c.Password
	if password == "" {
		if err := passwordForm(&password, true).Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
	}

	user, err := ctx.Auth.SignUp(context.Background(), c.Email, password)
	if errors.Is(err, auth.ErrEmailTaken) {
		return fmt.Errorf("an account already exists for %s, use 'habittracker signin'", c.Email)
	}
	if err != nil {
		return fmt.Errorf("sign up failed: %w", err)
	}

	resetChat(ctx)
	fmt.Printf("✓ Account created and signed in as %s\n", user.Email)
	return nil
}

type SignInCmd struct {
	Email    string `help:"Email address. Prompted when omitted."`
	Password string `help:"Password. Prompted when omitted."`
}

func (c *SignInCmd) Run(ctx *cli.Context) error {
	email, password := c.Email, c.Password
	if email == "" || password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&email),
				passwordInput(&password),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
	}

	session, err := ctx.Auth.SignIn(context.Background(), email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return errors.New("invalid email or password")
	}
	if err != nil {
		return fmt.Errorf("sign in failed: %w", err)
	}

	resetChat(ctx)
	fmt.Printf("✓ Signed in as %s (session valid until %s)\n", email, session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

// resetChat marks a fresh sign-in so the next chat starts from an empty
// transcript.
func resetChat(ctx *cli.Context) {
	if ctx.LocalState == nil {
		return
	}
	if err := chat.ResetLogin(ctx.LocalState); err != nil {
		logger.Warn("Failed to reset chat state", "error", err)
	}
}

type SignOutCmd struct{}

func (c *SignOutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Auth.SignOut(context.Background()); err != nil {
		return fmt.Errorf("sign out failed: %w", err)
	}
	fmt.Println("✓ Signed out")
	return nil
}

type WhoAmICmd struct{}

func (c *WhoAmICmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	user, err := ctx.RequireUser(bg)
	if err != nil {
		return err
	}

	fmt.Printf("Email:   %s\n", user.Email)
	fmt.Printf("User ID: %s\n", user.ID)
	if err := ctx.App.Avatars.FetchProfile(bg); err == nil {
		if p, ok := ctx.App.Avatars.Profile(); ok && p.Avatar != nil {
			fmt.Printf("Avatar:  %s %s\n", p.Avatar.Emoji, p.Avatar.Name)
		}
	}
	return nil
}

func passwordInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(value)
}

func passwordForm(value *string, confirm bool) *huh.Form {
	fields := []huh.Field{passwordInput(value)}
	if confirm {
		var again string
		fields = append(fields, huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&again).
			Validate(func(s string) error {
				if s != *value {
					return errors.New("passwords do not match")
				}
				return nil
			}))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}
