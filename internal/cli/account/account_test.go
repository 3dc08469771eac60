package account

import (
	"context"
	"errors"
	"testing"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/cli/clitest"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
)

func TestSignUpSignOutSignIn(t *testing.T) {
	ctx := clitest.NewContext(t)
	bg := context.Background()

	if err := (&SignUpCmd{Email: "grace@example.com", Password: "hunter22"}).Run(ctx); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	user, err := ctx.RequireUser(bg)
	if err != nil || user.Email != "grace@example.com" {
		t.Fatalf("after sign up: user = %+v, err = %v", user, err)
	}
	if err := (&WhoAmICmd{}).Run(ctx); err != nil {
		t.Errorf("whoami failed: %v", err)
	}

	if err := ctx.LocalState.Set(constants.StateChatShowChat, true); err != nil {
		t.Fatalf("set local state: %v", err)
	}
	if err := (&SignOutCmd{}).Run(ctx); err != nil {
		t.Fatalf("sign out failed: %v", err)
	}
	if _, err := ctx.RequireUser(bg); !errors.Is(err, cli.ErrNotSignedIn) {
		t.Errorf("after sign out: err = %v, want ErrNotSignedIn", err)
	}
	var show bool
	if found, _ := ctx.LocalState.Get(constants.StateChatShowChat, &show); found {
		t.Error("local state survived sign out")
	}

	if err := (&SignInCmd{Email: "grace@example.com", Password: "wrong-password"}).Run(ctx); err == nil {
		t.Error("sign in with a wrong password succeeded")
	}
	if err := (&SignInCmd{Email: "grace@example.com", Password: "hunter22"}).Run(ctx); err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if _, err := ctx.RequireUser(bg); err != nil {
		t.Errorf("after sign in: %v", err)
	}
}

func TestSignUpDuplicate(t *testing.T) {
	ctx := clitest.SignedIn(t)
	err := (&SignUpCmd{Email: clitest.Email, Password: clitest.Password}).Run(ctx)
	if err == nil {
		t.Fatal("duplicate sign up succeeded")
	}
}

func TestWhoAmIRequiresSignIn(t *testing.T) {
	ctx := clitest.NewContext(t)
	if err := (&WhoAmICmd{}).Run(ctx); !errors.Is(err, cli.ErrNotSignedIn) {
		t.Errorf("err = %v, want ErrNotSignedIn", err)
	}
}

func TestAvatarSet(t *testing.T) {
	ctx := clitest.SignedIn(t)
	bg := context.Background()

	if err := (&AvatarListCmd{}).Run(ctx); err != nil {
		t.Fatalf("avatar list failed: %v", err)
	}
	avatars := ctx.App.Avatars.Avatars()
	if len(avatars) < 2 {
		t.Fatalf("expected seeded avatars, got %d", len(avatars))
	}

	target := avatars[1]
	if err := (&AvatarSetCmd{Avatar: target.Name}).Run(ctx); err != nil {
		t.Fatalf("avatar set by name failed: %v", err)
	}
	if err := ctx.App.Avatars.FetchProfile(bg); err != nil {
		t.Fatalf("fetch profile: %v", err)
	}
	p, ok := ctx.App.Avatars.Profile()
	if !ok || p.AvatarID != target.ID {
		t.Errorf("profile avatar = %q, want %q", p.AvatarID, target.ID)
	}

	if err := (&AvatarSetCmd{Avatar: "no-such-avatar"}).Run(ctx); err == nil {
		t.Error("setting an unknown avatar succeeded")
	}
}

func TestSignInResetsChat(t *testing.T) {
	ctx := clitest.SignedIn(t)
	if err := ctx.LocalState.Set(constants.StateChatClearedLogin, true); err != nil {
		t.Fatal(err)
	}

	if err := (&SignInCmd{Email: clitest.Email, Password: clitest.Password}).Run(ctx); err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	cleared := true
	found, err := ctx.LocalState.Get(constants.StateChatClearedLogin, &cleared)
	if err != nil || !found || cleared {
		t.Errorf("cleared flag = %v (found %v, err %v), want false", cleared, found, err)
	}
}
