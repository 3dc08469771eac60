package account

import (
	"context"
	"fmt"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
)

type AvatarListCmd struct{}

func (c *AvatarListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := ctx.App.Avatars.FetchAvatars(bg); err != nil {
		return err
	}

	current := ""
	if _, err := ctx.RequireUser(bg); err == nil {
		if err := ctx.App.Avatars.FetchProfile(bg); err == nil {
			if p, ok := ctx.App.Avatars.Profile(); ok {
				current = p.AvatarID
			}
		}
	}

	avatars := ctx.App.Avatars.Avatars()
	if len(avatars) == 0 {
		fmt.Println("No avatars available.")
		return nil
	}
	for _, a := range avatars {
		marker := " "
		if a.ID == current {
			marker = "*"
		}
		fmt.Printf("%s %s  %-12s %s\n", marker, a.Emoji, a.Name, a.ID)
	}
	return nil
}

type AvatarSetCmd struct {
	Avatar string `arg:"" help:"Avatar ID or name."`
}

func (c *AvatarSetCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}
	if err := ctx.App.Avatars.FetchAvatars(bg); err != nil {
		return err
	}

	id := c.Avatar
	for _, a := range ctx.App.Avatars.Avatars() {
		if a.Name == c.Avatar {
			id = a.ID
			break
		}
	}
	if err := ctx.App.Avatars.SetAvatar(bg, id); err != nil {
		return err
	}

	if p, ok := ctx.App.Avatars.Profile(); ok && p.Avatar != nil {
		fmt.Printf("✓ Avatar set to %s %s\n", p.Avatar.Emoji, p.Avatar.Name)
	} else {
		fmt.Println("✓ Avatar updated")
	}
	return nil
}
