package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sallieha/HabitTrackerApp/internal/chat"
	"github.com/sallieha/HabitTrackerApp/internal/cli"
)

type ChatCmd struct {
	Message []string `arg:"" optional:"" help:"What to ask the coach. Shows the conversation when omitted."`
	Prompt  int      `short:"p" help:"Send suggested prompt N." default:"0"`
	AddNew  bool     `help:"Ask for help adding a new goal."`
	Manual  bool     `help:"Say you want to enter your goals manually."`
	Clear   bool     `help:"Clear the conversation."`
}

func (c *ChatCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(context.Background()); err != nil {
		return err
	}
	if ctx.LocalState == nil {
		return errors.New("local state is not available")
	}

	coach := chat.New(ctx.LocalState, ctx.Clock)
	st, err := coach.BeginSession()
	if err != nil {
		return err
	}

	if c.Clear {
		if err := coach.Clear(); err != nil {
			return err
		}
		fmt.Println("✓ Conversation cleared")
		return nil
	}

	text, err := c.text()
	if err != nil {
		return err
	}
	if text == "" {
		printChat(st)
		return nil
	}

	reply, err := coach.Send(text)
	if err != nil {
		return err
	}
	fmt.Printf("You: %s\n\n%s\n", text, reply.Content)
	return nil
}

// text resolves the single message source given on the command line.
func (c *ChatCmd) text() (string, error) {
	var sources []string
	if msg := strings.TrimSpace(strings.Join(c.Message, " ")); msg != "" {
		sources = append(sources, msg)
	}
	if c.Prompt != 0 {
		if c.Prompt < 1 || c.Prompt > len(chat.SuggestedPrompts) {
			return "", fmt.Errorf("prompt must be between 1 and %d", len(chat.SuggestedPrompts))
		}
		sources = append(sources, chat.SuggestedPrompts[c.Prompt-1].Text)
	}
	if c.AddNew {
		sources = append(sources, chat.AddNewText)
	}
	if c.Manual {
		sources = append(sources, chat.EnterManuallyText)
	}
	if len(sources) > 1 {
		return "", errors.New("give one of a message, --prompt, --add-new or --manual")
	}
	if len(sources) == 0 {
		return "", nil
	}
	return sources[0], nil
}

func printChat(st chat.State) {
	if !st.ShowChat || len(st.Messages) == 0 {
		fmt.Println(chat.Greeting)
		fmt.Println()
		fmt.Println("Try one of these with --prompt N:")
		for i, p := range chat.SuggestedPrompts {
			fmt.Printf("  %d. %s\n", i+1, p.Label)
		}
		return
	}
	for _, m := range st.Messages {
		who := "Coach"
		if m.IsUser {
			who = "You"
		}
		fmt.Printf("[%s] %s: %s\n\n", m.Timestamp.Local().Format("15:04"), who, m.Content)
	}
}
