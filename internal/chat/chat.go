// Package chat is the coaching chat panel: canned replies chosen by
// keyword, with the transcript kept in local state.
package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/localstate"
)

// Greeting opens every conversation.
const Greeting = "What goals would you like to set today?"

// Quick actions offered next to the greeting.
const (
	AddNewText        = "I want to add a new goal."
	EnterManuallyText = "I want to enter my goals manually."
)

type Prompt struct {
	Label string
	Text  string
}

var SuggestedPrompts = []Prompt{
	{Label: "Help me create a new habit", Text: "I want to create a new habit. Can you help me set realistic goals and frequency?"},
	{Label: "Analyze my progress", Text: "Can you help me analyze my habit tracking progress and suggest improvements?"},
	{Label: "Plan my week", Text: "Help me plan an effective weekly schedule for my habits and goals."},
	{Label: "Motivation tips", Text: "I'm struggling to stay motivated with my habits. Can you give me some tips?"},
}

type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the persisted panel.
type State struct {
	Messages       []Message
	ShowChat       bool
	ClearedOnLogin bool
}

type Chat struct {
	store *localstate.Store
	clock clock.Clock
}

func New(store *localstate.Store, clk clock.Clock) *Chat {
	if clk == nil {
		clk = clock.Real()
	}
	return &Chat{store: store, clock: clk}
}

// Load reads the panel. Missing keys read as an empty, hidden chat.
func (c *Chat) Load() (State, error) {
	var st State
	if _, err := c.store.Get(constants.StateChatMessages, &st.Messages); err != nil {
		return State{}, fmt.Errorf("failed to read chat messages: %w", err)
	}
	if _, err := c.store.Get(constants.StateChatShowChat, &st.ShowChat); err != nil {
		return State{}, fmt.Errorf("failed to read chat state: %w", err)
	}
	if _, err := c.store.Get(constants.StateChatClearedLogin, &st.ClearedOnLogin); err != nil {
		return State{}, fmt.Errorf("failed to read chat state: %w", err)
	}
	return st, nil
}

func (c *Chat) save(st State) error {
	if st.Messages == nil {
		st.Messages = []Message{}
	}
	if err := c.store.Set(constants.StateChatMessages, st.Messages); err != nil {
		return err
	}
	if err := c.store.Set(constants.StateChatShowChat, st.ShowChat); err != nil {
		return err
	}
	return c.store.Set(constants.StateChatClearedLogin, st.ClearedOnLogin)
}

// BeginSession loads the panel for a signed-in user. The first time after
// a sign-in the transcript is wiped and the chat hidden.
func (c *Chat) BeginSession() (State, error) {
	st, err := c.Load()
	if err != nil {
		return State{}, err
	}
	if st.ClearedOnLogin {
		return st, nil
	}
	st = State{Messages: []Message{}, ClearedOnLogin: true}
	return st, c.save(st)
}

// Send records text and the coach's reply, and shows the chat.
func (c *Chat) Send(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, fmt.Errorf("%w: message cannot be empty", apperrors.ErrInvalidInput)
	}
	st, err := c.Load()
	if err != nil {
		return Message{}, err
	}

	now := c.clock.Now()
	reply := Message{ID: uuid.NewString(), Content: Reply(text), Timestamp: now}
	st.Messages = append(st.Messages,
		Message{ID: uuid.NewString(), Content: text, IsUser: true, Timestamp: now},
		reply,
	)
	st.ShowChat = true
	if err := c.save(st); err != nil {
		return Message{}, fmt.Errorf("failed to save chat: %w", err)
	}
	return reply, nil
}

// Clear empties the transcript and hides the chat.
func (c *Chat) Clear() error {
	st, err := c.Load()
	if err != nil {
		return err
	}
	st.Messages = nil
	st.ShowChat = false
	return c.save(st)
}

// ResetLogin marks a fresh sign-in, so the next session starts clean.
func ResetLogin(store *localstate.Store) error {
	return store.Set(constants.StateChatClearedLogin, false)
}

type rule struct {
	keywords []string
	words    bool // match whole words only
	reply    string
}

var rules = []rule{
	{
		keywords: []string{"habit", "goal"},
		reply: "Great question about habits! Building sustainable habits is all about starting small and being consistent. I recommend:\n\n" +
			"• Start with just 2-3 habits at most\n• Make them specific and measurable\n• Choose a consistent time of day\n• Track your progress daily\n\n" +
			"What specific habit are you looking to build?",
	},
	{
		keywords: []string{"motivation", "struggle"},
		reply: "I understand that staying motivated can be challenging! Here are some strategies that work well:\n\n" +
			"• Focus on your 'why' - remember your deeper reasons\n• Celebrate small wins along the way\n• Find an accountability partner\n" +
			"• Track your streak to see visual progress\n• Be kind to yourself when you miss a day\n\n" +
			"Remember, progress isn't always linear. What's been your biggest challenge so far?",
	},
	{
		keywords: []string{"progress", "analyze"},
		reply: "Analyzing your progress is key to improvement! Here's what I recommend looking at:\n\n" +
			"• Completion rate over the last 30 days\n• Which days of the week you're most/least successful\n• Patterns around missed days\n" +
			"• Energy levels and mood correlation\n\n" +
			"Run 'habittracker stats' and 'habittracker energy averages' to see these insights. Would you like tips on improving any specific areas?",
	},
	{
		keywords: []string{"plan", "schedule"},
		reply: "Smart planning makes all the difference! Here's how to plan effectively:\n\n" +
			"• Review your current habits and their frequency\n• Identify your peak energy times\n• Block time for each habit in your calendar\n" +
			"• Plan for obstacles and have backup plans\n• Leave buffer time between activities\n\n" +
			"Would you like help planning a specific part of your routine?",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		words:    true,
		reply: "Hello! I'm excited to help you on your habit-building journey. Whether you need help creating new habits, staying motivated, " +
			"or analyzing your progress, I'm here for you. What would you like to work on today?",
	},
}

const fallbackReply = "That's a great question! I'm here to help you with habit tracking, goal setting, motivation, and progress analysis. Feel free to ask me about:\n\n" +
	"• Creating effective habits\n• Staying motivated\n• Analyzing your progress\n• Planning your routine\n• Overcoming obstacles\n\n" +
	"What specific area would you like to explore?"

// Reply picks the canned answer for text. Rules are tried in order.
func Reply(text string) string {
	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, r := range rules {
		for _, k := range r.keywords {
			if r.words && containsWord(words, k) || !r.words && strings.Contains(lower, k) {
				return r.reply
			}
		}
	}
	return fallbackReply
}

func containsWord(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}
