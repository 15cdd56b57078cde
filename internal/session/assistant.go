package session

import (
	"context"
	"errors"
	"strings"

	"github.com/TobiSchelling/climatenews/internal/agent"
	"github.com/TobiSchelling/climatenews/internal/profile"
)

// ErrMessageRequired is returned when an empty message is sent to the assistant.
var ErrMessageRequired = errors.New("message is required")

// Assistant is the conversational profile setup helper.
type Assistant struct {
	client   agent.ProfileAssistant
	profiles *profile.Store
}

// NewAssistant creates a profile assistant.
func NewAssistant(client agent.ProfileAssistant, profiles *profile.Store) *Assistant {
	return &Assistant{client: client, profiles: profiles}
}

// Send forwards message with the current profile and conversation. On
// success both the message and the reply are appended to the conversation.
func (a *Assistant) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrMessageRequired
	}

	p := a.profiles.Get()
	conversation := strings.Join(p.ConversationHistory, "\n")
	if conversation == "" {
		conversation = "Starting conversation"
	}

	reply, err := a.client.ProfileSetup(ctx, agent.ProfileSetupVariables{
		UserInput:           message,
		ClimateConcerns:     orDefault(p.ClimateConcerns, DefaultConcerns),
		GeographicFocus:     orDefault(p.GeographicFocus, DefaultGeographic),
		InterestCategories:  orDefault(p.InterestCategories, DefaultCategories),
		ConversationHistory: conversation,
	}, p.SessionID)
	if err != nil {
		return "", err
	}

	if err := a.profiles.AppendMessage("User: "+message, "Assistant: "+reply); err != nil {
		return "", err
	}
	return reply, nil
}
