package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/event-registration-api/internal/catalog"
	"github.com/gdg-garage/event-registration-api/internal/models"
)

// MessageSender is the part of *discordgo.Session the notifier uses.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   MessageSender
	channelID string
}

// NewDiscordSession creates a bot session; the REST API is used without
// opening a gateway connection.
func NewDiscordSession(botToken string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return session, nil
}

func NewDiscordNotifier(session MessageSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyRegistration(ctx context.Context, event catalog.Event, registration models.Registration) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, FormatRegistration(event, registration), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send discord message: %w", err)
	}
	return nil
}

func FormatRegistration(event catalog.Event, registration models.Registration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 **New Registration**\n**Event:** %s", event.Title)

	if registration.IsTeam() {
		names := make([]string, 0, len(registration.Members))
		for _, m := range registration.Members {
			if m.Name != "" {
				names = append(names, m.Name)
			}
		}
		fmt.Fprintf(&b, "\n**Team:** %s\n**Members:** %s", registration.TeamID, strings.Join(names, ", "))
	} else {
		fmt.Fprintf(&b, "\n**Name:** %s", registration.Name)
	}

	if registration.Email != "" {
		fmt.Fprintf(&b, "\n**Email:** %s", registration.Email)
	}
	return b.String()
}
