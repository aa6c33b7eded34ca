package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/event-registration-api/internal/catalog"
	"github.com/gdg-garage/event-registration-api/internal/models"
)

type fakeSender struct {
	channelID string
	content   string
	err       error
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channelID = channelID
	f.content = content
	return &discordgo.Message{}, f.err
}

func TestNotifyRegistration_Team(t *testing.T) {
	sender := &fakeSender{}
	n := NewDiscordNotifier(sender, "chan-1")

	event := catalog.Event{ID: "Log_Pose_Hunt", Title: "Log Pose Hunt", Type: catalog.Team}
	reg := models.Registration{
		EventID: "Log_Pose_Hunt",
		TeamID:  "Strawhats",
		Members: []models.Member{{Name: "Luffy"}, {Name: ""}, {Name: "Zoro"}},
		Email:   "crew@example.com",
	}

	if err := n.NotifyRegistration(context.Background(), event, reg); err != nil {
		t.Fatalf("NotifyRegistration returned error: %v", err)
	}

	if sender.channelID != "chan-1" {
		t.Errorf("expected channel chan-1, got %s", sender.channelID)
	}
	want := "🎉 **New Registration**\n**Event:** Log Pose Hunt\n**Team:** Strawhats\n**Members:** Luffy, Zoro\n**Email:** crew@example.com"
	if sender.content != want {
		t.Errorf("unexpected message:\n%s", sender.content)
	}
}

func TestNotifyRegistration_Solo(t *testing.T) {
	got := FormatRegistration(catalog.Event{Title: "Wanted Creation"}, models.Registration{Name: "Nami"})
	want := "🎉 **New Registration**\n**Event:** Wanted Creation\n**Name:** Nami"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNotifyRegistration_Errors(t *testing.T) {
	if err := NewDiscordNotifier(nil, "chan").NotifyRegistration(context.Background(), catalog.Event{}, models.Registration{}); err == nil {
		t.Error("expected error for nil session")
	}
	if err := NewDiscordNotifier(&fakeSender{}, "").NotifyRegistration(context.Background(), catalog.Event{}, models.Registration{}); err == nil {
		t.Error("expected error for empty channel")
	}

	sender := &fakeSender{err: errors.New("rate limited")}
	if err := NewDiscordNotifier(sender, "chan").NotifyRegistration(context.Background(), catalog.Event{}, models.Registration{}); err == nil {
		t.Error("expected send error to be returned")
	}
}
