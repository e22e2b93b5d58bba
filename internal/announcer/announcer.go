// Package announcer posts newly created events to the community Telegram
// chat.
package announcer

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/changes"
	"github.com/LangApex/alumni-platform/internal/models"
)

// Sender is the part of *tgbotapi.BotAPI the announcer uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Announcer struct {
	sender Sender
	chatID int64
	loc    *time.Location
	logger *zap.Logger
}

func New(sender Sender, chatID int64, loc *time.Location, logger *zap.Logger) *Announcer {
	if loc == nil {
		loc = time.UTC
	}
	return &Announcer{
		sender: sender,
		chatID: chatID,
		loc:    loc,
		logger: logger.Named("announcer"),
	}
}

// Handle announces event.created notices and ignores every other type.
func (a *Announcer) Handle(_ context.Context, notice changes.Notice) error {
	if notice.Type != changes.EventCreated {
		return nil
	}

	var event models.Event
	if err := json.Unmarshal(notice.Payload, &event); err != nil {
		return fmt.Errorf("decode event payload: %w", err)
	}

	msg := tgbotapi.NewMessage(a.chatID, FormatEvent(event, a.loc))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := a.sender.Send(msg); err != nil {
		return fmt.Errorf("send announcement: %w", err)
	}

	a.logger.Info("Announced event",
		zap.String("event_id", event.ID),
		zap.String("notice_id", notice.ID))
	return nil
}

// FormatEvent renders the announcement text in Telegram HTML.
func FormatEvent(e models.Event, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>New event: %s</b>\n", html.EscapeString(e.Name))
	fmt.Fprintf(&b, "Guest: %s\n", html.EscapeString(e.Guest))
	fmt.Fprintf(&b, "Type: %s\n", html.EscapeString(e.Type))
	fmt.Fprintf(&b, "When: %s\n", e.Time.In(loc).Format("Mon, 02 Jan 2006 15:04 MST"))
	fmt.Fprintf(&b, "Where: %s", html.EscapeString(e.LocationLabel()))
	if details := strings.TrimSpace(e.Details); details != "" {
		fmt.Fprintf(&b, "\n\n%s", html.EscapeString(details))
	}
	return b.String()
}
