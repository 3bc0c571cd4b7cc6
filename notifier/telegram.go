package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

const sendTimeout = 10 * time.Second

// chatRecipient accepts both numeric chat ids and @channel names.
type chatRecipient string

func (c chatRecipient) Recipient() string { return string(c) }

type Telegram struct {
	bot  *tele.Bot
	chat tele.Recipient
}

// NewTelegram creates the bot without calling getMe, so a bad token only
// shows up on the first send.
func NewTelegram(apiURL, token, chatID string) (*Telegram, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	if strings.TrimSpace(chatID) == "" {
		return nil, errors.New("telegram chat id is empty")
	}
	b, err := tele.NewBot(tele.Settings{
		URL:     apiURL,
		Token:   token,
		Offline: true,
		Client:  &http.Client{Timeout: sendTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Telegram{bot: b, chat: chatRecipient(chatID)}, nil
}

func (t *Telegram) Notify(_ context.Context, text string) error {
	if _, err := t.bot.Send(t.chat, text); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	slog.Debug("message sent to telegram")
	return nil
}
