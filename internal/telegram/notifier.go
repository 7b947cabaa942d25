package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrMissingCredentials distinguishes a configuration failure from a
// delivery failure: without credentials a run aborts before fetching.
var ErrMissingCredentials = errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set")

// Notifier delivers digest chunks to a single configured chat.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(token string, chatID int64, timeout time.Duration) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, ErrMissingCredentials
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Notifier{api: api, chatID: chatID}, nil
}

// Send delivers one Markdown-formatted chunk. The underlying client carries
// the per-call timeout, so ctx is only honored between calls.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"
	msg.DisableWebPagePreview = true

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}
