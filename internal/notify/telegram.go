package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram отправляет ошибки и критичные события в админский чат.
// Информационные события пропускаются.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

func NewTelegram(token string, chatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, log: log}, nil
}

// NewTelegramWithClient: для нестандартного endpoint (формат tgbotapi.APIEndpoint).
func NewTelegramWithClient(token, endpoint string, client *http.Client, chatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, log: log}, nil
}

func (t *Telegram) Notify(_ context.Context, e Event) error {
	if e.Level == LevelInfo {
		return nil
	}
	text := e.Title
	if e.Text != "" {
		text += "\n" + e.Text
	}
	if e.Level == LevelCritical {
		text = "⚠️ " + text
	}
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		t.log.Error("send failed", "err", err)
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
