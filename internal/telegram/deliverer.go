package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Deliverer uploads generated deck files to a chat. Split from Bot so the
// orchestrator can be wired before the bot and swapped for a double in tests.
type Deliverer struct {
	api *tgbotapi.BotAPI
	log *slog.Logger
}

func NewDeliverer(api *tgbotapi.BotAPI, log *slog.Logger) *Deliverer {
	return &Deliverer{api: api, log: log}
}

func (d *Deliverer) DeliverDocument(ctx context.Context, chatID int64, path, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	doc.ParseMode = tgbotapi.ModeMarkdown
	if _, err := d.api.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}
