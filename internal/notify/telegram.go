package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends messages to a single chat through a bot account
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram logs the bot in with token. It fails if the token is rejected.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	bot.Debug = false
	return NewTelegramWithBot(bot, chatID), nil
}

// NewTelegramWithBot wraps an already authenticated bot
func NewTelegramWithBot(bot *tgbotapi.BotAPI, chatID int64) *Telegram {
	return &Telegram{bot: bot, chatID: chatID}
}

// Notify sends msg. The bot client has no context support, so ctx is only
// checked before sending.
func (t *Telegram) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content, err := msg.Content()
	if err != nil {
		return err
	}
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, content)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
