package notification

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const TelegramPrefix = "tg:"

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink mengirim pesan ke chat telegram. Alamat berbentuk "tg:<chat_id>".
type TelegramSink struct {
	bot telegramSender
}

func NewTelegramSink(token string) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramSink{bot: bot}, nil
}

func (s *TelegramSink) Send(ctx context.Context, address, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	chatID, err := strconv.ParseInt(strings.TrimPrefix(address, TelegramPrefix), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram address %q: %w", address, err)
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("*%s*\n%s", tgbotapi.EscapeText(tgbotapi.ModeMarkdown, subject), tgbotapi.EscapeText(tgbotapi.ModeMarkdown, body)))
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err = s.bot.Send(msg)
	return err
}
