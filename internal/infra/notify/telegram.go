package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram is a send-only notifier for the operations chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) SendText(text string) error {
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text))
	return err
}

func (t *Telegram) SendDocument(name string, data []byte) error {
	doc := tgbotapi.NewDocument(t.chatID, tgbotapi.FileBytes{
		Name:  name,
		Bytes: data,
	})
	_, err := t.bot.Send(doc)
	return err
}
