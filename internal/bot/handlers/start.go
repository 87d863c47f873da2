package handlers

import (
	"github.com/Spok95/meter-readings-bot/internal/bot/menu"
	"github.com/Spok95/meter-readings-bot/internal/tg"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandleStart — приветствие с компактным стартовым меню.
func HandleStart(bot *tgbotapi.BotAPI, chatID int64) {
	out := tgbotapi.NewMessage(chatID, "Добро пожаловать!")
	out.ReplyMarkup = menu.MainMenu()
	_, _ = tg.Send(bot, out)
}
