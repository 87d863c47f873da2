package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/Spok95/meter-readings-bot/internal/bot/menu"
	"github.com/Spok95/meter-readings-bot/internal/bot/session"
	"github.com/Spok95/meter-readings-bot/internal/bot/shared/fsmutil"
	"github.com/Spok95/meter-readings-bot/internal/ctxutil"
	"github.com/Spok95/meter-readings-bot/internal/db"
	"github.com/Spok95/meter-readings-bot/internal/tg"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const textBadDeleteID = "ID должен быть числом. Повторите ввод:"

// StartDeleteFSM — административное удаление жильца: показываем список
// кнопками, но принимаем и ID, набранный сообщением.
func StartDeleteFSM(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, chatID int64) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	residents, err := db.ListResidents(dbCtx, database)
	if err != nil {
		sendDBError(bot, chatID, err)
		return
	}
	if len(residents) == 0 {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "Нет пользователей для удаления."))
		return
	}

	sessions.StartDeletion(chatID)
	out := tgbotapi.NewMessage(chatID, "Выберите пользователя для удаления (или отправьте его ID сообщением):")
	out.ReplyMarkup = menu.DeleteKeyboard(residents)
	_, _ = tg.Send(bot, out)
}

// HandleDeleteText — ID, набранный текстом. Нечисловой ввод переспрашивается.
func HandleDeleteText(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, chatID int64, text string) {
	if !sessions.DeletionActive(chatID) {
		return
	}
	if fsmutil.IsCancelText(text) {
		cancelDeletion(ctx, bot, database, sessions, chatID)
		return
	}
	targetID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, textBadDeleteID))
		return
	}
	deleteResident(ctx, bot, database, sessions, chatID, targetID)
}

// HandleDeleteCallback — выбор жильца кнопкой delete_<id>.
func HandleDeleteCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, cb *tgbotapi.CallbackQuery, targetID int64) {
	chatID := cb.Message.Chat.ID
	fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
	deleteResident(ctx, bot, database, sessions, chatID, targetID)
}

// HandleDeleteCancel — «<< Отмена» в списке удаления.
func HandleDeleteCancel(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
	cancelDeletion(ctx, bot, database, sessions, chatID)
}

func cancelDeletion(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, chatID int64) {
	sessions.Clear(chatID)
	out := tgbotapi.NewMessage(chatID, "Удаление отменено.")
	out.ReplyMarkup = menu.FullMenu(adminIsRegistered(ctx, database, chatID), true)
	_, _ = tg.Send(bot, out)
}

// adminIsRegistered — админ может быть и жильцом тоже; от этого зависит,
// показывать ли ему в меню кнопку регистрации.
func adminIsRegistered(ctx context.Context, database *sql.DB, chatID int64) bool {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	res, err := db.GetResidentByChatID(dbCtx, database, chatID)
	return err == nil && res != nil
}

func deleteResident(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, chatID, targetID int64) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	// отсутствующий ID — штатный no-op: подтверждаем так же, как удаление
	if _, err := db.DeleteResident(dbCtx, database, targetID); err != nil {
		sendDBError(bot, chatID, err)
		return
	}
	sessions.Clear(chatID)
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, fmt.Sprintf("Пользователь %d удален.", targetID)))

	out := tgbotapi.NewMessage(chatID, "Меню:")
	out.ReplyMarkup = menu.FullMenu(adminIsRegistered(ctx, database, chatID), true)
	_, _ = tg.Send(bot, out)
}
