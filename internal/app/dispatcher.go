package app

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/Spok95/meter-readings-bot/internal/bot/handlers"
	"github.com/Spok95/meter-readings-bot/internal/bot/menu"
	"github.com/Spok95/meter-readings-bot/internal/bot/session"
	"github.com/Spok95/meter-readings-bot/internal/config"
	"github.com/Spok95/meter-readings-bot/internal/ctxutil"
	"github.com/Spok95/meter-readings-bot/internal/db"
	"github.com/Spok95/meter-readings-bot/internal/metrics"
	"github.com/Spok95/meter-readings-bot/internal/tg"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Dispatcher — маршрутизатор входящих событий: нажатия кнопок и текст.
// Сам состояния не хранит, только владеет хранилищем сессий.
type Dispatcher struct {
	bot      *tgbotapi.BotAPI
	db       *sql.DB
	cfg      *config.Config
	sessions *session.Store
	log      *zap.SugaredLogger
}

func NewDispatcher(bot *tgbotapi.BotAPI, database *sql.DB, cfg *config.Config, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		bot:      bot,
		db:       database,
		cfg:      cfg,
		sessions: session.NewStore(),
		log:      log,
	}
}

func (d *Dispatcher) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	metrics.BotUpdates.Inc()
	switch {
	case upd.CallbackQuery != nil:
		d.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		d.handleMessage(ctx, upd.Message)
	}
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	ctx = ctxutil.WithChatID(ctx, chatID)

	if text == "/start" {
		// /start обрывает любой незавершённый сценарий
		d.sessions.Clear(chatID)
		handlers.HandleStart(d.bot, chatID)
		return
	}

	// свободный текст уходит в активный сценарий чата; без сценария — игнор
	switch {
	case d.sessions.Registration(chatID) != nil:
		handlers.HandleRegisterText(ctx, d.bot, d.db, d.sessions, d.cfg.MaxResidents, chatID, text)
	case d.sessions.Reading(chatID) != nil:
		handlers.HandleReadingText(ctx, d.bot, d.db, d.sessions, chatID, text)
	case d.sessions.DeletionActive(chatID):
		if chatID == d.cfg.AdminID {
			handlers.HandleDeleteText(ctx, d.bot, d.db, d.sessions, chatID, text)
		}
	default:
		d.log.Debugw("текст вне сценария", "chat_id", chatID)
	}
}

func (d *Dispatcher) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data
	ctx = ctxutil.WithChatID(ctx, chatID)

	// отвечаем сразу, чтобы Telegram убрал "часики" на кнопке
	_, _ = tg.Request(d.bot, tgbotapi.NewCallback(cb.ID, ""))

	d.log.Debugw("callback", "chat_id", chatID, "data", data)

	switch {
	case data == "main_menu":
		d.sendFullMenu(ctx, chatID, "Выберите действие:")

	case data == "back_to_start":
		d.sessions.Clear(chatID)
		out := tgbotapi.NewMessage(chatID, "Главное меню:")
		out.ReplyMarkup = menu.MainMenu()
		_, _ = tg.Send(d.bot, out)

	case data == "register":
		handlers.StartRegisterFSM(ctx, d.bot, d.db, d.sessions, d.cfg.MaxResidents, chatID)

	case data == "submit_reading":
		handlers.StartReadingFSM(ctx, d.bot, d.db, d.sessions, chatID)

	case strings.HasPrefix(data, "tariff_"):
		handlers.HandleRegisterTariffCallback(ctx, d.bot, d.db, d.sessions, d.cfg.MaxResidents, cb)

	case data == "export":
		if !d.requireAdmin(cb) {
			return
		}
		handlers.HandleExport(ctx, d.bot, d.db, chatID, d.cfg.Location)

	case data == "delete_user":
		if !d.requireAdmin(cb) {
			return
		}
		handlers.StartDeleteFSM(ctx, d.bot, d.db, d.sessions, chatID)

	case data == "cancel_delete":
		if !d.requireAdmin(cb) {
			return
		}
		handlers.HandleDeleteCancel(ctx, d.bot, d.db, d.sessions, cb)

	// сюда же попадает "delete_user", поэтому ветка стоит после него
	case strings.HasPrefix(data, "delete_"):
		if !d.requireAdmin(cb) {
			return
		}
		targetID, err := strconv.ParseInt(strings.TrimPrefix(data, "delete_"), 10, 64)
		if err != nil {
			d.log.Warnw("некорректный callback удаления", "data", data)
			return
		}
		handlers.HandleDeleteCallback(ctx, d.bot, d.db, d.sessions, cb, targetID)

	default:
		d.log.Warnw("неизвестный callback", "chat_id", chatID, "data", data)
	}
}

func (d *Dispatcher) sendFullMenu(ctx context.Context, chatID int64, text string) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	registered := false
	if res, err := db.GetResidentByChatID(dbCtx, d.db, chatID); err == nil && res != nil {
		registered = true
	}
	out := tgbotapi.NewMessage(chatID, text)
	out.ReplyMarkup = menu.FullMenu(registered, chatID == d.cfg.AdminID)
	_, _ = tg.Send(d.bot, out)
}

// requireAdmin — административные действия доступны только ADMIN_ID,
// остальным — явный отказ.
func (d *Dispatcher) requireAdmin(cb *tgbotapi.CallbackQuery) bool {
	if cb.From != nil && cb.From.ID == d.cfg.AdminID {
		return true
	}
	chatID := cb.Message.Chat.ID
	_, _ = tg.Send(d.bot, tgbotapi.NewMessage(chatID, "Эта команда доступна только администратору."))
	return false
}
