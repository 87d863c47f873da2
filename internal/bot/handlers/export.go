package handlers

import (
	"context"
	"database/sql"
	"time"

	"github.com/Spok95/meter-readings-bot/internal/bot/shared/fsmutil"
	"github.com/Spok95/meter-readings-bot/internal/ctxutil"
	"github.com/Spok95/meter-readings-bot/internal/db"
	"github.com/Spok95/meter-readings-bot/internal/export"
	"github.com/Spok95/meter-readings-bot/internal/metrics"
	"github.com/Spok95/meter-readings-bot/internal/tg"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandleExport — синхронная выгрузка всех показаний в xlsx. Доступ
// проверяет диспетчер; здесь только защита от двойного запуска.
func HandleExport(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, chatID int64, loc *time.Location) {
	if !fsmutil.SetPending(chatID, "export") {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "Экспорт уже выполняется."))
		return
	}
	defer fsmutil.ClearPending(chatID, "export")

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := db.ListReadingsJoined(dbCtx, database)
	if err != nil {
		sendDBError(bot, chatID, err)
		return
	}

	f, err := export.BuildReadingsReport(rows, loc)
	if err != nil {
		sendDBError(bot, chatID, err)
		return
	}
	path, err := export.SaveTemp(f, time.Now())
	if err != nil {
		sendDBError(bot, chatID, err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	if _, err := tg.Send(bot, doc); err != nil {
		metrics.HandlerErrors.Inc()
		return
	}
	metrics.ExportsGenerated.Inc()
}
