package handlers

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/Spok95/meter-readings-bot/internal/bot/session"
	"github.com/Spok95/meter-readings-bot/internal/bot/shared/fsmutil"
	"github.com/Spok95/meter-readings-bot/internal/ctxutil"
	"github.com/Spok95/meter-readings-bot/internal/db"
	"github.com/Spok95/meter-readings-bot/internal/metrics"
	"github.com/Spok95/meter-readings-bot/internal/models"
	"github.com/Spok95/meter-readings-bot/internal/tg"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	textNotRegistered = "Сначала зарегистрируйтесь."
	textBadValue      = "Показание должно быть целым числом. Повторите ввод:"
)

// StartReadingFSM начинает приём показаний. Тариф жильца определяет,
// сколько значений будет запрошено.
func StartReadingFSM(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, chatID int64) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := db.GetResidentByChatID(dbCtx, database, chatID)
	if err != nil {
		sendDBError(bot, chatID, err)
		return
	}
	if res == nil {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, textNotRegistered))
		return
	}

	st := sessions.StartReading(chatID, res.Tariff, res.MeterID)
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, zonePrompt(st.Tariff.Zones()[0])))
}

// HandleReadingText принимает очередное значение. Нечисловой ввод
// переспрашивается и значение не засчитывается.
func HandleReadingText(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, chatID int64, text string) {
	st := sessions.Reading(chatID)
	if st == nil {
		return
	}
	if fsmutil.IsCancelText(text) {
		sessions.Clear(chatID)
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "Действие отменено."))
		return
	}

	reply, vs := advanceReading(st, text)
	if vs == nil {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, reply))
		return
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	if err := db.AddReading(dbCtx, database, st.MeterID, *vs); err != nil {
		// сценарий сбрасываем: значения уже набраны полностью, дальнейший
		// ввод в это состояние некуда принимать. Передачу начинают заново.
		sessions.Clear(chatID)
		sendDBError(bot, chatID, err)
		return
	}
	sessions.Clear(chatID)
	metrics.ReadingsSaved.Inc()
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, savedText(st.Tariff)))
}

// advanceReading — чистый переход приёма показаний. Возвращает либо текст
// следующего запроса (vs == nil), либо собранный ValueSet, когда значений
// набралось по арности тарифа.
func advanceReading(st *session.ReadingState, text string) (reply string, vs *models.ValueSet) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return textBadValue, nil
	}
	st.Values = append(st.Values, v)

	zones := st.Tariff.Zones()
	if len(st.Values) < len(zones) {
		return zonePrompt(zones[len(st.Values)]), nil
	}

	set, err := models.NewValueSet(st.Tariff, st.Values)
	if err != nil {
		// не должно случаться: длина проверена выше. Добавленное значение
		// откатываем, чтобы состояние не росло при повторных вводах.
		st.Values = st.Values[:len(st.Values)-1]
		return textBadValue, nil
	}
	return "", &set
}

func zonePrompt(zone string) string {
	switch zone {
	case models.ZoneTotal:
		return "Введите общее значение:"
	case models.ZonePeak:
		return "Введите показания пиковой зоны:"
	case models.ZoneSemiPeak:
		return "Введите показания полупиковой зоны:"
	case models.ZoneNight:
		return "Введите показания ночной зоны:"
	}
	return "Введите показание:"
}

func savedText(t models.Tariff) string {
	switch t {
	case models.TariffTwoZone:
		return "Показания (пик и ночь) сохранены."
	case models.TariffThreeZone:
		return "Показания (пик, полупик, ночь) сохранены."
	default:
		return "Показание сохранено."
	}
}
