package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/Spok95/meter-readings-bot/internal/bot/menu"
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
	promptPhone  = "Введите ваш номер телефона:"
	promptFlat   = "Введите номер вашей квартиры:"
	promptMeter  = "Введите номер прибора учета электроэнергии:"
	promptTariff = "Выберите тариф:"

	textMeterTaken   = "Прибор с таким номером уже зарегистрирован."
	textBadTariff    = "Неверный тариф. Попробуйте снова."
	textRegistered   = "Вы успешно зарегистрированы!"
	textAlreadyReg   = "Вы уже зарегистрированы."
	textLimitReached = "Регистрация невозможна — достигнут лимит пользователей."
)

// StartRegisterFSM запускает анкету регистрации. Пускаем только
// незарегистрированных и только пока не достигнут лимит жильцов.
func StartRegisterFSM(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, maxResidents int, chatID int64) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	n, err := db.CountResidents(dbCtx, database)
	if err != nil {
		sendDBError(bot, chatID, err)
		return
	}
	if n >= maxResidents {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, textLimitReached))
		return
	}

	res, err := db.GetResidentByChatID(dbCtx, database, chatID)
	if err != nil {
		sendDBError(bot, chatID, err)
		return
	}
	if res != nil {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, textAlreadyReg))
		return
	}

	sessions.StartRegistration(chatID)
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, promptPhone))
}

// HandleRegisterText — очередной текстовый ввод анкеты.
func HandleRegisterText(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, maxResidents int, chatID int64, text string) {
	st := sessions.Registration(chatID)
	if st == nil {
		return
	}
	if fsmutil.IsCancelText(text) {
		sessions.Clear(chatID)
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "Действие отменено."))
		return
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	meterTaken := func(meterID string) (bool, error) {
		return db.MeterExists(dbCtx, database, meterID)
	}
	reply, done, err := advanceRegistration(st, text, meterTaken)
	if err != nil {
		sendDBError(bot, chatID, err)
		return
	}
	if done {
		commitRegistration(dbCtx, bot, database, sessions, maxResidents, chatID, st)
		return
	}

	out := tgbotapi.NewMessage(chatID, reply)
	if st.Step == session.StepTariff && reply == promptTariff {
		out.ReplyMarkup = menu.TariffKeyboard()
	}
	_, _ = tg.Send(bot, out)
}

// HandleRegisterTariffCallback — выбор тарифа кнопкой на последнем шаге.
func HandleRegisterTariffCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, maxResidents int, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	st := sessions.Registration(chatID)
	if st == nil || st.Step != session.StepTariff {
		return
	}
	t, ok := models.ParseTariff(strings.TrimPrefix(cb.Data, "tariff_"))
	if !ok {
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, textBadTariff))
		return
	}
	st.Tariff = t
	fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	commitRegistration(dbCtx, bot, database, sessions, maxResidents, chatID, st)
}

// advanceRegistration — чистая функция перехода анкеты: (state, input) ->
// (state', reply). Невалидный ввод оставляет шаг на месте и переспрашивает.
// done=true означает, что st содержит полную анкету и её пора фиксировать.
func advanceRegistration(st *session.RegistrationState, text string, meterTaken func(string) (bool, error)) (reply string, done bool, err error) {
	text = strings.TrimSpace(text)

	switch st.Step {
	case session.StepPhone:
		if text == "" {
			return promptPhone, false, nil
		}
		st.Phone = text
		st.Step = session.StepFlat
		return promptFlat, false, nil

	case session.StepFlat:
		if text == "" {
			return promptFlat, false, nil
		}
		st.Flat = text
		st.Step = session.StepMeter
		return promptMeter, false, nil

	case session.StepMeter:
		if text == "" {
			return promptMeter, false, nil
		}
		taken, err := meterTaken(text)
		if err != nil {
			return "", false, err
		}
		if taken {
			return textMeterTaken, false, nil
		}
		st.Meter = text
		st.Step = session.StepTariff
		return promptTariff, false, nil

	case session.StepTariff:
		t, ok := models.ParseTariff(text)
		if !ok {
			return textBadTariff, false, nil
		}
		st.Tariff = t
		return "", true, nil
	}
	return "", false, nil
}

func commitRegistration(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, sessions *session.Store, maxResidents int, chatID int64, st *session.RegistrationState) {
	err := db.CreateResident(ctx, database, models.Resident{
		ChatID:  chatID,
		Phone:   st.Phone,
		Flat:    st.Flat,
		MeterID: st.Meter,
		Tariff:  st.Tariff,
	}, maxResidents)

	switch {
	case errors.Is(err, db.ErrMeterTaken):
		// гонка: прибор заняли, пока заполнялась анкета — возвращаемся на шаг ввода номера
		st.Step = session.StepMeter
		st.Meter = ""
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, textMeterTaken))
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, promptMeter))
		return
	case errors.Is(err, db.ErrLimitReached):
		sessions.Clear(chatID)
		_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, textLimitReached))
		return
	case err != nil:
		sendDBError(bot, chatID, err)
		return
	}

	sessions.Clear(chatID)
	metrics.ResidentsRegistered.Inc()
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, textRegistered))
}

func sendDBError(bot *tgbotapi.BotAPI, chatID int64, err error) {
	log.Println("Ошибка БД:", err)
	metrics.HandlerErrors.Inc()
	_, _ = tg.Send(bot, tgbotapi.NewMessage(chatID, "Что-то пошло не так. Попробуйте позже."))
}
