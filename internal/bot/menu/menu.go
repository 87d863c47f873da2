package menu

import (
	"fmt"

	"github.com/Spok95/meter-readings-bot/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MainMenu — стартовая клавиатура с единственной кнопкой «Меню».
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Меню", "main_menu"),
		),
	)
}

// FullMenu — полное меню действий. «Зарегистрироваться» показываем только
// незарегистрированным, административные кнопки — только администратору.
func FullMenu(registered, isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if !registered {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Зарегистрироваться", "register"),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Передать показания", "submit_reading"),
	))
	if isAdmin {
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Выгрузить данные", "export"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Удалить пользователя", "delete_user"),
			),
		)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("<< Назад", "back_to_start"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// TariffKeyboard — выбор тарифа на шаге регистрации. Текстовый ввод
// названия тарифа тоже принимается.
func TariffKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range models.Tariffs() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Label(), "tariff_"+string(t)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// DeleteKeyboard — список жильцов для удаления плюс строка отмены.
func DeleteKeyboard(residents []models.Resident) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, r := range residents {
		label := fmt.Sprintf("ID: %d | Квартира: %s | Прибор: %s", r.ChatID, r.Flat, r.MeterID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("delete_%d", r.ChatID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("<< Отмена", "cancel_delete"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
