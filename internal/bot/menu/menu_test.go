package menu

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func hasCallback(kb tgbotapi.InlineKeyboardMarkup, data string) bool {
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil && *btn.CallbackData == data {
				return true
			}
		}
	}
	return false
}

func TestFullMenuRegisterButton(t *testing.T) {
	if !hasCallback(FullMenu(false, true), "register") {
		t.Error("незарегистрированному нужна кнопка «Зарегистрироваться»")
	}
	if hasCallback(FullMenu(true, true), "register") {
		t.Error("зарегистрированному кнопка «Зарегистрироваться» не показывается")
	}
}

func TestFullMenuAdminButtons(t *testing.T) {
	admin := FullMenu(true, true)
	for _, cb := range []string{"export", "delete_user"} {
		if !hasCallback(admin, cb) {
			t.Errorf("в админском меню нет кнопки %s", cb)
		}
	}
	resident := FullMenu(true, false)
	for _, cb := range []string{"export", "delete_user"} {
		if hasCallback(resident, cb) {
			t.Errorf("кнопка %s не должна показываться жильцу", cb)
		}
	}
}
