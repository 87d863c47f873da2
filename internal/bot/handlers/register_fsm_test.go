package handlers

import (
	"testing"

	"github.com/Spok95/meter-readings-bot/internal/bot/session"
	"github.com/Spok95/meter-readings-bot/internal/models"
)

func noMeter(string) (bool, error) { return false, nil }

func TestAdvanceRegistrationHappyPath(t *testing.T) {
	st := &session.RegistrationState{Step: session.StepPhone}

	reply, done, err := advanceRegistration(st, "+7 900 123-45-67", noMeter)
	if err != nil || done {
		t.Fatalf("err=%v done=%v", err, done)
	}
	if reply != promptFlat || st.Step != session.StepFlat {
		t.Fatalf("после телефона: reply=%q step=%v", reply, st.Step)
	}

	reply, done, _ = advanceRegistration(st, "12", noMeter)
	if reply != promptMeter || st.Step != session.StepMeter {
		t.Fatalf("после квартиры: reply=%q step=%v", reply, st.Step)
	}

	reply, done, _ = advanceRegistration(st, "EM-001", noMeter)
	if reply != promptTariff || st.Step != session.StepTariff {
		t.Fatalf("после прибора: reply=%q step=%v", reply, st.Step)
	}

	reply, done, _ = advanceRegistration(st, "двухтарифный", noMeter)
	if !done {
		t.Fatal("анкета должна быть завершена")
	}
	if st.Phone != "+7 900 123-45-67" || st.Flat != "12" || st.Meter != "EM-001" || st.Tariff != models.TariffTwoZone {
		t.Fatalf("накопленная анкета: %+v", st)
	}
}

func TestAdvanceRegistrationMeterTaken(t *testing.T) {
	st := &session.RegistrationState{Step: session.StepMeter, Phone: "p", Flat: "f"}
	taken := func(string) (bool, error) { return true, nil }

	reply, done, err := advanceRegistration(st, "EM-001", taken)
	if err != nil || done {
		t.Fatalf("err=%v done=%v", err, done)
	}
	if reply != textMeterTaken {
		t.Fatalf("reply = %q", reply)
	}
	if st.Step != session.StepMeter || st.Meter != "" {
		t.Fatal("шаг должен остаться на вводе прибора")
	}
}

func TestAdvanceRegistrationBadTariff(t *testing.T) {
	st := &session.RegistrationState{Step: session.StepTariff}

	reply, done, _ := advanceRegistration(st, "почасовой", noMeter)
	if done || reply != textBadTariff || st.Step != session.StepTariff {
		t.Fatalf("reply=%q done=%v step=%v", reply, done, st.Step)
	}

	// регистр не важен
	_, done, _ = advanceRegistration(st, "СУТОЧНЫЙ", noMeter)
	if !done || st.Tariff != models.TariffDaily {
		t.Fatalf("done=%v tariff=%v", done, st.Tariff)
	}
}

func TestAdvanceRegistrationEmptyInput(t *testing.T) {
	st := &session.RegistrationState{Step: session.StepPhone}
	reply, done, _ := advanceRegistration(st, "   ", noMeter)
	if done || st.Step != session.StepPhone || reply != promptPhone {
		t.Fatalf("пустой ввод не должен продвигать шаг: reply=%q step=%v", reply, st.Step)
	}
}
