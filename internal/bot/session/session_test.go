package session

import (
	"testing"

	"github.com/Spok95/meter-readings-bot/internal/models"
)

func TestStoreSingleActiveFlow(t *testing.T) {
	s := NewStore()
	const chatID int64 = 42

	if s.Active(chatID) {
		t.Fatal("новый чат не должен иметь активного сценария")
	}

	s.StartRegistration(chatID)
	if s.Registration(chatID) == nil {
		t.Fatal("регистрация не активна после запуска")
	}

	// запуск другого сценария вытесняет предыдущий
	s.StartReading(chatID, models.TariffTwoZone, "m-1")
	if s.Registration(chatID) != nil {
		t.Fatal("регистрация должна быть вытеснена приёмом показаний")
	}
	rd := s.Reading(chatID)
	if rd == nil || rd.Tariff != models.TariffTwoZone || rd.MeterID != "m-1" {
		t.Fatalf("состояние показаний: %+v", rd)
	}

	s.StartDeletion(chatID)
	if s.Reading(chatID) != nil || !s.DeletionActive(chatID) {
		t.Fatal("удаление должно быть единственным активным сценарием")
	}

	s.Clear(chatID)
	if s.Active(chatID) {
		t.Fatal("Clear должен снимать сценарий")
	}
}

func TestStoreChatsIndependent(t *testing.T) {
	s := NewStore()
	s.StartRegistration(1)
	s.StartReading(2, models.TariffDaily, "m-9")

	if s.Registration(1) == nil || s.Reading(2) == nil {
		t.Fatal("сценарии разных чатов не должны влиять друг на друга")
	}
	s.Clear(1)
	if s.Reading(2) == nil {
		t.Fatal("Clear чужого чата снял сценарий")
	}
}
