package session

import (
	"sync"

	"github.com/Spok95/meter-readings-bot/internal/models"
)

// RegistrationStep — шаг анкеты регистрации.
type RegistrationStep int

const (
	StepPhone RegistrationStep = iota + 1
	StepFlat
	StepMeter
	StepTariff
)

// RegistrationState — данные, накопленные анкетой регистрации.
type RegistrationState struct {
	Step   RegistrationStep
	Phone  string
	Flat   string
	Meter  string
	Tariff models.Tariff
}

// ReadingState — передача показаний: тариф задаёт арность,
// Values накапливает введённые значения в порядке зон тарифа.
type ReadingState struct {
	Tariff  models.Tariff
	MeterID string
	Values  []int
}

// DeletionState — ожидание ID удаляемого жильца.
type DeletionState struct{}

// state держит не более одного активного сценария: запуск нового
// затирает предыдущий, так что два сценария разом непредставимы.
type state struct {
	registration *RegistrationState
	reading      *ReadingState
	deletion     *DeletionState
}

// Store — состояния диалогов по чатам. Живёт только в памяти процесса:
// незавершённый сценарий не переживает рестарт, это осознанно.
type Store struct {
	mu     sync.Mutex
	byChat map[int64]*state
}

func NewStore() *Store {
	return &Store{byChat: make(map[int64]*state)}
}

func (s *Store) StartRegistration(chatID int64) *RegistrationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &RegistrationState{Step: StepPhone}
	s.byChat[chatID] = &state{registration: st}
	return st
}

func (s *Store) StartReading(chatID int64, tariff models.Tariff, meterID string) *ReadingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &ReadingState{Tariff: tariff, MeterID: meterID}
	s.byChat[chatID] = &state{reading: st}
	return st
}

func (s *Store) StartDeletion(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byChat[chatID] = &state{deletion: &DeletionState{}}
}

// Registration возвращает nil, если анкета не активна.
func (s *Store) Registration(chatID int64) *RegistrationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.byChat[chatID]; ok {
		return st.registration
	}
	return nil
}

func (s *Store) Reading(chatID int64) *ReadingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.byChat[chatID]; ok {
		return st.reading
	}
	return nil
}

func (s *Store) DeletionActive(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byChat[chatID]
	return ok && st.deletion != nil
}

// Clear завершает любой активный сценарий чата.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byChat, chatID)
}

// Active — есть ли в чате незавершённый сценарий.
func (s *Store) Active(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byChat[chatID]
	return ok
}
