package models

// Resident — зарегистрированный жилец: один человек, один прибор учёта.
// ChatID — идентификатор чата Telegram, он же первичный ключ.
type Resident struct {
	ChatID  int64
	Phone   string
	Flat    string
	MeterID string
	Tariff  Tariff
}
