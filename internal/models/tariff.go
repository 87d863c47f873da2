package models

import "strings"

// Tariff определяет, сколько зонных показаний собирается за одну передачу.
type Tariff string

const (
	TariffDaily     Tariff = "daily"
	TariffTwoZone   Tariff = "two_zone"
	TariffThreeZone Tariff = "three_zone"
)

// Имена зон в том порядке, в котором они запрашиваются у жильца.
const (
	ZoneTotal    = "total"
	ZonePeak     = "peak"
	ZoneSemiPeak = "semi_peak"
	ZoneNight    = "night"
)

// ParseTariff принимает как канонические имена, так и русские подписи кнопок.
// Ввод нормализуется к нижнему регистру.
func ParseTariff(s string) (Tariff, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TariffDaily), "суточный":
		return TariffDaily, true
	case string(TariffTwoZone), "двухтарифный":
		return TariffTwoZone, true
	case string(TariffThreeZone), "трехтарифный", "трёхтарифный":
		return TariffThreeZone, true
	}
	return "", false
}

func (t Tariff) Valid() bool {
	switch t {
	case TariffDaily, TariffTwoZone, TariffThreeZone:
		return true
	}
	return false
}

// Arity — сколько целых значений нужно ввести для этого тарифа.
func (t Tariff) Arity() int {
	return len(t.Zones())
}

// Zones возвращает имена зон в порядке ввода.
func (t Tariff) Zones() []string {
	switch t {
	case TariffDaily:
		return []string{ZoneTotal}
	case TariffTwoZone:
		return []string{ZonePeak, ZoneNight}
	case TariffThreeZone:
		return []string{ZonePeak, ZoneSemiPeak, ZoneNight}
	}
	return nil
}

// Label — подпись тарифа для кнопок и сообщений.
func (t Tariff) Label() string {
	switch t {
	case TariffDaily:
		return "суточный"
	case TariffTwoZone:
		return "двухтарифный"
	case TariffThreeZone:
		return "трехтарифный"
	}
	return string(t)
}

// Tariffs — все тарифы в порядке отображения в меню.
func Tariffs() []Tariff {
	return []Tariff{TariffDaily, TariffTwoZone, TariffThreeZone}
}
