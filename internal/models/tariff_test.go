package models

import "testing"

func TestParseTariff(t *testing.T) {
	cases := []struct {
		in   string
		want Tariff
		ok   bool
	}{
		{"суточный", TariffDaily, true},
		{"Двухтарифный", TariffTwoZone, true},
		{"  ТРЕХТАРИФНЫЙ ", TariffThreeZone, true},
		{"трёхтарифный", TariffThreeZone, true},
		{"daily", TariffDaily, true},
		{"two_zone", TariffTwoZone, true},
		{"three_zone", TariffThreeZone, true},
		{"почасовой", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseTariff(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseTariff(%q) = (%q, %v), ожидали (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestTariffArityAndZones(t *testing.T) {
	t.Run("daily", func(t *testing.T) {
		if TariffDaily.Arity() != 1 {
			t.Fatalf("арность суточного = %d", TariffDaily.Arity())
		}
		zones := TariffDaily.Zones()
		if len(zones) != 1 || zones[0] != ZoneTotal {
			t.Fatalf("зоны суточного: %v", zones)
		}
	})
	t.Run("two_zone", func(t *testing.T) {
		zones := TariffTwoZone.Zones()
		if len(zones) != 2 || zones[0] != ZonePeak || zones[1] != ZoneNight {
			t.Fatalf("зоны двухтарифного: %v", zones)
		}
	})
	t.Run("three_zone", func(t *testing.T) {
		zones := TariffThreeZone.Zones()
		if len(zones) != 3 || zones[0] != ZonePeak || zones[1] != ZoneSemiPeak || zones[2] != ZoneNight {
			t.Fatalf("зоны трехтарифного: %v", zones)
		}
	})
	t.Run("invalid", func(t *testing.T) {
		if Tariff("почасовой").Valid() {
			t.Fatal("неизвестный тариф не должен быть валидным")
		}
	})
}
