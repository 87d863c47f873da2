package models

import (
	"encoding/json"
	"testing"
)

func TestNewValueSetShapes(t *testing.T) {
	t.Run("daily", func(t *testing.T) {
		vs, err := NewValueSet(TariffDaily, []int{1234})
		if err != nil {
			t.Fatal(err)
		}
		if vs.Total == nil || *vs.Total != 1234 {
			t.Fatalf("total = %v", vs.Total)
		}
		if got := vs.Zones(); len(got) != 1 || got[0] != ZoneTotal {
			t.Fatalf("ключи = %v, ожидали только total", got)
		}
	})

	t.Run("two_zone", func(t *testing.T) {
		vs, err := NewValueSet(TariffTwoZone, []int{100, 50})
		if err != nil {
			t.Fatal(err)
		}
		if vs.Peak == nil || *vs.Peak != 100 || vs.Night == nil || *vs.Night != 50 {
			t.Fatalf("peak=%v night=%v", vs.Peak, vs.Night)
		}
		if vs.Total != nil || vs.SemiPeak != nil {
			t.Fatal("лишние зоны в двухтарифном наборе")
		}
	})

	t.Run("three_zone", func(t *testing.T) {
		vs, err := NewValueSet(TariffThreeZone, []int{3, 2, 1})
		if err != nil {
			t.Fatal(err)
		}
		if *vs.Peak != 3 || *vs.SemiPeak != 2 || *vs.Night != 1 {
			t.Fatalf("значения разложены не по порядку зон: %+v", vs)
		}
	})

	t.Run("arity_mismatch", func(t *testing.T) {
		if _, err := NewValueSet(TariffTwoZone, []int{100}); err == nil {
			t.Fatal("ожидали ошибку при неполном наборе значений")
		}
	})
}

func TestValueSetFormat(t *testing.T) {
	t.Run("single_value_bare_number", func(t *testing.T) {
		vs, _ := NewValueSet(TariffDaily, []int{777})
		if got := vs.Format(); got != "777" {
			t.Fatalf("Format() = %q, ожидали голое число", got)
		}
	})
	t.Run("multi_zone_labeled", func(t *testing.T) {
		vs, _ := NewValueSet(TariffTwoZone, []int{100, 50})
		if got := vs.Format(); got != "peak: 100, night: 50" {
			t.Fatalf("Format() = %q", got)
		}
	})
	t.Run("three_zone_order", func(t *testing.T) {
		vs, _ := NewValueSet(TariffThreeZone, []int{3, 2, 1})
		if got := vs.Format(); got != "peak: 3, semi_peak: 2, night: 1" {
			t.Fatalf("Format() = %q", got)
		}
	})
	t.Run("empty", func(t *testing.T) {
		var vs ValueSet
		if got := vs.Format(); got != "" {
			t.Fatalf("пустой набор должен давать пустую строку, получили %q", got)
		}
	})
}

func TestValueSetJSON(t *testing.T) {
	vs, _ := NewValueSet(TariffTwoZone, []int{100, 50})
	raw, err := json.Marshal(vs)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]int
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	if len(m) != 2 || m["peak"] != 100 || m["night"] != 50 {
		t.Fatalf("JSON: %s", raw)
	}

	var back ValueSet
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if back.Peak == nil || *back.Peak != 100 || back.Night == nil || *back.Night != 50 {
		t.Fatalf("обратное чтение: %+v", back)
	}
}
