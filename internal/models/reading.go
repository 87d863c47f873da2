package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueSet — набор зонных показаний одной передачи.
// Форма фиксируется тарифом: {total} | {peak, night} | {peak, semi_peak, night}.
// Указатели позволяют отличить «зона не входит в тариф» от нулевого показания.
type ValueSet struct {
	Total    *int `json:"total,omitempty"`
	Peak     *int `json:"peak,omitempty"`
	SemiPeak *int `json:"semi_peak,omitempty"`
	Night    *int `json:"night,omitempty"`
}

// NewValueSet собирает ValueSet из значений, введённых в порядке t.Zones().
func NewValueSet(t Tariff, values []int) (ValueSet, error) {
	if len(values) != t.Arity() {
		return ValueSet{}, fmt.Errorf("тариф %s требует %d значений, получено %d", t, t.Arity(), len(values))
	}
	var vs ValueSet
	for i, zone := range t.Zones() {
		v := values[i]
		switch zone {
		case ZoneTotal:
			vs.Total = &v
		case ZonePeak:
			vs.Peak = &v
		case ZoneSemiPeak:
			vs.SemiPeak = &v
		case ZoneNight:
			vs.Night = &v
		}
	}
	return vs, nil
}

// Zones возвращает присутствующие зоны в порядке total, peak, semi_peak, night.
func (v ValueSet) Zones() []string {
	var zones []string
	if v.Total != nil {
		zones = append(zones, ZoneTotal)
	}
	if v.Peak != nil {
		zones = append(zones, ZonePeak)
	}
	if v.SemiPeak != nil {
		zones = append(zones, ZoneSemiPeak)
	}
	if v.Night != nil {
		zones = append(zones, ZoneNight)
	}
	return zones
}

func (v ValueSet) Empty() bool {
	return v.Total == nil && v.Peak == nil && v.SemiPeak == nil && v.Night == nil
}

// Format — представление для отчёта: одно значение без подписи зоны,
// несколько — как "zone: value, zone: value".
func (v ValueSet) Format() string {
	zones := v.Zones()
	if len(zones) == 0 {
		return ""
	}
	if len(zones) == 1 && zones[0] == ZoneTotal {
		return strconv.Itoa(*v.Total)
	}
	parts := make([]string, 0, len(zones))
	for _, zone := range zones {
		parts = append(parts, fmt.Sprintf("%s: %d", zone, *v.value(zone)))
	}
	return strings.Join(parts, ", ")
}

func (v ValueSet) value(zone string) *int {
	switch zone {
	case ZoneTotal:
		return v.Total
	case ZonePeak:
		return v.Peak
	case ZoneSemiPeak:
		return v.SemiPeak
	case ZoneNight:
		return v.Night
	}
	return nil
}

// Reading — одна запись журнала показаний. Журнал append-only:
// записи не изменяются и не удаляются поштучно, только каскадом при
// удалении жильца.
type Reading struct {
	ID        int64
	MeterID   string
	Values    ValueSet
	CreatedAt time.Time
}

// JoinedReading — строка журнала, соединённая с данными жильца,
// как её отдаёт db.ListReadingsJoined.
type JoinedReading struct {
	Flat      string
	MeterID   string
	Values    ValueSet
	Phone     string
	CreatedAt time.Time
}
