package export

import (
	"testing"
	"time"

	"github.com/Spok95/meter-readings-bot/internal/models"
)

func vset(t *testing.T, tariff models.Tariff, values ...int) models.ValueSet {
	t.Helper()
	vs, err := models.NewValueSet(tariff, values)
	if err != nil {
		t.Fatal(err)
	}
	return vs
}

func TestReduceLatestVsPrevious(t *testing.T) {
	loc := time.UTC
	t3 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	t2 := t3.Add(-24 * time.Hour)
	t1 := t3.Add(-48 * time.Hour)

	// журнал приходит от новых к старым
	rows := []models.JoinedReading{
		{Flat: "12", MeterID: "m-1", Values: vset(t, models.TariffTwoZone, 300, 150), Phone: "+7 900", CreatedAt: t3},
		{Flat: "12", MeterID: "m-1", Values: vset(t, models.TariffTwoZone, 200, 100), Phone: "+7 900", CreatedAt: t2},
		{Flat: "12", MeterID: "m-1", Values: vset(t, models.TariffTwoZone, 100, 50), Phone: "+7 900", CreatedAt: t1},
	}

	got := Reduce(rows, loc)
	if len(got) != 1 {
		t.Fatalf("строк = %d, ожидали 1", len(got))
	}
	row := got[0]
	if row.Current != "peak: 300, night: 150" {
		t.Errorf("текущие = %q", row.Current)
	}
	if row.Previous != "peak: 200, night: 100" {
		t.Errorf("предыдущие = %q, V1 должен игнорироваться", row.Previous)
	}
	if row.Date != "10.03.2025" {
		t.Errorf("дата = %q", row.Date)
	}
}

func TestReduceSingleReading(t *testing.T) {
	rows := []models.JoinedReading{
		{Flat: "7", MeterID: "m-2", Values: vset(t, models.TariffDaily, 500), Phone: "+7 901", CreatedAt: time.Now()},
	}
	got := Reduce(rows, time.UTC)
	if len(got) != 1 {
		t.Fatalf("строк = %d", len(got))
	}
	if got[0].Previous != "" {
		t.Errorf("предыдущие = %q, ожидали пусто", got[0].Previous)
	}
	if got[0].Current != "500" {
		t.Errorf("одиночное значение должно быть голым числом, получили %q", got[0].Current)
	}
}

func TestReduceOneRowPerMeter(t *testing.T) {
	now := time.Now()
	rows := []models.JoinedReading{
		{Flat: "1", MeterID: "m-a", Values: vset(t, models.TariffDaily, 10), CreatedAt: now},
		{Flat: "2", MeterID: "m-b", Values: vset(t, models.TariffTwoZone, 9, 8), CreatedAt: now.Add(-time.Hour)},
		{Flat: "1", MeterID: "m-a", Values: vset(t, models.TariffDaily, 5), CreatedAt: now.Add(-2 * time.Hour)},
		{Flat: "3", MeterID: "m-c", Values: vset(t, models.TariffThreeZone, 3, 2, 1), CreatedAt: now.Add(-3 * time.Hour)},
	}
	got := Reduce(rows, time.UTC)
	if len(got) != 3 {
		t.Fatalf("строк = %d, ожидали по одной на прибор", len(got))
	}
	// порядок — первое появление прибора в журнале
	if got[0].Flat != "1" || got[1].Flat != "2" || got[2].Flat != "3" {
		t.Errorf("порядок строк: %v, %v, %v", got[0].Flat, got[1].Flat, got[2].Flat)
	}
	if got[0].Previous != "5" {
		t.Errorf("предыдущие m-a = %q", got[0].Previous)
	}
}

func TestBuildReadingsReport(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	rows := []models.JoinedReading{
		{Flat: "12", MeterID: "m-1", Values: vset(t, models.TariffTwoZone, 100, 50), Phone: "+7 900", CreatedAt: now},
	}
	f, err := BuildReadingsReport(rows, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	got, err := f.GetRows("Показания")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("строк на листе = %d", len(got))
	}
	if got[0][0] != "Номер квартиры" || got[0][4] != "Дата" {
		t.Errorf("заголовок: %v", got[0])
	}
	want := []string{"12", "", "peak: 100, night: 50", "+7 900", "15.01.2025"}
	for i, cell := range want {
		if got[1][i] != cell {
			t.Errorf("ячейка %d = %q, ожидали %q", i, got[1][i], cell)
		}
	}
}
