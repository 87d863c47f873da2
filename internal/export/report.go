package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Spok95/meter-readings-bot/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Показания"

var reportHeader = []string{
	"Номер квартиры",
	"Предыдущие показания",
	"Текущие показания",
	"Номер телефона",
	"Дата",
}

// ReportRow — одна строка отчёта: по строке на прибор.
type ReportRow struct {
	Flat     string
	Previous string
	Current  string
	Phone    string
	Date     string
}

// Reduce сворачивает журнал (отсортированный от новых к старым) в пары
// «предыдущие/текущие» по прибору: первая встреченная запись — текущие
// показания, вторая — предыдущие, остальные игнорируются. Прибор с
// единственной записью получает пустую колонку «предыдущие». Порядок строк —
// порядок первого появления прибора в журнале.
func Reduce(rows []models.JoinedReading, loc *time.Location) []ReportRow {
	type acc struct {
		flat, phone string
		current     models.ValueSet
		previous    models.ValueSet
		seen        int
		date        time.Time
	}
	byMeter := make(map[string]*acc)
	var order []string

	for _, r := range rows {
		a, ok := byMeter[r.MeterID]
		if !ok {
			a = &acc{flat: r.Flat, phone: r.Phone, current: r.Values, date: r.CreatedAt, seen: 1}
			byMeter[r.MeterID] = a
			order = append(order, r.MeterID)
			continue
		}
		a.seen++
		if a.seen == 2 {
			a.previous = r.Values
		}
	}

	out := make([]ReportRow, 0, len(order))
	for _, meter := range order {
		a := byMeter[meter]
		out = append(out, ReportRow{
			Flat:     a.flat,
			Previous: a.previous.Format(),
			Current:  a.current.Format(),
			Phone:    a.phone,
			Date:     a.date.In(loc).Format("02.01.2006"),
		})
	}
	return out
}

// BuildReadingsReport собирает xlsx-книгу с единственным листом «Показания».
func BuildReadingsReport(rows []models.JoinedReading, loc *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range reportHeader {
		cell := fmt.Sprintf("%s1", columName(col+1))
		if err := f.SetCellStr(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}

	for i, row := range Reduce(rows, loc) {
		cells := []string{row.Flat, row.Previous, row.Current, row.Phone, row.Date}
		for col, val := range cells {
			cell := fmt.Sprintf("%s%d", columName(col+1), i+2)
			if err := f.SetCellStr(sheetName, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := ApplyDefaultExcelFormatting(f, sheetName); err != nil {
		return nil, err
	}
	return f, nil
}

// SaveTemp сохраняет книгу во временный файл и возвращает путь.
func SaveTemp(f *excelize.File, now time.Time) (string, error) {
	name := sanitizeFileName(fmt.Sprintf("Показания %s.xlsx", now.Format("02.01.2006")))
	path := filepath.Join(os.TempDir(), name)
	return path, f.SaveAs(path)
}
