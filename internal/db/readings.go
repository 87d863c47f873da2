package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Spok95/meter-readings-bot/internal/models"
)

// AddReading дописывает показания в журнал. Метка времени ставится в момент
// записи; существующие записи никогда не изменяются.
func AddReading(ctx context.Context, database *sql.DB, meterID string, values models.ValueSet) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal value set: %w", err)
	}
	_, err = database.ExecContext(ctx, `
		INSERT INTO readings (meter_id, value_json, created_at)
		VALUES ($1, $2, now())
	`, meterID, payload)
	return err
}

// ListReadingsJoined — журнал показаний, соединённый с данными жильцов,
// от новых к старым. При равных метках времени позже считается запись
// с большим id (порядок вставки) — детерминированный tie-break для отчёта.
// INNER JOIN молча отбрасывает показания приборов без жильца.
func ListReadingsJoined(ctx context.Context, database *sql.DB) ([]models.JoinedReading, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT u.flat, r.meter_id, r.value_json, u.phone, r.created_at
		FROM readings r
		JOIN residents u ON r.meter_id = u.meter_id
		ORDER BY r.created_at DESC, r.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.JoinedReading
	for rows.Next() {
		var jr models.JoinedReading
		var raw []byte
		if err := rows.Scan(&jr.Flat, &jr.MeterID, &raw, &jr.Phone, &jr.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &jr.Values); err != nil {
			return nil, fmt.Errorf("decode value set for meter %s: %w", jr.MeterID, err)
		}
		out = append(out, jr)
	}
	return out, rows.Err()
}
