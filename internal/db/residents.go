package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Spok95/meter-readings-bot/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrMeterTaken — прибор с таким номером уже закреплён за другим жильцом.
	ErrMeterTaken = errors.New("meter id already registered")
	// ErrLimitReached — достигнут лимит зарегистрированных жильцов.
	ErrLimitReached = errors.New("resident limit reached")
)

const uniqueViolation = "23505"

// residentsLockKey — ключ advisory-блокировки на регистрацию.
const residentsLockKey = 874301

// CreateResident регистрирует жильца. Проверка лимита и вставка идут в одной
// транзакции под advisory-блокировкой: на READ COMMITTED две параллельные
// транзакции из разных чатов иначе обе увидят count=4 и обе вставят.
func CreateResident(ctx context.Context, database *sql.DB, r models.Resident, maxResidents int) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, residentsLockKey); err != nil {
		return err
	}

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM residents`).Scan(&n); err != nil {
		return err
	}
	if n >= maxResidents {
		return ErrLimitReached
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO residents (chat_id, phone, flat, meter_id, tariff)
		VALUES ($1, $2, $3, $4, $5)
	`, r.ChatID, r.Phone, r.Flat, r.MeterID, string(r.Tariff))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrMeterTaken
		}
		return fmt.Errorf("insert resident: %w", err)
	}
	return tx.Commit()
}

// GetResidentByChatID возвращает (nil, nil), если жилец не зарегистрирован.
func GetResidentByChatID(ctx context.Context, database *sql.DB, chatID int64) (*models.Resident, error) {
	row := database.QueryRowContext(ctx, `
		SELECT chat_id, phone, flat, meter_id, tariff
		FROM residents WHERE chat_id = $1
	`, chatID)

	var r models.Resident
	var tariff string
	if err := row.Scan(&r.ChatID, &r.Phone, &r.Flat, &r.MeterID, &tariff); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	r.Tariff = models.Tariff(tariff)
	return &r, nil
}

func MeterExists(ctx context.Context, database *sql.DB, meterID string) (bool, error) {
	var exists bool
	err := database.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM residents WHERE meter_id = $1)
	`, meterID).Scan(&exists)
	return exists, err
}

func CountResidents(ctx context.Context, database *sql.DB) (int, error) {
	var n int
	err := database.QueryRowContext(ctx, `SELECT count(*) FROM residents`).Scan(&n)
	return n, err
}

func ListResidents(ctx context.Context, database *sql.DB) ([]models.Resident, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT chat_id, phone, flat, meter_id, tariff
		FROM residents ORDER BY chat_id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Resident
	for rows.Next() {
		var r models.Resident
		var tariff string
		if err := rows.Scan(&r.ChatID, &r.Phone, &r.Flat, &r.MeterID, &tariff); err != nil {
			return nil, err
		}
		r.Tariff = models.Tariff(tariff)
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteResident удаляет жильца и каскадом все показания его прибора.
// Обе операции в одной транзакции, чтобы не оставить осиротевших показаний.
// Отсутствующий chat_id — штатный no-op, возвращает false без ошибки.
func DeleteResident(ctx context.Context, database *sql.DB, chatID int64) (bool, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var meterID string
	err = tx.QueryRowContext(ctx, `SELECT meter_id FROM residents WHERE chat_id = $1`, chatID).Scan(&meterID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM readings WHERE meter_id = $1`, meterID); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM residents WHERE chat_id = $1`, chatID); err != nil {
		return false, err
	}
	return true, tx.Commit()
}
