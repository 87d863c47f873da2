package db

import (
	"database/sql"

	"github.com/Spok95/meter-readings-bot/internal/db/migrations"
	"github.com/pressly/goose/v3"
)

// Migrate накатывает схему из embed FS. Идемпотентно.
func Migrate(database *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(database, ".")
}
