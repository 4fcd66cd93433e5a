package db

import (
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RequiredTables are checked by /api/db-check.
var RequiredTables = []string{
	"users", "packages", "hotels", "bookings",
	"documents", "flights", "booking_hotels", "transfers",
}

// Migrate applies pending schema migrations.
func Migrate(conn *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("mysql"); err != nil {
		return errors.Wrap(err, "goose dialect")
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		return errors.Wrap(err, "goose up")
	}
	return nil
}
