package sqlite

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

// SqlFiles holds the members, attendance_entries and system_state schema
//
//go:embed sql/*.sql
var SqlFiles embed.FS

// Migrate applies every pending attendance schema migration to db
func Migrate(db *sql.DB) error {
	migrator := sqlmigrator.New(db, darwin.SqliteDialect{})

	if err := migrator.Migrate(SqlFiles, "sql"); err != nil {
		return fmt.Errorf("failed to migrate attendance schema: %w", err)
	}
	return nil
}
