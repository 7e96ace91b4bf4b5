package sqlite

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"members", "attendance_entries", "system_state"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	t.Run("should be idempotent", func(t *testing.T) {
		assert.NoError(t, Migrate(db))
	})

	t.Run("should enforce one row per attendance key", func(t *testing.T) {
		insert := `INSERT INTO attendance_entries (id, entry_date, time_window, member_id, status, submitted_at)
			VALUES (?, '2024-01-01', '09:00', '33069', 'x', CURRENT_TIMESTAMP)`
		_, err := db.Exec(insert, "a")
		require.NoError(t, err)

		_, err = db.Exec(insert, "b")
		assert.Error(t, err)
	})

	t.Run("should allow a single system state row", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO system_state (id, enabled) VALUES (2, 1)`)
		assert.Error(t, err)
	})
}
