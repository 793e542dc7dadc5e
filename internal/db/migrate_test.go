package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	tables := []string{
		"calendars", "calendar_holidays", "projects", "tasks", "dependencies",
		"resources", "assignments", "cost_items", "baselines", "baseline_tasks",
	}
	for _, table := range tables {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_SeedsDefaultCalendar(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	var weekdays string
	var hours float64
	require.NoError(t, database.QueryRow(
		`SELECT weekdays, hours_per_day FROM calendars WHERE id = 'default'`).Scan(&weekdays, &hours))
	assert.Equal(t, "1,2,3,4,5", weekdays)
	assert.Equal(t, 8.0, hours)
}

func TestOpenDB_ForeignKeysEnforced(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(
		`INSERT INTO tasks (id, project_id, name, created_at, updated_at)
		VALUES ('t1', 'no-such-project', 'orphan', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "orphan task must be rejected")
}
