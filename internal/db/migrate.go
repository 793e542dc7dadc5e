package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS calendars (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		weekdays      TEXT NOT NULL,
		hours_per_day REAL NOT NULL DEFAULT 8 CHECK(hours_per_day > 0),
		created_at    TEXT NOT NULL DEFAULT '',
		updated_at    TEXT NOT NULL DEFAULT ''
	)`,

	// Seed the standard Monday-Friday calendar. Weekdays are stored as a
	// comma-separated list of time.Weekday ordinals (Sunday = 0).
	`INSERT OR IGNORE INTO calendars (id, name, weekdays, hours_per_day)
		VALUES ('default', 'Standard', '1,2,3,4,5', 8)`,

	`CREATE TABLE IF NOT EXISTS calendar_holidays (
		calendar_id TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		day         TEXT NOT NULL,
		PRIMARY KEY (calendar_id, day)
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','on_hold','closed','archived')),
		start_date  TEXT,
		calendar_id TEXT NOT NULL DEFAULT 'default' REFERENCES calendars(id),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name             TEXT NOT NULL,
		notes            TEXT NOT NULL DEFAULT '',
		duration_days    INTEGER NOT NULL DEFAULT 1 CHECK(duration_days >= 0),
		status           TEXT NOT NULL DEFAULT 'not_started'
		                 CHECK(status IN ('not_started','in_progress','completed','on_hold')),
		priority         TEXT NOT NULL DEFAULT 'medium'
		                 CHECK(priority IN ('high','medium','low')),
		percent_complete REAL NOT NULL DEFAULT 0 CHECK(percent_complete BETWEEN 0 AND 100),
		planned_start    TEXT,
		deadline         TEXT,
		actual_start     TEXT,
		actual_end       TEXT,
		computed_start   TEXT,
		computed_end     TEXT,
		computed_float   INTEGER,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		predecessor_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		successor_id   TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		type           TEXT NOT NULL DEFAULT 'FS' CHECK(type IN ('FS','FF','SS','SF')),
		lag_days       INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		PRIMARY KEY (predecessor_id, successor_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dependencies_successor ON dependencies(successor_id)`,

	`CREATE TABLE IF NOT EXISTS resources (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		role        TEXT NOT NULL DEFAULT '',
		hourly_rate REAL NOT NULL DEFAULT 0 CHECK(hourly_rate >= 0),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id                 TEXT PRIMARY KEY,
		resource_id        TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		task_id            TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		allocation_percent REAL NOT NULL DEFAULT 100 CHECK(allocation_percent BETWEEN 0 AND 100),
		planned_hours      REAL NOT NULL DEFAULT 0 CHECK(planned_hours >= 0),
		logged_hours       REAL NOT NULL DEFAULT 0 CHECK(logged_hours >= 0),
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL,
		UNIQUE (resource_id, task_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_task ON assignments(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_resource ON assignments(resource_id)`,

	`CREATE TABLE IF NOT EXISTS cost_items (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		task_id        TEXT REFERENCES tasks(id) ON DELETE SET NULL,
		description    TEXT NOT NULL DEFAULT '',
		type           TEXT NOT NULL DEFAULT 'other'
		               CHECK(type IN ('labor','material','service','other')),
		planned_amount REAL NOT NULL DEFAULT 0 CHECK(planned_amount >= 0),
		actual_amount  REAL NOT NULL DEFAULT 0 CHECK(actual_amount >= 0),
		incurred_date  TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cost_items_project ON cost_items(project_id)`,

	// state_hash is a uint64 fingerprint stored as text; SQLite INTEGER is
	// signed and would mangle the upper bit.
	`CREATE TABLE IF NOT EXISTS baselines (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL DEFAULT '',
		state_hash TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_baselines_project ON baselines(project_id)`,

	`CREATE TABLE IF NOT EXISTS baseline_tasks (
		baseline_id   TEXT NOT NULL REFERENCES baselines(id) ON DELETE CASCADE,
		task_id       TEXT NOT NULL,
		task_name     TEXT NOT NULL,
		start         TEXT,
		finish        TEXT,
		duration_days INTEGER NOT NULL DEFAULT 0,
		planned_cost  REAL NOT NULL DEFAULT 0,
		planned_hours REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (baseline_id, task_id)
	)`,
}
