package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent so
// the full list re-runs safely on startup.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Generated target-range tables, keyed by normalized plant slug and
	// growth stage. Rewritten wholesale on regeneration (last write wins).
	`CREATE TABLE IF NOT EXISTS target_ranges (
		plant_key  TEXT NOT NULL,
		stage      TEXT NOT NULL
		           CHECK(stage IN ('vegetative','flowering','fruit-setting','harvest')),
		targets    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (plant_key, stage)
	)`,

	// Raw device readings, bounded by the repository to a recent window.
	`CREATE TABLE IF NOT EXISTS soil_readings (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		device_id   TEXT NOT NULL DEFAULT '',
		reading     TEXT NOT NULL,
		stage_label TEXT NOT NULL DEFAULT '',
		advice      TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_soil_readings_recorded
		ON soil_readings (recorded_at DESC)`,

	// Complete advisory sessions: reading + targets + status + advice.
	`CREATE TABLE IF NOT EXISTS soil_sessions (
		id             TEXT PRIMARY KEY,
		created_at     TEXT NOT NULL,
		reading        TEXT NOT NULL,
		plant_name     TEXT NOT NULL DEFAULT '',
		stage_label    TEXT NOT NULL DEFAULT '',
		targets        TEXT,
		status_summary TEXT,
		advice         TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_soil_sessions_created
		ON soil_sessions (created_at DESC)`,
}
