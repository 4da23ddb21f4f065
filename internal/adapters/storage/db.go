package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migration is a single schema step. Migrations run in order inside one
// transaction each; schema_version records the applied steps.
type migration struct {
	version int
	name    string
	sql     string
}

// migrations is the ordered schema history. Append only.
var migrations = []migration{
	{
		version: 1,
		name:    "browser_state",
		sql: `
	CREATE TABLE IF NOT EXISTS browser_state (
		browser_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (browser_id, key)
	);

	CREATE INDEX IF NOT EXISTS idx_browser_state_browser
		ON browser_state(browser_id);
	`,
	},
}

// LatestSchemaVersion returns the version of the newest migration.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion reads the current schema version from the database.
// PRE: db is a valid connection with the schema_version table present
// POST: Returns 0 for an unmigrated database
func SchemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// MigrateDB applies any pending migrations.
// PRE: db is a valid connection
// POST: Schema is at LatestSchemaVersion; safe to call repeatedly
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d (%s): begin: %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): record version: %w", m.version, m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d (%s): commit: %w", m.version, m.name, err)
		}
		slog.Info("migration_applied", "version", m.version, "name", m.name, "db", dbPath)
	}

	return nil
}
