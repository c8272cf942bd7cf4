package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// SchemaVersion returns the recorded schema version, 0 for a fresh database.
func (db *DB) SchemaVersion() (int, error) {
	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		return 0, nil
	}
	return version, nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			completed    BOOLEAN NOT NULL DEFAULT false,
			priority     TEXT NOT NULL,
			created_at   TEXT NOT NULL,
			completed_at TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS habits (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			icon       TEXT NOT NULL DEFAULT '',
			color      TEXT NOT NULL DEFAULT '',
			category   TEXT NOT NULL,
			target     REAL NOT NULL DEFAULT 1,
			unit       TEXT NOT NULL DEFAULT '',
			streak     INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS habit_completions (
			habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
			date     TEXT NOT NULL,
			PRIMARY KEY (habit_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS wellness_entries (
			date   TEXT PRIMARY KEY,
			mood   INTEGER NOT NULL CHECK (mood BETWEEN 1 AND 5),
			stress INTEGER NOT NULL CHECK (stress BETWEEN 1 AND 5),
			energy INTEGER NOT NULL CHECK (energy BETWEEN 1 AND 5),
			notes  TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS goals (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			category     TEXT NOT NULL,
			target       REAL NOT NULL,
			current      REAL NOT NULL DEFAULT 0,
			unit         TEXT NOT NULL DEFAULT '',
			progress     REAL NOT NULL DEFAULT 0,
			is_completed BOOLEAN NOT NULL DEFAULT false,
			created_at   TEXT NOT NULL,
			deadline     TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS notes (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			position    INTEGER PRIMARY KEY,
			id          TEXT NOT NULL,
			type        TEXT NOT NULL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			priority    TEXT NOT NULL,
			confidence  INTEGER NOT NULL,
			category    TEXT NOT NULL,
			action      TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_habit_completions_date ON habit_completions(date)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_completed ON goals(is_completed)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
