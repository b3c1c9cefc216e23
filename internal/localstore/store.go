// Package localstore is a single-file SQLite store for running the logger
// on one device without a Postgres server.
package localstore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/ironlog/internal/session"
	_ "modernc.org/sqlite"
)

// Store serves the catalog and session history from a SQLite database.
// IDs are stored as TEXT and timestamps as unix milliseconds.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Compile-time check: *Store satisfies session.Store.
var _ session.Store = (*Store)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS exercises (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		muscle_group  TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS workout_templates (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS day_templates (
		id           TEXT PRIMARY KEY,
		template_id  TEXT NOT NULL REFERENCES workout_templates(id) ON DELETE CASCADE,
		weekday      INTEGER NOT NULL CHECK (weekday BETWEEN 0 AND 6),
		is_rest      INTEGER NOT NULL DEFAULT 0,
		UNIQUE (template_id, weekday)
	)`,
	`CREATE TABLE IF NOT EXISTS exercise_templates (
		id               TEXT PRIMARY KEY,
		day_template_id  TEXT NOT NULL REFERENCES day_templates(id) ON DELETE CASCADE,
		exercise_id      TEXT NOT NULL REFERENCES exercises(id),
		set_count        INTEGER NOT NULL CHECK (set_count >= 0),
		reps             INTEGER NOT NULL,
		weight           REAL,
		position         REAL NOT NULL,
		superset_id      TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS workout_plans (
		id              TEXT PRIMARY KEY,
		template_id     TEXT NOT NULL REFERENCES workout_templates(id),
		name            TEXT NOT NULL,
		start_date      INTEGER NOT NULL,
		duration_weeks  INTEGER NOT NULL DEFAULT 0,
		is_active       INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS workout_sessions (
		id           TEXT PRIMARY KEY,
		plan_id      TEXT NOT NULL REFERENCES workout_plans(id),
		weekday      INTEGER NOT NULL,
		date         INTEGER NOT NULL,
		title        TEXT NOT NULL,
		duration_ms  INTEGER NOT NULL,
		completed    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS session_exercises (
		id           TEXT PRIMARY KEY,
		session_id   TEXT NOT NULL REFERENCES workout_sessions(id) ON DELETE CASCADE,
		exercise_id  TEXT NOT NULL REFERENCES exercises(id),
		name         TEXT NOT NULL,
		position     INTEGER NOT NULL,
		superset_id  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS completed_sets (
		session_exercise_id  TEXT NOT NULL REFERENCES session_exercises(id) ON DELETE CASCADE,
		position             INTEGER NOT NULL,
		reps                 INTEGER NOT NULL,
		weight               REAL NOT NULL,
		is_completed         INTEGER NOT NULL,
		PRIMARY KEY (session_exercise_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS session_exercises_exercise ON session_exercises (exercise_id)`,
}

// Open opens (or creates) the SQLite database at path and ensures the schema.
func Open(path string, log *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// A single connection keeps writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Store{db: db, log: log}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
