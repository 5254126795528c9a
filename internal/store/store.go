// internal/store/store.go
// Package store wraps the lab's SQLite design database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store is a handle on one design database.
type Store struct {
	DB *sql.DB
}

// Open opens an existing design database. A missing file is a fatal input
// error, not a reason to create an empty database: the sqlite driver would
// happily materialize one, and a run against it must abort before any output
// is written.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("design database: %w", err)
	}
	return open(path)
}

// Create makes a new database with the full schema. Used by tests and for
// bootstrapping a fresh lab database.
func Create(path string) (*Store, error) {
	s, err := open(path)
	if err != nil {
		return nil, err
	}
	if _, err := s.DB.Exec(baseSchema); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("design database: schema: %w", err)
	}
	if err := s.EnsureWritableTables(context.Background()); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("design database: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("design database: %s: %w", pragma, err)
		}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("design database: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error { return s.DB.Close() }

// baseSchema covers the tables the upstream design tools create.
const baseSchema = `
CREATE TABLE IF NOT EXISTS experiments (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	date TEXT,
	variant TEXT,
	chromosome TEXT,
	genomic_location TEXT,
	edit TEXT,
	gene_orientation TEXT,
	edit_position TEXT,
	pam TEXT,
	pam_strand TEXT
);
CREATE TABLE IF NOT EXISTS experiment_entries (
	id TEXT PRIMARY KEY,
	experiment_id TEXT NOT NULL,
	name TEXT,
	pbs INTEGER NOT NULL,
	rtt INTEGER NOT NULL,
	score TEXT,
	FOREIGN KEY (experiment_id) REFERENCES experiments(id)
);
`

// EnsureWritableTables creates the tables this toolkit writes to when they do
// not exist yet, plus the default "None" drug.
func (s *Store) EnsureWritableTables(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS protospacers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	experiment_id TEXT NOT NULL UNIQUE,
	sense TEXT NOT NULL,
	antisense TEXT NOT NULL,
	FOREIGN KEY (experiment_id) REFERENCES experiments(id)
);
CREATE TABLE IF NOT EXISTS extensions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	experiment_entry_id TEXT NOT NULL,
	sense TEXT NOT NULL,
	antisense TEXT NOT NULL,
	FOREIGN KEY (experiment_entry_id) REFERENCES experiment_entries(id)
);
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	run_name TEXT NOT NULL,
	experiment_id TEXT NOT NULL,
	FOREIGN KEY (experiment_id) REFERENCES experiments(id)
);
CREATE TABLE IF NOT EXISTS drugs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT
);
CREATE TABLE IF NOT EXISTS data_points (
	id TEXT PRIMARY KEY,
	experiment_entry_id TEXT NOT NULL,
	correct_edits REAL NOT NULL,
	incorrect_edits REAL NOT NULL,
	scaffold_incorporated REAL NOT NULL,
	prime_editor TEXT NOT NULL,
	replicate INTEGER NOT NULL,
	run_id TEXT NOT NULL,
	drug_id TEXT DEFAULT '` + NoneDrugID + `',
	FOREIGN KEY (experiment_entry_id) REFERENCES experiment_entries(id),
	FOREIGN KEY (run_id) REFERENCES runs(id),
	FOREIGN KEY (drug_id) REFERENCES drugs(id)
);
`
	if _, err := s.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("design database: schema: %w", err)
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT OR IGNORE INTO drugs (id, name, description) VALUES (?, 'None', 'No drug used')`,
		NoneDrugID)
	if err != nil {
		return fmt.Errorf("design database: default drug: %w", err)
	}
	return nil
}
