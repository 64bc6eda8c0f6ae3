// Package journal records every mutating requirements operation in a local
// SQLite database. It is an independent subsystem: the markdown files stay
// the sole requirements database, and when the journal fails to initialize
// the server logs a warning and keeps working without it. Entries are keyed
// by project root so one journal serves every project the server touches.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Entry is one recorded operation.
type Entry struct {
	ID          int64  `json:"id"`
	Tool        string `json:"tool"`
	Operation   string `json:"operation"`
	Index       string `json:"index,omitempty"`
	Category    string `json:"category,omitempty"`
	ProjectRoot string `json:"project_root"`
	CreatedAt   string `json:"created_at"`
}

// Config holds journal configuration.
type Config struct {
	DataDir string
}

// DefaultConfig places the journal under the user's home directory.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".reqmd")}
}

// Store is the journal backed by SQLite. A nil *Store is valid: Record and
// Recent become no-ops, so callers never need to branch on availability.
type Store struct {
	db *sql.DB
}

// New creates the data directory if needed, opens SQLite with WAL mode, and
// runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("journal: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "journal.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS operations (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			tool         TEXT NOT NULL,
			operation    TEXT NOT NULL,
			req_index    TEXT NOT NULL DEFAULT '',
			category     TEXT NOT NULL DEFAULT '',
			project_root TEXT NOT NULL,
			created_at   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_operations_project
			ON operations(project_root, id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one entry. Safe to call on a nil Store.
func (s *Store) Record(tool, operation, index, category, projectRoot string) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO operations (tool, operation, req_index, category, project_root, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tool, operation, index, category, projectRoot,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("journal: record: %w", err)
	}
	return nil
}

// Recent returns the newest entries for a project root, newest first.
// Safe to call on a nil Store (returns an empty slice).
func (s *Store) Recent(projectRoot string, limit int) ([]Entry, error) {
	entries := []Entry{}
	if s == nil || s.db == nil {
		return entries, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, tool, operation, req_index, category, project_root, created_at
		 FROM operations WHERE project_root = ?
		 ORDER BY id DESC LIMIT ?`,
		projectRoot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("journal: query recent: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Tool, &e.Operation, &e.Index, &e.Category, &e.ProjectRoot, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("journal: scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterate entries: %w", err)
	}
	return entries, nil
}
