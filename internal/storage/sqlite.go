// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only run summaries are stored; world state is never persisted.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// Run is the summary of one finished (or abandoned) run.
type Run struct {
	ID          string
	Variant     string
	Player      string
	Score       int
	BestToken   int
	Moves       int
	Crafts      int
	GoalReached bool
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL DEFAULT 0,
			best_token INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			crafts INTEGER NOT NULL DEFAULT 0,
			goal_reached INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(variant, best_token DESC, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run. An empty ID is replaced by a fresh UUID.
// Returns the ID of the stored record.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, variant, player, score, best_token, moves, crafts, goal_reached)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Variant, run.Player, run.Score, run.BestToken, run.Moves, run.Crafts, run.GoalReached,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

// TopRuns retrieves the best runs for a variant, ordered by best token then score.
func (s *Store) TopRuns(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, variant, player, score, best_token, moves, crafts, goal_reached, created_at
		 FROM runs
		 WHERE variant = ?
		 ORDER BY best_token DESC, score DESC, moves ASC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all variants.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, variant, player, score, best_token, moves, crafts, goal_reached, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Variant, &r.Player, &r.Score, &r.BestToken,
			&r.Moves, &r.Crafts, &r.GoalReached, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestToken returns the largest token ever crafted in a variant.
// Returns 0 if no runs exist.
func (s *Store) BestToken(variant string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(best_token) FROM runs WHERE variant = ?",
		variant,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best token: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return int(best.Int64), nil
}

// ClearRuns deletes all runs for the given variant.
func (s *Store) ClearRuns(variant string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
