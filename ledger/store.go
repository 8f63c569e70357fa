package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	seed        INTEGER NOT NULL,
	layout_hash TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	waves       INTEGER NOT NULL,
	banished    INTEGER NOT NULL,
	struck      INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	finished_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_finished_at ON runs (finished_at DESC);
`

// Run is one finished game in the ledger
type Run struct {
	ID         string
	Seed       int64
	LayoutHash string
	Outcome    string // "victory", "defeat" or "abandoned"
	Waves      int
	Banished   int
	Struck     int
	Duration   time.Duration
	FinishedAt time.Time
}

// Store keeps run history in a local SQLite file. The game treats every
// operation as best-effort: callers log failures and move on.
type Store struct {
	db *sql.DB
}

// Open creates or opens the ledger database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts a finished run
func (s *Store) Record(run Run) error {
	_, err := s.db.Exec(`INSERT INTO runs
		(id, seed, layout_hash, outcome, waves, banished, struck, duration_ms, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Seed, run.LayoutHash, run.Outcome,
		run.Waves, run.Banished, run.Struck,
		run.Duration.Milliseconds(),
		run.FinishedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("ledger: record: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, seed, layout_hash, outcome, waves, banished, struck, duration_ms, finished_at
		FROM runs ORDER BY finished_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: query: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs int64
		var finished string
		if err := rows.Scan(&r.ID, &r.Seed, &r.LayoutHash, &r.Outcome,
			&r.Waves, &r.Banished, &r.Struck, &durationMs, &finished); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, finished); err == nil {
			r.FinishedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}
