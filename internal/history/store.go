// Package history persists pipeline runs and extracted ligands in SQLite.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run statuses recorded in the store.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

// Run represents a single pipeline run record
type Run struct {
	ID         string
	Target     string
	Status     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Error      string
}

// Ligand represents one extracted ligand identifier
type Ligand struct {
	RunID      string
	PDBFile    string
	Identifier string
	Position   int
}

// Store manages the SQLite database for run history
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new Store instance and initializes the database
func NewStore(dbPath string) (*Store, error) {
	// Ensure parent directory exists for file-based databases
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout must come first so subsequent operations wait on locks
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// RecordRun inserts a new run with status "running".
func (s *Store) RecordRun(id, target string, startedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, target, status, started_at) VALUES (?, ?, ?, ?)`,
		id, target, StatusRunning, startedAt,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// FinishRun marks a run as finished with the given status and error message.
func (s *Store) FinishRun(id, status, errMsg string) error {
	res, err := s.db.Exec(
		`UPDATE runs SET status = ?, finished_at = ?, error = ? WHERE id = ?`,
		status, time.Now(), errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run: no run with id %s", id)
	}
	return nil
}

// RecordLigands stores the identifiers extracted from one PDB file,
// preserving their file order via the position column.
func (s *Store) RecordLigands(runID, pdbFile string, identifiers []string) error {
	if len(identifiers) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("record ligands: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO ligands (run_id, pdb_file, identifier, position) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("record ligands: %w", err)
	}
	defer stmt.Close()

	for i, identifier := range identifiers {
		if _, err := stmt.Exec(runID, pdbFile, identifier, i); err != nil {
			return fmt.Errorf("record ligand %s: %w", identifier, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record ligands: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, most recently started first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, target, status, started_at, finished_at, error
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.Target, &r.Status, &r.StartedAt, &finished, &r.Error); err != nil {
			return nil, fmt.Errorf("recent runs: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	return runs, nil
}

// LigandsForRun returns the ligands recorded for a run, in insertion order.
func (s *Store) LigandsForRun(runID string) ([]Ligand, error) {
	rows, err := s.db.Query(
		`SELECT run_id, pdb_file, identifier, position
		 FROM ligands WHERE run_id = ? ORDER BY pdb_file, position`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("ligands for run: %w", err)
	}
	defer rows.Close()

	var ligands []Ligand
	for rows.Next() {
		var l Ligand
		if err := rows.Scan(&l.RunID, &l.PDBFile, &l.Identifier, &l.Position); err != nil {
			return nil, fmt.Errorf("ligands for run: %w", err)
		}
		ligands = append(ligands, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ligands for run: %w", err)
	}
	return ligands, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
