// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists batch run history in a SQLite ledger. Each run
// stores its summary counters plus one row per item outcome, so failures
// stay inspectable after the process exits.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/textmill/pkg/types"
)

const dbFile = "textmill.db"

// Store manages the run ledger SQLite database.
type Store struct {
	db        *sql.DB
	reportDir string
	maxRuns   int
}

// NewStore opens or creates the ledger database at reportDir/textmill.db,
// creating the schema if it does not exist.
func NewStore(cfg types.ReportConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	dbPath := filepath.Join(cfg.ReportDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxRuns := cfg.MaxRuns
	if maxRuns <= 0 {
		maxRuns = 20
	}

	s := &Store{db: db, reportDir: cfg.ReportDir, maxRuns: maxRuns}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			total INTEGER NOT NULL,
			success INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			input_root TEXT NOT NULL,
			output_root TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outcomes (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			source_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_status ON outcomes(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunRecord is one persisted run with its summary counters.
type RunRecord struct {
	ID         int64            `json:"id" yaml:"id"`
	StartedAt  time.Time        `json:"started_at" yaml:"started_at"`
	InputRoot  string           `json:"input_root" yaml:"input_root"`
	OutputRoot string           `json:"output_root" yaml:"output_root"`
	Summary    types.RunSummary `json:"summary" yaml:"summary"`
}

// OutcomeRecord is one persisted item outcome.
type OutcomeRecord struct {
	RunID      int64  `json:"run_id" yaml:"run_id"`
	SourcePath string `json:"source_path" yaml:"source_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`
	Status     string `json:"status" yaml:"status"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RecordRun inserts a completed run and its outcomes in one transaction and
// returns the new run ID.
func (s *Store) RecordRun(ctx context.Context, startedAt time.Time, inputRoot, outputRoot string, summary types.RunSummary, outcomes []types.Outcome) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, elapsed_ms, total, success, skipped, failed, input_root, output_root)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339), summary.Elapsed.Milliseconds(),
		summary.Total, summary.Success, summary.Skipped, summary.Failed,
		inputRoot, outputRoot)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outcomes (run_id, source_path, output_path, status, error) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing outcome insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range outcomes {
		errMsg := ""
		if o.Err != nil {
			errMsg = o.Err.Error()
		}
		if _, err := stmt.ExecContext(ctx, runID, o.Item.SourcePath, o.Item.OutputPath, string(o.Status), errMsg); err != nil {
			return 0, fmt.Errorf("inserting outcome for %s: %w", o.Item.SourcePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first. A limit of zero or less
// selects the store's configured maximum.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = s.maxRuns
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, elapsed_ms, total, success, skipped, failed, input_root, output_root
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var startedAt string
		var elapsedMs int64
		if err := rows.Scan(&r.ID, &startedAt, &elapsedMs,
			&r.Summary.Total, &r.Summary.Success, &r.Summary.Skipped, &r.Summary.Failed,
			&r.InputRoot, &r.OutputRoot); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp %q: %w", startedAt, err)
		}
		r.Summary.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		records = append(records, r)
	}
	return records, rows.Err()
}

// Outcomes returns the persisted outcomes of one run in insertion order.
func (s *Store) Outcomes(ctx context.Context, runID int64) ([]OutcomeRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source_path, output_path, status, error FROM outcomes WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var records []OutcomeRecord
	for rows.Next() {
		var o OutcomeRecord
		if err := rows.Scan(&o.RunID, &o.SourcePath, &o.OutputPath, &o.Status, &o.Error); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		records = append(records, o)
	}
	return records, rows.Err()
}

// Collector accumulates outcomes during a run so they can be recorded in
// the ledger afterwards. It satisfies the batch Observer interface.
type Collector struct {
	Outcomes []types.Outcome
}

func (c *Collector) OutcomeRecorded(o types.Outcome) {
	c.Outcomes = append(c.Outcomes, o)
}
