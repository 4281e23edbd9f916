// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps exported learning curves in a SQLite database.
// Each export appends a run; a run's samples keep their file order.
// Implements: docs/ARCHITECTURE § Storage.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/learning-curve/pkg/types"
)

// Run describes one exported series.
type Run struct {
	ID          int64     `json:"id" yaml:"id"`
	Source      string    `json:"source" yaml:"source"`
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
	SampleCount int       `json:"sample_count" yaml:"sample_count"`
}

// Store manages the learning-curve SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
			source TEXT NOT NULL,
			extracted_at TEXT NOT NULL,
			sample_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS samples (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			cycle REAL,
			utility REAL,
			PRIMARY KEY (run_id, seq)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun stores series as a new run and returns its ID. The run and its
// samples are written in one transaction.
func (s *Store) SaveRun(ctx context.Context, source string, at time.Time, series types.Series) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source, extracted_at, sample_count) VALUES (?, ?, ?)`,
		source, at.UTC().Format(time.RFC3339Nano), series.Len(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO samples (run_id, seq, cycle, utility) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing sample insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range series {
		if _, err := stmt.ExecContext(ctx, runID, i, nullableFloat(p.Cycle), nullableFloat(p.Utility)); err != nil {
			return 0, fmt.Errorf("inserting sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Series returns the samples of run runID in their original order.
func (s *Store) Series(ctx context.Context, runID int64) (types.Series, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cycle, utility FROM samples WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}
	defer rows.Close()

	var series types.Series
	for rows.Next() {
		var cycle, utility sql.NullFloat64
		if err := rows.Scan(&cycle, &utility); err != nil {
			return nil, fmt.Errorf("scanning sample: %w", err)
		}
		series = append(series, types.Sample{Cycle: floatOrNaN(cycle), Utility: floatOrNaN(utility)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating samples: %w", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	return series, nil
}

// SQLite stores NaN as NULL, so NaN is written as NULL explicitly and NULL
// reads back as NaN. Infinities round-trip as REAL.
func nullableFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// Runs lists stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, extracted_at, sample_count FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r  Run
			ts string
		)
		if err := rows.Scan(&r.ID, &r.Source, &ts, &r.SampleCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.ExtractedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing run %d timestamp: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
