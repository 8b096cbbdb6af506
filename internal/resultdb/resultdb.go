// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resultdb keeps the history of mullerbench runs in SQLite so
// strategies can be compared across sessions and machines.
package resultdb

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ajroetker/go-muller/internal/benchlog"
)

// DB is an open results database.
type DB struct {
	db *sql.DB
}

// Summary aggregates the stored runs of one strategy.
type Summary struct {
	Strategy   string
	Runs       int
	Failures   int
	BestGFLOPS float64
	AvgGFLOPS  float64
	LastRun    time.Time
}

// Open opens the SQLite database at path, enables WAL mode and creates the
// schema idempotently.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := configurePragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

func configurePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to execute %s: %w", p, err)
		}
	}
	return nil
}

func createTables(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			session     TEXT NOT NULL,
			strategy    TEXT NOT NULL,
			m           INTEGER NOT NULL,
			n           INTEGER NOT NULL,
			k           INTEGER NOT NULL,
			reps        INTEGER NOT NULL,
			ns_per_op   REAL NOT NULL DEFAULT 0,
			gflops      REAL NOT NULL DEFAULT 0,
			status      TEXT NOT NULL,
			max_abs_err REAL NOT NULL DEFAULT 0,
			max_ulp     INTEGER NOT NULL DEFAULT 0,
			platform    TEXT NOT NULL,
			error       TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_strategy ON runs(strategy, created_at)`,
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, stmt := range ddl {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return tx.Commit()
}

// Insert stores r and returns its row id.
func (d *DB) Insert(r benchlog.Result) (int64, error) {
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	// max_ulp can reach MaxUint64, which SQLite INTEGER cannot hold.
	ulp := int64(min(r.MaxULP, uint64(1)<<63-1))
	res, err := d.db.Exec(`INSERT INTO runs
		(session, strategy, m, n, k, reps, ns_per_op, gflops, status, max_abs_err, max_ulp, platform, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Session, r.Strategy, r.M, r.N, r.K, r.Reps, r.NsPerOp, r.GFLOPS, r.Status,
		r.MaxAbsErr, ulp, r.Platform, r.Error, ts.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit runs, newest first. An empty strategy matches
// all strategies.
func (d *DB) Recent(strategy string, limit int) ([]benchlog.Result, error) {
	rows, err := d.db.Query(`SELECT session, strategy, m, n, k, reps, ns_per_op, gflops, status,
		max_abs_err, max_ulp, platform, error, created_at
		FROM runs WHERE (? = '' OR strategy = ?)
		ORDER BY created_at DESC, id DESC LIMIT ?`, strategy, strategy, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []benchlog.Result
	for rows.Next() {
		var r benchlog.Result
		var ulp int64
		if err := rows.Scan(&r.Session, &r.Strategy, &r.M, &r.N, &r.K, &r.Reps, &r.NsPerOp, &r.GFLOPS,
			&r.Status, &r.MaxAbsErr, &ulp, &r.Platform, &r.Error, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.MaxULP = uint64(ulp)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summaries aggregates all stored runs per strategy, ordered by name.
func (d *DB) Summaries() ([]Summary, error) {
	rows, err := d.db.Query(`SELECT strategy, COUNT(*),
		SUM(CASE WHEN status = ? THEN 0 ELSE 1 END),
		MAX(gflops), AVG(gflops), MAX(created_at)
		FROM runs GROUP BY strategy ORDER BY strategy`, benchlog.StatusPass)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var last string
		if err := rows.Scan(&s.Strategy, &s.Runs, &s.Failures, &s.BestGFLOPS, &s.AvgGFLOPS, &last); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		s.LastRun, err = parseTime(last)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// parseTime reads the text go-sqlite3 stores for DATETIME values; aggregates
// such as MAX lose the column type and come back as plain strings.
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		time.RFC3339Nano,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
