// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive records sync runs in a local SQLite database. The data
// file only ever reflects the latest run; the archive keeps publications
// that later disappear from the profile, plus per-run statistics.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// Store manages the sync history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the archive database at path, creating the
// parent directory and schema as needed.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
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
			fetched_at TEXT NOT NULL,
			total INTEGER NOT NULL,
			added INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS publications (
			title_key TEXT NOT NULL,
			year INTEGER NOT NULL,
			title TEXT NOT NULL,
			authors TEXT,
			venue TEXT,
			scholar_url TEXT,
			first_seen_run INTEGER NOT NULL REFERENCES runs(id),
			last_seen_run INTEGER NOT NULL REFERENCES runs(id),
			PRIMARY KEY (title_key, year)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunSummary holds counts from one archived run.
type RunSummary struct {
	RunID int64
	Total int
	Added int
}

// RunInfo describes one archived run for history listings.
type RunInfo struct {
	ID        int64
	Source    string
	FetchedAt time.Time
	Total     int
	Added     int
}

// RecordRun stores one sync run: a row in runs plus an upsert of every
// publication, all in a single transaction. Added counts publications not
// seen by any earlier run.
func (s *Store) RecordRun(ctx context.Context, source string, publications []types.Publication) (RunSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source, fetched_at, total, added) VALUES (?, ?, ?, 0)`,
		source, time.Now().UTC().Format(time.RFC3339), len(publications),
	)
	if err != nil {
		return RunSummary{}, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return RunSummary{}, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (title_key, year, title, authors, venue, scholar_url, first_seen_run, last_seen_run)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(title_key, year) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, venue=excluded.venue,
			scholar_url=excluded.scholar_url, last_seen_run=excluded.last_seen_run`)
	if err != nil {
		return RunSummary{}, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, pub := range publications {
		key := pub.Key()

		var existing int
		err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM publications WHERE title_key = ? AND year = ?`,
			key.Title, key.Year,
		).Scan(&existing)
		if err != nil {
			return RunSummary{}, fmt.Errorf("checking publication %q: %w", pub.Title, err)
		}
		if existing == 0 {
			added++
		}

		if _, err := stmt.ExecContext(ctx,
			key.Title, key.Year, pub.Title, pub.Authors, pub.Venue, pub.ScholarURL,
			runID, runID,
		); err != nil {
			return RunSummary{}, fmt.Errorf("upserting publication %q: %w", pub.Title, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE runs SET added = ? WHERE id = ?`, added, runID); err != nil {
		return RunSummary{}, fmt.Errorf("updating run summary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return RunSummary{}, fmt.Errorf("committing run: %w", err)
	}
	return RunSummary{RunID: runID, Total: len(publications), Added: added}, nil
}

// History returns the most recent runs, newest first. limit <= 0 means all.
func (s *Store) History(ctx context.Context, limit int) ([]RunInfo, error) {
	query := `SELECT id, source, fetched_at, total, added FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		var fetchedAt string
		if err := rows.Scan(&info.ID, &info.Source, &fetchedAt, &info.Total, &info.Added); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, fetchedAt); parseErr == nil {
			info.FetchedAt = t
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// Publications returns every archived publication, year descending then
// title, including entries no longer present on the profile.
func (s *Store) Publications(ctx context.Context) ([]types.Publication, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, authors, venue, year, scholar_url FROM publications
		 ORDER BY year DESC, title ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	var pubs []types.Publication
	for rows.Next() {
		var p types.Publication
		if err := rows.Scan(&p.Title, &p.Authors, &p.Venue, &p.Year, &p.ScholarURL); err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}
