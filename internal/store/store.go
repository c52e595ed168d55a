package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/pipeline"
	"github.com/nguyentantai21042004/dialogue-flow/internal/speaker"
)

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		videoId TEXT NOT NULL,
		title TEXT NOT NULL,
		artifacts TEXT NOT NULL,
		warnings TEXT NOT NULL,
		createdAt REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turns (
		runId TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		sequenceNumber INTEGER NOT NULL,
		speaker TEXT NOT NULL,
		startMs INTEGER NOT NULL,
		endMs INTEGER NOT NULL,
		cueStart INTEGER NOT NULL,
		cueEnd INTEGER NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (runId, sequenceNumber)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_video ON runs(videoId, createdAt);
`

// Run is one archived pipeline run.
type Run struct {
	ID        string
	VideoID   string
	Title     string
	Artifacts map[string]string
	Warnings  []string
	CreatedAt time.Time
}

// Store archives runs and their final transcripts in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps writers serialized and ":memory:" shared.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the manifest and the final transcript of res, replacing
// any run archived under the same id.
func (s *Store) SaveRun(ctx context.Context, res pipeline.Result, createdAt time.Time) error {
	artifacts, err := json.Marshal(res.Manifest.Artifacts)
	if err != nil {
		return fmt.Errorf("encode artifacts: %w", err)
	}
	warnings, err := json.Marshal(res.Manifest.Warnings)
	if err != nil {
		return fmt.Errorf("encode warnings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	m := res.Manifest
	// Run ids derive from the input; reprocessing replaces the earlier run.
	if _, err := tx.ExecContext(ctx, `DELETE FROM turns WHERE runId = ?`, m.RunID); err != nil {
		return fmt.Errorf("delete previous turns: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, m.RunID); err != nil {
		return fmt.Errorf("delete previous run: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, videoId, title, artifacts, warnings, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.RunID, m.VideoID, m.Title, string(artifacts), string(warnings), unixFromTime(createdAt)); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, tr := range res.Final().Turns {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO turns (runId, sequenceNumber, speaker, startMs, endMs, cueStart, cueEnd, text)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, m.RunID, i, string(tr.Speaker), tr.StartMS, tr.EndMS, tr.CueStart, tr.CueEnd, tr.Text); err != nil {
			return fmt.Errorf("insert turn %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first. An empty videoID
// matches every video.
func (s *Store) RecentRuns(ctx context.Context, videoID string, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, videoId, title, artifacts, warnings, createdAt
		FROM runs
		WHERE ? = '' OR videoId = ?
		ORDER BY createdAt DESC
		LIMIT ?
	`, videoID, videoID, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var artifacts, warnings string
		var createdAt float64
		if err := rows.Scan(&r.ID, &r.VideoID, &r.Title, &artifacts, &warnings, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(artifacts), &r.Artifacts); err != nil {
			return nil, fmt.Errorf("decode artifacts: %w", err)
		}
		if err := json.Unmarshal([]byte(warnings), &r.Warnings); err != nil {
			return nil, fmt.Errorf("decode warnings: %w", err)
		}
		r.CreatedAt = timeFromUnix(createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Turns returns the archived transcript of a run in order.
func (s *Store) Turns(ctx context.Context, runID string) (dialogue.Transcript, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT speaker, startMs, endMs, cueStart, cueEnd, text
		FROM turns
		WHERE runId = ?
		ORDER BY sequenceNumber ASC
	`, runID)
	if err != nil {
		return dialogue.Transcript{}, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var t dialogue.Transcript
	for rows.Next() {
		var tr dialogue.Turn
		var sp string
		if err := rows.Scan(&sp, &tr.StartMS, &tr.EndMS, &tr.CueStart, &tr.CueEnd, &tr.Text); err != nil {
			return dialogue.Transcript{}, fmt.Errorf("scan turn: %w", err)
		}
		tr.Speaker = speaker.Label(sp)
		t.Turns = append(t.Turns, tr)
	}
	return t, rows.Err()
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
