package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/i474232898/soaring-forecast/internal/forecast"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	location_id TEXT    NOT NULL,
	fetched_at  TEXT    NOT NULL,
	report      TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_location ON snapshots(location_id, fetched_at);
`

// SQLiteStore persists forecast snapshots so a restart does not force an
// upstream refresh.
type SQLiteStore struct {
	db         *sql.DB
	maxHistory int
}

// NewSQLiteStore opens (creating if needed) the database at path. If
// maxHistory is > 0 older snapshots beyond that count are pruned per
// location on every save.
func NewSQLiteStore(path string, maxHistory int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// database/sql would otherwise hand out separate in-memory databases.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db, maxHistory: maxHistory}, nil
}

// Save inserts the snapshot and prunes history.
func (s *SQLiteStore) Save(snap forecast.Snapshot) (err error) {
	report, err := json.Marshal(snap.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(
		`INSERT INTO snapshots(location_id, fetched_at, report) VALUES(?,?,?)`,
		snap.LocationID, snap.FetchedAt.UTC().Format(time.RFC3339Nano), string(report),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if s.maxHistory > 0 {
		if _, err = tx.Exec(
			`DELETE FROM snapshots WHERE location_id = ? AND id NOT IN (
				SELECT id FROM snapshots WHERE location_id = ? ORDER BY id DESC LIMIT ?
			)`,
			snap.LocationID, snap.LocationID, s.maxHistory,
		); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
	}

	return tx.Commit()
}

// Latest returns the most recently saved snapshot for a location.
func (s *SQLiteStore) Latest(locationID string) (forecast.Snapshot, error) {
	var fetchedAt, report string
	err := s.db.QueryRow(
		`SELECT fetched_at, report FROM snapshots WHERE location_id = ? ORDER BY id DESC LIMIT 1`,
		locationID,
	).Scan(&fetchedAt, &report)
	if errors.Is(err, sql.ErrNoRows) {
		return forecast.Snapshot{}, forecast.ErrNotFound
	}
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("query latest snapshot: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("parse fetched_at: %w", err)
	}

	snap := forecast.Snapshot{LocationID: locationID, FetchedAt: ts}
	if err := json.Unmarshal([]byte(report), &snap.Report); err != nil {
		return forecast.Snapshot{}, fmt.Errorf("decode report: %w", err)
	}
	return snap, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
