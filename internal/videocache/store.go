package videocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"mediascribe/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS video_records (
    video_id    TEXT PRIMARY KEY,
    record_json TEXT NOT NULL,
    cached_at   TEXT NOT NULL
);
`

// Entry pairs a cached record with its key and timestamp, for listing.
type Entry struct {
	VideoID  string
	Record   media.Record
	CachedAt time.Time
}

// Store manages the durable video record cache backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database inside cacheDir.
func Open(cacheDir string) (*Store, error) {
	if strings.TrimSpace(cacheDir) == "" {
		return nil, errors.New("videocache: cache directory required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("videocache: ensure cache dir: %w", err)
	}

	dbPath := filepath.Join(cacheDir, "videos.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("videocache: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("videocache: apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("videocache: apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Lookup fetches the cached record for a video ID.
func (s *Store) Lookup(ctx context.Context, videoID string) (media.Record, bool, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return media.Record{}, false, nil
	}

	var recordJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT record_json FROM video_records WHERE video_id = ?`, videoID,
	).Scan(&recordJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return media.Record{}, false, nil
	}
	if err != nil {
		return media.Record{}, false, fmt.Errorf("videocache: lookup: %w", err)
	}

	var record media.Record
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return media.Record{}, false, fmt.Errorf("videocache: decode record: %w", err)
	}
	return record, true, nil
}

// Save upserts a record under a video ID. Last write wins.
func (s *Store) Save(ctx context.Context, videoID string, record media.Record) error {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return errors.New("videocache: video id required")
	}
	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("videocache: encode record: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO video_records (video_id, record_json, cached_at)
         VALUES (?, ?, ?)
         ON CONFLICT(video_id) DO UPDATE SET
             record_json = excluded.record_json,
             cached_at = excluded.cached_at`,
		videoID,
		string(encoded),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("videocache: save: %w", err)
	}
	return nil
}

// List returns all cached entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT video_id, record_json, cached_at FROM video_records ORDER BY cached_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("videocache: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			recordJSON string
			cachedAt   string
		)
		if err := rows.Scan(&entry.VideoID, &recordJSON, &cachedAt); err != nil {
			return nil, fmt.Errorf("videocache: scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(recordJSON), &entry.Record); err != nil {
			return nil, fmt.Errorf("videocache: decode record %s: %w", entry.VideoID, err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, cachedAt); parseErr == nil {
			entry.CachedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("videocache: iterate rows: %w", err)
	}
	return entries, nil
}

// Clear removes every cached record.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM video_records`)
	if err != nil {
		return 0, fmt.Errorf("videocache: clear: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("videocache: rows affected: %w", err)
	}
	return removed, nil
}
