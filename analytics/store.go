// Package analytics records file access patterns so the UI can surface
// recent and frequently used files.
package analytics

import (
	"database/sql"
	"errors"
	"time"
)

// maxTrailAccesses bounds the per-file access trail kept for stats.
const maxTrailAccesses = 10

// UsageEntry pairs a path with its aggregate counters.
type UsageEntry struct {
	Path        string
	Accesses    int
	FirstAccess time.Time
	LastAccess  time.Time
}

// UsageStats expands a single file's counters into derived metrics.
type UsageStats struct {
	Accesses      int
	FirstAccess   time.Time
	LastAccess    time.Time
	DaysSinceLast float64
	PerDay        float64
}

// Store persists usage data in SQLite. It shares the database handle with
// the health ledger; each package owns its own tables.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore initializes the usage tables on db.
func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("database handle required")
	}
	schema := `
	CREATE TABLE IF NOT EXISTS file_usage (
		path TEXT PRIMARY KEY,
		accesses INTEGER NOT NULL DEFAULT 0,
		first_access INTEGER NOT NULL,
		last_access INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS file_access_trail (
		path TEXT NOT NULL,
		accessed_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trail_path ON file_access_trail(path);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// RecordAccess notes one access to path.
func (s *Store) RecordAccess(path string) error {
	if path == "" {
		return errors.New("path required")
	}
	now := s.now().Unix()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
	INSERT INTO file_usage (path, accesses, first_access, last_access)
	VALUES (?, 1, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		accesses = accesses + 1,
		last_access = excluded.last_access`,
		path, now, now)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO file_access_trail (path, accessed_at) VALUES (?, ?)`, path, now); err != nil {
		return err
	}
	// Keep only the trailing accesses per file.
	_, err = tx.Exec(`
	DELETE FROM file_access_trail
	WHERE path = ? AND rowid NOT IN (
		SELECT rowid FROM file_access_trail
		WHERE path = ?
		ORDER BY accessed_at DESC, rowid DESC
		LIMIT ?
	)`, path, path, maxTrailAccesses)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// MostAccessed returns up to n entries ordered by access count.
func (s *Store) MostAccessed(n int) ([]UsageEntry, error) {
	return s.query(`
	SELECT path, accesses, first_access, last_access FROM file_usage
	ORDER BY accesses DESC, last_access DESC LIMIT ?`, n)
}

// RecentlyAccessed returns up to n entries ordered by last access.
func (s *Store) RecentlyAccessed(n int) ([]UsageEntry, error) {
	return s.query(`
	SELECT path, accesses, first_access, last_access FROM file_usage
	ORDER BY last_access DESC LIMIT ?`, n)
}

// Stats derives metrics for one path. A path that was never recorded
// returns (nil, nil).
func (s *Store) Stats(path string) (*UsageStats, error) {
	row := s.db.QueryRow(`
	SELECT accesses, first_access, last_access FROM file_usage WHERE path = ?`, path)
	var accesses int
	var first, last int64
	if err := row.Scan(&accesses, &first, &last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	now := s.now()
	firstAt := time.Unix(first, 0)
	lastAt := time.Unix(last, 0)
	daysSinceFirst := now.Sub(firstAt).Hours() / 24
	if daysSinceFirst < 1 {
		daysSinceFirst = 1
	}
	return &UsageStats{
		Accesses:      accesses,
		FirstAccess:   firstAt,
		LastAccess:    lastAt,
		DaysSinceLast: now.Sub(lastAt).Hours() / 24,
		PerDay:        float64(accesses) / daysSinceFirst,
	}, nil
}

// Trail returns the retained access times for path, newest first.
func (s *Store) Trail(path string) ([]time.Time, error) {
	rows, err := s.db.Query(`
	SELECT accessed_at FROM file_access_trail
	WHERE path = ? ORDER BY accessed_at DESC, rowid DESC`, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []time.Time
	for rows.Next() {
		var at int64
		if err := rows.Scan(&at); err != nil {
			return nil, err
		}
		out = append(out, time.Unix(at, 0))
	}
	return out, rows.Err()
}

// Forget drops all usage records for path.
func (s *Store) Forget(path string) error {
	if _, err := s.db.Exec(`DELETE FROM file_usage WHERE path = ?`, path); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM file_access_trail WHERE path = ?`, path)
	return err
}

func (s *Store) query(q string, n int) ([]UsageEntry, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := s.db.Query(q, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []UsageEntry
	for rows.Next() {
		var e UsageEntry
		var first, last int64
		if err := rows.Scan(&e.Path, &e.Accesses, &first, &last); err != nil {
			return nil, err
		}
		e.FirstAccess = time.Unix(first, 0)
		e.LastAccess = time.Unix(last, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}
