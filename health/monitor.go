// Package health checks file integrity against a content-hash ledger and
// scans for common file problems.
package health

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Report describes the outcome of one integrity check.
type Report struct {
	Exists       bool
	FirstCheck   bool
	Changed      bool
	LastVerified time.Time
}

// VerifyResult buckets every ledgered file under a directory.
type VerifyResult struct {
	Changed []string
	Missing []string
	OK      []string
}

// Monitor keeps the hash ledger in SQLite, sharing the database with the
// analytics store.
type Monitor struct {
	db  *sql.DB
	now func() time.Time
}

// NewMonitor initializes the ledger table on db.
func NewMonitor(db *sql.DB) (*Monitor, error) {
	if db == nil {
		return nil, errors.New("database handle required")
	}
	schema := `
	CREATE TABLE IF NOT EXISTS file_hashes (
		path TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		verified_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Monitor{db: db, now: time.Now}, nil
}

// Check hashes path and compares it against the ledger. The first sighting
// records the hash; a mismatch reports Changed and updates the ledger so the
// next check sees the new content as the baseline.
func (m *Monitor) Check(path string) (Report, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Report{Exists: false}, nil
		}
		return Report{}, err
	}
	current, err := hashFile(path)
	if err != nil {
		return Report{}, err
	}

	row := m.db.QueryRow(`SELECT hash, verified_at FROM file_hashes WHERE path = ?`, path)
	var stored string
	var verifiedAt int64
	err = row.Scan(&stored, &verifiedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := m.record(path, current); err != nil {
			return Report{}, err
		}
		return Report{Exists: true, FirstCheck: true, LastVerified: m.now()}, nil
	case err != nil:
		return Report{}, err
	}

	report := Report{
		Exists:       true,
		Changed:      stored != current,
		LastVerified: time.Unix(verifiedAt, 0),
	}
	if err := m.record(path, current); err != nil {
		return Report{}, err
	}
	return report, nil
}

// VerifyAll re-hashes every ledgered file under dir.
func (m *Monitor) VerifyAll(dir string) (VerifyResult, error) {
	prefix := strings.TrimSuffix(dir, string(filepath.Separator)) + string(filepath.Separator)
	rows, err := m.db.Query(`SELECT path, hash FROM file_hashes WHERE path LIKE ? || '%'`, prefix)
	if err != nil {
		return VerifyResult{}, err
	}
	defer rows.Close()

	type ledgered struct{ path, hash string }
	var files []ledgered
	for rows.Next() {
		var f ledgered
		if err := rows.Scan(&f.path, &f.hash); err != nil {
			return VerifyResult{}, err
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return VerifyResult{}, err
	}

	var result VerifyResult
	for _, f := range files {
		if _, err := os.Stat(f.path); errors.Is(err, os.ErrNotExist) {
			result.Missing = append(result.Missing, f.path)
			continue
		}
		current, err := hashFile(f.path)
		if err != nil {
			result.Missing = append(result.Missing, f.path)
			continue
		}
		if current != f.hash {
			result.Changed = append(result.Changed, f.path)
		} else {
			result.OK = append(result.OK, f.path)
		}
	}
	return result, nil
}

// textExtensions are formats where invalid UTF-8 counts as a problem.
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".py": true, ".js": true, ".go": true,
	".html": true, ".css": true, ".json": true, ".xml": true, ".yaml": true,
	".yml": true, ".csv": true, ".log": true,
}

// Problems scans for common defects: missing, empty, unreadable,
// unwritable, and invalid UTF-8 in text formats.
func Problems(path string) []string {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{"file does not exist"}
		}
		return []string{"cannot stat file"}
	}

	var problems []string
	if info.Size() == 0 {
		problems = append(problems, "file is empty")
	}
	mode := info.Mode().Perm()
	if mode&0o400 == 0 {
		problems = append(problems, "file is not readable")
	}
	if mode&0o200 == 0 {
		problems = append(problems, "file is not writable")
	}
	if textExtensions[strings.ToLower(filepath.Ext(path))] {
		if sample, err := readSample(path, 4096); err == nil && !utf8.Valid(trimPartialRune(sample)) {
			problems = append(problems, "file has encoding issues (not UTF-8)")
		}
	}
	return problems
}

func (m *Monitor) record(path, hash string) error {
	_, err := m.db.Exec(`
	INSERT INTO file_hashes (path, hash, verified_at) VALUES (?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, verified_at = excluded.verified_at`,
		path, hash, m.now().Unix())
	return err
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// trimPartialRune drops a multi-byte rune cut off by the sample boundary.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < 3 && len(b) > 0; i++ {
		r, size := utf8.DecodeLastRune(b)
		if r != utf8.RuneError || size != 1 {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}

func readSample(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}
