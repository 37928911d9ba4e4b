// Package tagging keeps user-assigned labels for files. The mapping from
// path to tags lives in a single JSON file that is rewritten after every
// mutation; paths are recorded as they were at tagging time and are not
// tracked across external moves.
package tagging

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// CorruptStoreError reports that the persisted tag file could not be decoded.
// Callers are expected to fail fast and offer Reset rather than guessing at
// partial contents.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("tag store %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

// Store is a path → tag-set mapping persisted to a JSON file. It assumes a
// single process; the mutex only serializes the UI and watcher goroutines.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string][]string
}

// Open loads the store at path, creating an empty one if the file does not
// exist. A file that exists but fails to decode yields *CorruptStoreError.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("tag store path required")
	}
	s := &Store{path: path, data: map[string][]string{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, &CorruptStoreError{Path: path, Err: err}
	}
	return s, nil
}

// Reset moves a broken store file aside and reinitializes an empty store.
func Reset(path string) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".corrupt"); err != nil {
			return nil, fmt.Errorf("back up corrupt store: %w", err)
		}
	}
	s := &Store{path: path, data: map[string][]string{}}
	return s, s.save()
}

// Add attaches tag to path. It reports whether the mapping changed.
func (s *Store) Add(path, tag string) (bool, error) {
	if tag == "" {
		return false, errors.New("tag required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := s.data[path]
	for _, existing := range tags {
		if existing == tag {
			return false, nil
		}
	}
	s.data[path] = append(tags, tag)
	sort.Strings(s.data[path])
	return true, s.save()
}

// Remove detaches tag from path. It reports whether the tag was present.
func (s *Store) Remove(path, tag string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := s.data[path]
	for i, existing := range tags {
		if existing == tag {
			tags = append(tags[:i], tags[i+1:]...)
			if len(tags) == 0 {
				delete(s.data, path)
			} else {
				s.data[path] = tags
			}
			return true, s.save()
		}
	}
	return false, nil
}

// Tags returns the sorted tags attached to path.
func (s *Store) Tags(path string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tags := s.data[path]
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// FindByTag returns every path carrying tag, sorted.
func (s *Store) FindByTag(tag string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var paths []string
	for path, tags := range s.data {
		for _, existing := range tags {
			if existing == tag {
				paths = append(paths, path)
				break
			}
		}
	}
	sort.Strings(paths)
	return paths
}

// All returns every distinct tag in use, sorted.
func (s *Store) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, tags := range s.data {
		for _, tag := range tags {
			seen[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Rename carries tags from old to new. Fileexpo calls this on its own rename
// operations; external moves are not tracked.
func (s *Store) Rename(old, new string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags, ok := s.data[old]
	if !ok {
		return nil
	}
	delete(s.data, old)
	s.data[new] = tags
	return s.save()
}

// Forget drops all tags for path, e.g. after a delete.
func (s *Store) Forget(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[path]; !ok {
		return nil
	}
	delete(s.data, path)
	return s.save()
}

// Prune removes entries whose paths no longer exist on disk and returns how
// many were dropped.
func (s *Store) Prune() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for path := range s.data {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			delete(s.data, path)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save()
}

// Len returns the number of tagged paths.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
