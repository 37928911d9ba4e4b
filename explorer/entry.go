package explorer

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one row of a directory listing. Entries are ephemeral: every
// listing re-reads the filesystem, so an Entry is only as fresh as the List
// call that produced it.
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
	Ext     string
}

// Kind returns the display type for the entry, e.g. "Folder" or "PDF".
func (e Entry) Kind() string {
	if e.IsDir {
		return "Folder"
	}
	if e.Ext == "" {
		return "File"
	}
	return strings.ToUpper(strings.TrimPrefix(e.Ext, "."))
}

// SortKey selects the listing order.
type SortKey string

const (
	SortByName SortKey = "name"
	SortByType SortKey = "type"
	SortBySize SortKey = "size"
	SortByDate SortKey = "date"
)

// ListOptions control filtering and ordering of a listing.
type ListOptions struct {
	ShowHidden bool
	Sort       SortKey
}

// List reads dir and returns its entries, directories first. Entries that
// cannot be stat'd are skipped rather than failing the whole listing.
func List(dir string, opts ListOptions) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		name := item.Name()
		if !opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		info, err := item.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    name,
			Path:    filepath.Join(dir, name),
			IsDir:   item.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Ext:     strings.ToLower(filepath.Ext(name)),
		})
	}
	sortEntries(entries, opts.Sort)
	return entries, nil
}

func sortEntries(entries []Entry, key SortKey) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		switch key {
		case SortBySize:
			if a.Size != b.Size {
				return a.Size > b.Size
			}
		case SortByDate:
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.After(b.ModTime)
			}
		case SortByType:
			if a.Ext != b.Ext {
				return a.Ext < b.Ext
			}
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// FormatSize renders a byte count the way the listing column expects it.
func FormatSize(size int64) string {
	if size < 0 {
		return "0 B"
	}
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	exp := int(math.Log(float64(size)) / math.Log(1024))
	if exp >= len(units) {
		exp = len(units) - 1
	}
	return fmt.Sprintf("%.1f %s", float64(size)/math.Pow(1024, float64(exp)), units[exp])
}

// FormatModTime abbreviates timestamps: today shows the clock, the last week
// shows the weekday, anything older the full date.
func FormatModTime(t time.Time, now time.Time) string {
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("Today 15:04")
	}
	if now.Sub(t) < 7*24*time.Hour {
		return t.Format("Mon 15:04")
	}
	return t.Format("2006-01-02 15:04")
}
