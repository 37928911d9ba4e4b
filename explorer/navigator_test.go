package explorer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGotoBackForward(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	require.NoError(t, os.Mkdir(a, 0o755))
	require.NoError(t, os.Mkdir(b, 0o755))

	nav, err := NewNavigator(root)
	require.NoError(t, err)
	require.NoError(t, nav.Goto(a))
	require.NoError(t, nav.Goto(b))

	path, ok := nav.Back()
	require.True(t, ok)
	require.Equal(t, a, path)

	path, ok = nav.Forward()
	require.True(t, ok)
	require.Equal(t, b, path)

	// Goto after Back truncates forward history.
	_, ok = nav.Back()
	require.True(t, ok)
	require.NoError(t, nav.Goto(root))
	require.False(t, nav.CanForward())
}

func TestBackSkipsDeletedDirectories(t *testing.T) {
	root := t.TempDir()
	doomed := filepath.Join(root, "doomed")
	require.NoError(t, os.Mkdir(doomed, 0o755))

	nav, err := NewNavigator(root)
	require.NoError(t, err)
	require.NoError(t, nav.Goto(doomed))
	require.NoError(t, nav.Goto(root))

	require.NoError(t, os.Remove(doomed))

	// Back skips over the deleted directory and lands further back, or
	// reports no movement if nothing live remains.
	path, ok := nav.Back()
	if ok {
		require.Equal(t, root, path)
	}
	require.Equal(t, root, nav.Current())
}

func TestGotoRejectsFiles(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	nav, err := NewNavigator(root)
	require.NoError(t, err)
	require.Error(t, nav.Goto(file))
	require.Equal(t, root, nav.Current())
}

func TestUpStopsAtRoot(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "child")
	require.NoError(t, os.Mkdir(child, 0o755))

	nav, err := NewNavigator(child)
	require.NoError(t, err)
	path, ok := nav.Up()
	require.True(t, ok)
	require.Equal(t, root, path)

	nav2, err := NewNavigator("/")
	require.NoError(t, err)
	_, ok = nav2.Up()
	require.False(t, ok)
}

func TestListSortingAndHidden(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "zdir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Alpha.txt"), []byte("aa"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "beta.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("h"), 0o644))

	entries, err := List(dir, ListOptions{})
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	// Directories first, then case-insensitive names; hidden filtered.
	require.Equal(t, []string{"zdir", "Alpha.txt", "beta.txt"}, names)

	entries, err = List(dir, ListOptions{ShowHidden: true})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	entries, err = List(dir, ListOptions{Sort: SortBySize})
	require.NoError(t, err)
	require.Equal(t, "zdir", entries[0].Name)
	require.Equal(t, "Alpha.txt", entries[1].Name)
}

func TestFileOps(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateFile(dir, "note.txt")
	require.NoError(t, err)
	_, err = CreateFile(dir, "note.txt")
	require.Error(t, err)

	sub, err := CreateDir(dir, "sub")
	require.NoError(t, err)

	copied, err := Copy(path, sub)
	require.NoError(t, err)
	require.FileExists(t, copied)

	renamed, err := Rename(path, "renamed.txt")
	require.NoError(t, err)
	require.FileExists(t, renamed)
	require.NoFileExists(t, path)

	require.NoError(t, Delete(renamed))
	require.NoError(t, Delete(sub))
	require.NoDirExists(t, sub)
}

func TestFormatters(t *testing.T) {
	require.Equal(t, "0 B", FormatSize(-5))
	require.Equal(t, "512 B", FormatSize(512))
	require.Equal(t, "1.5 KB", FormatSize(1536))
	require.Equal(t, "2.0 MB", FormatSize(2*1024*1024))

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	require.Equal(t, "Today 09:30", FormatModTime(time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC), now))
	require.Equal(t, "Fri 10:00", FormatModTime(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC), now))
	require.Equal(t, "2026-01-05 08:00", FormatModTime(time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC), now))
}
