package tagging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tags.json")
	store, err := Open(path)
	require.NoError(t, err)
	return store, path
}

func TestAddRemoveTags(t *testing.T) {
	store, _ := tempStore(t)

	changed, err := store.Add("/docs/report.pdf", "important")
	require.NoError(t, err)
	require.True(t, changed)

	// Adding again is a no-op.
	changed, err = store.Add("/docs/report.pdf", "important")
	require.NoError(t, err)
	require.False(t, changed)

	require.Equal(t, []string{"important"}, store.Tags("/docs/report.pdf"))

	removed, err := store.Remove("/docs/report.pdf", "important")
	require.NoError(t, err)
	require.True(t, removed)
	require.Empty(t, store.Tags("/docs/report.pdf"))

	removed, err = store.Remove("/docs/report.pdf", "important")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestRoundTripPersistence(t *testing.T) {
	store, path := tempStore(t)
	_, err := store.Add("/docs/report.pdf", "important")
	require.NoError(t, err)
	_, err = store.Add("/docs/report.pdf", "work")
	require.NoError(t, err)
	_, err = store.Add("/music/track.mp3", "chill")
	require.NoError(t, err)

	reloaded, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, store.Tags("/docs/report.pdf"), reloaded.Tags("/docs/report.pdf"))
	require.Equal(t, store.Tags("/music/track.mp3"), reloaded.Tags("/music/track.mp3"))
	require.Equal(t, store.All(), reloaded.All())
}

func TestFindByTagAndAll(t *testing.T) {
	store, _ := tempStore(t)
	for path, tags := range map[string][]string{
		"/a.txt": {"work", "todo"},
		"/b.txt": {"work"},
		"/c.txt": {"home"},
	} {
		for _, tag := range tags {
			_, err := store.Add(path, tag)
			require.NoError(t, err)
		}
	}
	require.Equal(t, []string{"/a.txt", "/b.txt"}, store.FindByTag("work"))
	require.Equal(t, []string{"home", "todo", "work"}, store.All())
	require.Empty(t, store.FindByTag("missing"))
}

func TestCorruptStoreFailsFastAndResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	var corrupt *CorruptStoreError
	require.True(t, errors.As(err, &corrupt))
	require.Equal(t, path, corrupt.Path)

	store, err := Reset(path)
	require.NoError(t, err)
	require.Zero(t, store.Len())

	// The broken file is kept aside rather than destroyed.
	_, err = os.Stat(path + ".corrupt")
	require.NoError(t, err)

	// And the reset store works normally.
	_, err = store.Add("/x", "fresh")
	require.NoError(t, err)
	reloaded, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, []string{"fresh"}, reloaded.Tags("/x"))
}

func TestRenameCarriesTags(t *testing.T) {
	store, _ := tempStore(t)
	_, err := store.Add("/old.txt", "keep")
	require.NoError(t, err)

	require.NoError(t, store.Rename("/old.txt", "/new.txt"))
	require.Empty(t, store.Tags("/old.txt"))
	require.Equal(t, []string{"keep"}, store.Tags("/new.txt"))
}

func TestPruneDropsDeadPaths(t *testing.T) {
	store, _ := tempStore(t)

	live := filepath.Join(t.TempDir(), "live.txt")
	require.NoError(t, os.WriteFile(live, []byte("x"), 0o644))

	_, err := store.Add(live, "keep")
	require.NoError(t, err)
	_, err = store.Add("/definitely/gone.txt", "drop")
	require.NoError(t, err)

	removed, err := store.Prune()
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.Equal(t, []string{"keep"}, store.Tags(live))
	require.Empty(t, store.Tags("/definitely/gone.txt"))
}
