package analytics

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store, err := NewStore(db)
	require.NoError(t, err)
	return store
}

func TestRecordAndRank(t *testing.T) {
	store := testStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordAccess("/docs/a.txt"))
	}
	require.NoError(t, store.RecordAccess("/docs/b.txt"))

	most, err := store.MostAccessed(10)
	require.NoError(t, err)
	require.Len(t, most, 2)
	require.Equal(t, "/docs/a.txt", most[0].Path)
	require.Equal(t, 3, most[0].Accesses)

	recent, err := store.RecentlyAccessed(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "/docs/b.txt", recent[0].Path)
}

func TestStatsForUnknownPath(t *testing.T) {
	store := testStore(t)
	stats, err := store.Stats("/never/seen")
	require.NoError(t, err)
	require.Nil(t, stats)
}

func TestStatsDerivedMetrics(t *testing.T) {
	store := testStore(t)

	base := time.Now().Add(-48 * time.Hour)
	clock := base
	store.now = func() time.Time { return clock }

	require.NoError(t, store.RecordAccess("/docs/a.txt"))
	clock = base.Add(24 * time.Hour)
	require.NoError(t, store.RecordAccess("/docs/a.txt"))
	clock = base.Add(48 * time.Hour)

	stats, err := store.Stats("/docs/a.txt")
	require.NoError(t, err)
	require.NotNil(t, stats)
	require.Equal(t, 2, stats.Accesses)
	require.InDelta(t, 1.0, stats.DaysSinceLast, 0.01)
	require.InDelta(t, 1.0, stats.PerDay, 0.01)
}

func TestTrailIsBounded(t *testing.T) {
	store := testStore(t)
	base := time.Now()
	for i := 0; i < maxTrailAccesses+5; i++ {
		at := base.Add(time.Duration(i) * time.Second)
		store.now = func() time.Time { return at }
		require.NoError(t, store.RecordAccess("/docs/a.txt"))
	}
	trail, err := store.Trail("/docs/a.txt")
	require.NoError(t, err)
	require.Len(t, trail, maxTrailAccesses)
	// Newest first.
	require.True(t, trail[0].After(trail[len(trail)-1]))
}

func TestForget(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.RecordAccess("/docs/a.txt"))
	require.NoError(t, store.Forget("/docs/a.txt"))

	stats, err := store.Stats("/docs/a.txt")
	require.NoError(t, err)
	require.Nil(t, stats)
	trail, err := store.Trail("/docs/a.txt")
	require.NoError(t, err)
	require.Empty(t, trail)
}
