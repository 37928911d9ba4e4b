package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parvatisuthar/fileexpo/tagging"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{StartDir: dir, DataDir: filepath.Join(dir, "data")}
	require.NoError(t, cfg.Normalize())

	require.Equal(t, filepath.Join(dir, "data", "tags.json"), cfg.TagsPath)
	require.Equal(t, filepath.Join(dir, "data", "fileexpo.db"), cfg.DBPath)
	require.Equal(t, filepath.Join(dir, "data", "config.yaml"), cfg.ConfigPath)
	require.Equal(t, "http://localhost:11434", cfg.OllamaEndpoint)
	require.Equal(t, "llama3.2", cfg.OllamaModel)
	require.Equal(t, 150, cfg.SummaryWords)
	require.Equal(t, "name", cfg.Sort)
}

func TestNormalizeRequiresStartDir(t *testing.T) {
	cfg := Config{}
	require.Error(t, cfg.Normalize())
}

func TestRuntimeWiring(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{StartDir: dir, DataDir: filepath.Join(dir, "data")}

	rt, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })

	require.NotNil(t, rt.Tags)
	require.NotNil(t, rt.Usage)
	require.NotNil(t, rt.Health)
	require.NotNil(t, rt.Summarizer)

	// The stores share one database and work end to end.
	rt.RecordAccess(filepath.Join(dir, "file.txt"))
	recent, err := rt.Usage.RecentlyAccessed(5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
}

func TestRuntimeFailsFastOnCorruptTags(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "tags.json"), []byte("{oops"), 0o644))

	_, err := New(Config{StartDir: dir, DataDir: dataDir})
	var corrupt *tagging.CorruptStoreError
	require.ErrorAs(t, err, &corrupt)
}

func TestWorkspaceConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	ws := WorkspaceConfig{
		Model:      "mistral",
		Sort:       "date",
		ShowHidden: true,
		Bookmarks:  []Bookmark{{Name: "Projects", Path: "/src"}},
	}
	require.NoError(t, SaveWorkspaceConfig(path, ws))

	loaded, err := LoadWorkspaceConfig(path)
	require.NoError(t, err)
	require.Equal(t, "mistral", loaded.Model)
	require.Equal(t, "date", loaded.Sort)
	require.True(t, loaded.ShowHidden)
	require.Equal(t, ws.Bookmarks, loaded.Bookmarks)
	require.NotZero(t, loaded.LastUpdated)
}
