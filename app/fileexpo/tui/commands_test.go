package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/parvatisuthar/fileexpo/explorer"
	runtimesvc "github.com/parvatisuthar/fileexpo/internal/fileexpo/runtime"
)

func TestParseCommand(t *testing.T) {
	name, args := parseCommand("/tag work stuff")
	require.Equal(t, "tag", name)
	require.Equal(t, []string{"work", "stuff"}, args)

	name, args = parseCommand("/help")
	require.Equal(t, "help", name)
	require.Empty(t, args)

	name, _ = parseCommand("not a command")
	require.Equal(t, "", name)

	name, _ = parseCommand("")
	require.Equal(t, "", name)
}

func TestNextSortKeyCycles(t *testing.T) {
	key := explorer.SortByName
	seen := map[explorer.SortKey]bool{}
	for i := 0; i < 4; i++ {
		seen[key] = true
		key = nextSortKey(key)
	}
	require.Equal(t, explorer.SortByName, key)
	require.Len(t, seen, 4)
}

func newTestModel(t *testing.T) (Model, *runtimesvc.Runtime, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	rt, err := runtimesvc.New(runtimesvc.Config{
		StartDir: dir,
		DataDir:  filepath.Join(dir, ".data"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })

	m, err := NewModel(rt)
	require.NoError(t, err)
	t.Cleanup(func() {
		if m.watcher != nil {
			m.watcher.Close()
		}
	})

	resized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return resized.(Model), rt, dir
}

func TestBrowseNavigation(t *testing.T) {
	m, _, dir := newTestModel(t)

	// docs/ sorts before notes.txt, directories first
	require.Len(t, m.entries, 2)
	require.Equal(t, "docs", m.entries[0].Name)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.Equal(t, filepath.Join(dir, "docs"), m.nav.Current())
	require.Empty(t, m.entries)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(Model)
	require.Equal(t, dir, m.nav.Current())
}

func TestTagCommandFlow(t *testing.T) {
	m, rt, dir := newTestModel(t)

	// move cursor onto notes.txt and tag it through the prompt bar
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m = updated.(Model)
	require.Equal(t, ModeCommand, m.mode)

	for _, r := range "tag important" {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.Equal(t, ModeBrowse, m.mode)
	require.Equal(t, []string{"important"}, rt.Tags.Tags(filepath.Join(dir, "notes.txt")))
}

func TestUnknownCommand(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := handleCommand(m, "bogus", nil)
	require.True(t, updated.noticeErr)
	require.Contains(t, updated.notice, "unknown command")
}

func TestOpenCommandResolvesBookmark(t *testing.T) {
	m, rt, dir := newTestModel(t)
	docs := filepath.Join(dir, "docs")
	rt.Workspace.Bookmarks = append(rt.Workspace.Bookmarks,
		runtimesvc.Bookmark{Name: "work", Path: docs})

	updated, _ := handleCommand(m, "open", []string{"work"})
	require.Equal(t, docs, updated.nav.Current())
}

func TestVoiceTranscripts(t *testing.T) {
	m, _, dir := newTestModel(t)

	updated, _ := handleCommand(m, "voice", []string{"create", "folder", "projects"})
	m = updated
	require.DirExists(t, filepath.Join(dir, "projects"))

	updated, _ = handleCommand(m, "voice", []string{"mumble", "mumble"})
	require.True(t, updated.noticeErr)
}
