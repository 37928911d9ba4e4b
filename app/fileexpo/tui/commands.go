package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parvatisuthar/fileexpo/analytics"
	"github.com/parvatisuthar/fileexpo/explorer"
	"github.com/parvatisuthar/fileexpo/health"
	runtimesvc "github.com/parvatisuthar/fileexpo/internal/fileexpo/runtime"
	"github.com/parvatisuthar/fileexpo/voice"
)

// CommandHandler mutates model state for /commands in the prompt bar.
type CommandHandler func(Model, []string) (Model, tea.Cmd)

// Command describes a slash command entry.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	Handler     CommandHandler
}

var commandRegistry = map[string]Command{}

func init() {
	registerCommand(Command{
		Name:        "help",
		Aliases:     []string{"h", "?"},
		Description: "Show available commands",
		Usage:       "/help [command]",
		Handler:     handleHelp,
	})
	registerCommand(Command{
		Name:        "open",
		Aliases:     []string{"o", "cd"},
		Description: "Open a directory by path, bookmark, or place name",
		Usage:       "/open <path>",
		Handler:     handleOpen,
	})
	registerCommand(Command{
		Name:        "tag",
		Description: "Tag the selected entry",
		Usage:       "/tag <tag>",
		Handler:     handleTag,
	})
	registerCommand(Command{
		Name:        "untag",
		Description: "Remove a tag from the selected entry",
		Usage:       "/untag <tag>",
		Handler:     handleUntag,
	})
	registerCommand(Command{
		Name:        "tags",
		Description: "List every tag in use",
		Usage:       "/tags",
		Handler:     handleTags,
	})
	registerCommand(Command{
		Name:        "find",
		Aliases:     []string{"f"},
		Description: "List files carrying a tag",
		Usage:       "/find <tag>",
		Handler:     handleFind,
	})
	registerCommand(Command{
		Name:        "prune",
		Description: "Drop tags whose files no longer exist",
		Usage:       "/prune",
		Handler:     handlePrune,
	})
	registerCommand(Command{
		Name:        "summarize",
		Aliases:     []string{"sum"},
		Description: "Summarize the selected document",
		Usage:       "/summarize",
		Handler:     handleSummarize,
	})
	registerCommand(Command{
		Name:        "recent",
		Description: "Show recently accessed files",
		Usage:       "/recent [n]",
		Handler:     handleRecent,
	})
	registerCommand(Command{
		Name:        "top",
		Description: "Show most accessed files",
		Usage:       "/top [n]",
		Handler:     handleTop,
	})
	registerCommand(Command{
		Name:        "stats",
		Description: "Show usage details for the selected entry",
		Usage:       "/stats",
		Handler:     handleStats,
	})
	registerCommand(Command{
		Name:        "health",
		Description: "Check the selected file for problems and changes",
		Usage:       "/health",
		Handler:     handleHealth,
	})
	registerCommand(Command{
		Name:        "verify",
		Description: "Verify ledgered files under the current directory",
		Usage:       "/verify",
		Handler:     handleVerify,
	})
	registerCommand(Command{
		Name:        "mkdir",
		Description: "Create a directory here",
		Usage:       "/mkdir <name>",
		Handler:     handleMkdir,
	})
	registerCommand(Command{
		Name:        "touch",
		Aliases:     []string{"new"},
		Description: "Create an empty file here",
		Usage:       "/touch <name>",
		Handler:     handleTouch,
	})
	registerCommand(Command{
		Name:        "rename",
		Aliases:     []string{"mv"},
		Description: "Rename the selected entry",
		Usage:       "/rename <new-name>",
		Handler:     handleRename,
	})
	registerCommand(Command{
		Name:        "delete",
		Aliases:     []string{"del", "rm"},
		Description: "Delete the selected entry",
		Usage:       "/delete",
		Handler:     handleDelete,
	})
	registerCommand(Command{
		Name:        "copy",
		Aliases:     []string{"cp"},
		Description: "Copy the selected file into a directory",
		Usage:       "/copy <dest-dir>",
		Handler:     handleCopy,
	})
	registerCommand(Command{
		Name:        "bookmark",
		Aliases:     []string{"bm"},
		Description: "Bookmark the current directory",
		Usage:       "/bookmark [name]",
		Handler:     handleBookmark,
	})
	registerCommand(Command{
		Name:        "bookmarks",
		Description: "List bookmarks",
		Usage:       "/bookmarks",
		Handler:     handleBookmarks,
	})
	registerCommand(Command{
		Name:        "hidden",
		Description: "Toggle hidden entries",
		Usage:       "/hidden",
		Handler:     handleHidden,
	})
	registerCommand(Command{
		Name:        "sort",
		Description: "Set the sort order",
		Usage:       "/sort <name|type|size|date>",
		Handler:     handleSort,
	})
	registerCommand(Command{
		Name:        "voice",
		Aliases:     []string{"say"},
		Description: "Run a spoken-style command transcript",
		Usage:       "/voice <transcript>",
		Handler:     handleVoice,
	})
	registerCommand(Command{
		Name:        "quit",
		Aliases:     []string{"q", "exit"},
		Description: "Quit",
		Usage:       "/quit",
		Handler: func(m Model, _ []string) (Model, tea.Cmd) {
			return m, tea.Quit
		},
	})
}

func registerCommand(cmd Command) {
	commandRegistry[cmd.Name] = cmd
}

// parseCommand splits the slash-prefixed input into command + args.
func parseCommand(input string) (string, []string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return "", nil
	}
	if !strings.HasPrefix(parts[0], "/") {
		return "", nil
	}
	name := strings.TrimPrefix(parts[0], "/")
	return name, parts[1:]
}

// handleCommand finds the registered command (with alias fallback).
func handleCommand(m Model, name string, args []string) (Model, tea.Cmd) {
	if name == "" {
		return m, nil
	}
	cmd, ok := commandRegistry[name]
	if !ok {
		for _, registered := range commandRegistry {
			for _, alias := range registered.Aliases {
				if alias == name {
					cmd = registered
					ok = true
					break
				}
			}
			if ok {
				break
			}
		}
	}
	if !ok {
		return m.withError(fmt.Sprintf("unknown command: %s", name)), nil
	}
	return cmd.Handler(m, args)
}

func handleHelp(m Model, args []string) (Model, tea.Cmd) {
	if len(args) > 0 {
		if cmd, ok := commandRegistry[args[0]]; ok {
			text := fmt.Sprintf("%s - %s\nUsage: %s", cmd.Name, cmd.Description, cmd.Usage)
			return m.showPane("Help", text), nil
		}
	}
	names := make([]string, 0, len(commandRegistry))
	for name := range commandRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		cmd := commandRegistry[name]
		fmt.Fprintf(&b, "%-22s %s\n", cmd.Usage, cmd.Description)
	}
	return m.showPane("Commands", strings.TrimRight(b.String(), "\n")), nil
}

func handleOpen(m Model, args []string) (Model, tea.Cmd) {
	if len(args) == 0 {
		return m.withError("usage: /open <path>"), nil
	}
	arg := strings.Join(args, " ")

	if dir, ok := m.lookupBookmark(arg); ok {
		return m.visit(dir)
	}
	if dir, err := voice.ResolvePlace(arg); err == nil {
		return m.visit(dir)
	}
	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.nav.Current(), path)
	}
	return m.visit(path)
}

func (m Model) lookupBookmark(name string) (string, bool) {
	for _, bm := range m.runtime.Workspace.Bookmarks {
		if strings.EqualFold(bm.Name, name) {
			return bm.Path, true
		}
	}
	return "", false
}

func handleTag(m Model, args []string) (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m.withError("nothing selected"), nil
	}
	if len(args) == 0 {
		return m.withError("usage: /tag <tag>"), nil
	}
	added, err := m.runtime.Tags.Add(entry.Path, args[0])
	if err != nil {
		return m.withError(err.Error()), nil
	}
	if !added {
		return m.withNotice(fmt.Sprintf("%s already tagged %q", entry.Name, args[0])), nil
	}
	return m.withNotice(fmt.Sprintf("tagged %s %q", entry.Name, args[0])), nil
}

func handleUntag(m Model, args []string) (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m.withError("nothing selected"), nil
	}
	if len(args) == 0 {
		return m.withError("usage: /untag <tag>"), nil
	}
	removed, err := m.runtime.Tags.Remove(entry.Path, args[0])
	if err != nil {
		return m.withError(err.Error()), nil
	}
	if !removed {
		return m.withNotice(fmt.Sprintf("%s was not tagged %q", entry.Name, args[0])), nil
	}
	return m.withNotice(fmt.Sprintf("removed %q from %s", args[0], entry.Name)), nil
}

func handleTags(m Model, _ []string) (Model, tea.Cmd) {
	tags := m.runtime.Tags.All()
	if len(tags) == 0 {
		return m.withNotice("no tags yet"), nil
	}
	return m.showPane("Tags", strings.Join(tags, "\n")), nil
}

func handleFind(m Model, args []string) (Model, tea.Cmd) {
	if len(args) == 0 {
		return m.withError("usage: /find <tag>"), nil
	}
	paths := m.runtime.Tags.FindByTag(args[0])
	if len(paths) == 0 {
		return m.withNotice(fmt.Sprintf("nothing tagged %q", args[0])), nil
	}
	return m.showPane(fmt.Sprintf("Tagged %q", args[0]), strings.Join(paths, "\n")), nil
}

func handlePrune(m Model, _ []string) (Model, tea.Cmd) {
	removed, err := m.runtime.Tags.Prune()
	if err != nil {
		return m.withError(err.Error()), nil
	}
	return m.withNotice(fmt.Sprintf("pruned %d entries", removed)), nil
}

func handleSummarize(m Model, _ []string) (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m.withError("nothing selected"), nil
	}
	if entry.IsDir {
		return m.withError("cannot summarize a directory"), nil
	}
	return m.startSummarize(entry.Path)
}

func handleRecent(m Model, args []string) (Model, tea.Cmd) {
	entries, err := m.runtime.Usage.RecentlyAccessed(parseLimit(args))
	if err != nil {
		return m.withError(err.Error()), nil
	}
	return m.showUsagePane("Recently accessed", entries), nil
}

func handleTop(m Model, args []string) (Model, tea.Cmd) {
	entries, err := m.runtime.Usage.MostAccessed(parseLimit(args))
	if err != nil {
		return m.withError(err.Error()), nil
	}
	return m.showUsagePane("Most accessed", entries), nil
}

func parseLimit(args []string) int {
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			return n
		}
	}
	return 10
}

func (m Model) showUsagePane(title string, entries []analytics.UsageEntry) Model {
	if len(entries) == 0 {
		return m.withNotice("no recorded accesses yet")
	}
	now := time.Now()
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%4d  %-16s  %s\n",
			e.Accesses, explorer.FormatModTime(e.LastAccess, now), e.Path)
	}
	return m.showPane(title, strings.TrimRight(b.String(), "\n"))
}

func handleStats(m Model, _ []string) (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m.withError("nothing selected"), nil
	}
	stats, err := m.runtime.Usage.Stats(entry.Path)
	if err != nil {
		return m.withError(err.Error()), nil
	}
	if stats == nil {
		return m.withNotice(fmt.Sprintf("%s has no recorded accesses", entry.Name)), nil
	}
	now := time.Now()
	var b strings.Builder
	fmt.Fprintf(&b, "accesses:     %d\n", stats.Accesses)
	fmt.Fprintf(&b, "first access: %s\n", explorer.FormatModTime(stats.FirstAccess, now))
	fmt.Fprintf(&b, "last access:  %s\n", explorer.FormatModTime(stats.LastAccess, now))
	fmt.Fprintf(&b, "per day:      %.2f\n", stats.PerDay)
	if trail, err := m.runtime.Usage.Trail(entry.Path); err == nil && len(trail) > 0 {
		b.WriteString("recent:\n")
		for _, at := range trail {
			fmt.Fprintf(&b, "  %s\n", explorer.FormatModTime(at, now))
		}
	}
	return m.showPane(fmt.Sprintf("Usage: %s", entry.Name), strings.TrimRight(b.String(), "\n")), nil
}

func handleHealth(m Model, _ []string) (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m.withError("nothing selected"), nil
	}
	if entry.IsDir {
		return m.withError("select a file to check"), nil
	}
	var b strings.Builder
	if problems := health.Problems(entry.Path); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(&b, "problem: %s\n", p)
		}
	} else {
		b.WriteString("no problems found\n")
	}
	report, err := m.runtime.Health.Check(entry.Path)
	if err != nil {
		return m.withError(err.Error()), nil
	}
	switch {
	case !report.Exists:
		b.WriteString("integrity: missing")
	case report.FirstCheck:
		b.WriteString("integrity: baseline recorded")
	case report.Changed:
		b.WriteString("integrity: changed since last check")
	default:
		b.WriteString("integrity: unchanged")
	}
	return m.showPane(fmt.Sprintf("Health: %s", entry.Name), b.String()), nil
}

func handleVerify(m Model, _ []string) (Model, tea.Cmd) {
	result, err := m.runtime.Health.VerifyAll(m.nav.Current())
	if err != nil {
		return m.withError(err.Error()), nil
	}
	total := len(result.OK) + len(result.Changed) + len(result.Missing)
	if total == 0 {
		return m.withNotice("no ledgered files under this directory"), nil
	}
	var b strings.Builder
	for _, p := range result.Changed {
		fmt.Fprintf(&b, "changed  %s\n", p)
	}
	for _, p := range result.Missing {
		fmt.Fprintf(&b, "missing  %s\n", p)
	}
	fmt.Fprintf(&b, "%d verified: %d ok, %d changed, %d missing",
		total, len(result.OK), len(result.Changed), len(result.Missing))
	return m.showPane("Verify", b.String()), nil
}

func handleMkdir(m Model, args []string) (Model, tea.Cmd) {
	if len(args) == 0 {
		return m.withError("usage: /mkdir <name>"), nil
	}
	name := strings.Join(args, " ")
	if _, err := explorer.CreateDir(m.nav.Current(), name); err != nil {
		return m.withError(err.Error()), nil
	}
	if err := m.reload(); err != nil {
		return m.withError(err.Error()), nil
	}
	return m.withNotice(fmt.Sprintf("created %s/", name)), nil
}

func handleTouch(m Model, args []string) (Model, tea.Cmd) {
	if len(args) == 0 {
		return m.withError("usage: /touch <name>"), nil
	}
	name := strings.Join(args, " ")
	if _, err := explorer.CreateFile(m.nav.Current(), name); err != nil {
		return m.withError(err.Error()), nil
	}
	if err := m.reload(); err != nil {
		return m.withError(err.Error()), nil
	}
	return m.withNotice(fmt.Sprintf("created %s", name)), nil
}

func handleRename(m Model, args []string) (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m.withError("nothing selected"), nil
	}
	if len(args) == 0 {
		return m.withError("usage: /rename <new-name>"), nil
	}
	newName := strings.Join(args, " ")
	newPath, err := explorer.Rename(entry.Path, newName)
	if err != nil {
		return m.withError(err.Error()), nil
	}
	// Tags follow the file across internal renames.
	if err := m.runtime.Tags.Rename(entry.Path, newPath); err != nil {
		return m.withError(err.Error()), nil
	}
	if err := m.reload(); err != nil {
		return m.withError(err.Error()), nil
	}
	return m.withNotice(fmt.Sprintf("renamed to %s", newName)), nil
}

func handleDelete(m Model, _ []string) (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m.withError("nothing selected"), nil
	}
	if err := explorer.Delete(entry.Path); err != nil {
		return m.withError(err.Error()), nil
	}
	if err := m.runtime.Tags.Forget(entry.Path); err != nil {
		return m.withError(err.Error()), nil
	}
	if err := m.reload(); err != nil {
		return m.withError(err.Error()), nil
	}
	return m.withNotice(fmt.Sprintf("deleted %s", entry.Name)), nil
}

func handleCopy(m Model, args []string) (Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m.withError("nothing selected"), nil
	}
	if len(args) == 0 {
		return m.withError("usage: /copy <dest-dir>"), nil
	}
	dest := strings.Join(args, " ")
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(m.nav.Current(), dest)
	}
	if _, err := explorer.Copy(entry.Path, dest); err != nil {
		return m.withError(err.Error()), nil
	}
	return m.withNotice(fmt.Sprintf("copied %s to %s", entry.Name, dest)), nil
}

func handleBookmark(m Model, args []string) (Model, tea.Cmd) {
	dir := m.nav.Current()
	name := filepath.Base(dir)
	if len(args) > 0 {
		name = strings.Join(args, " ")
	}
	for _, bm := range m.runtime.Workspace.Bookmarks {
		if strings.EqualFold(bm.Name, name) {
			return m.withError(fmt.Sprintf("bookmark %q exists", name)), nil
		}
	}
	m.runtime.Workspace.Bookmarks = append(m.runtime.Workspace.Bookmarks,
		runtimesvc.Bookmark{Name: name, Path: dir})
	if err := m.runtime.SaveWorkspace(); err != nil {
		return m.withError(err.Error()), nil
	}
	return m.withNotice(fmt.Sprintf("bookmarked %s as %q", dir, name)), nil
}

func handleBookmarks(m Model, _ []string) (Model, tea.Cmd) {
	bms := m.runtime.Workspace.Bookmarks
	if len(bms) == 0 {
		return m.withNotice("no bookmarks yet"), nil
	}
	var b strings.Builder
	for _, bm := range bms {
		fmt.Fprintf(&b, "%-16s %s\n", bm.Name, bm.Path)
	}
	return m.showPane("Bookmarks", strings.TrimRight(b.String(), "\n")), nil
}

func handleHidden(m Model, _ []string) (Model, tea.Cmd) {
	m.showHidden = !m.showHidden
	if err := m.reload(); err != nil {
		return m.withError(err.Error()), nil
	}
	state := "off"
	if m.showHidden {
		state = "on"
	}
	return m.withNotice(fmt.Sprintf("hidden entries %s", state)), nil
}

func handleSort(m Model, args []string) (Model, tea.Cmd) {
	if len(args) == 0 {
		return m.withError("usage: /sort <name|type|size|date>"), nil
	}
	switch key := explorer.SortKey(strings.ToLower(args[0])); key {
	case explorer.SortByName, explorer.SortByType, explorer.SortBySize, explorer.SortByDate:
		m.sortKey = key
	default:
		return m.withError(fmt.Sprintf("unknown sort key %q", args[0])), nil
	}
	if err := m.reload(); err != nil {
		return m.withError(err.Error()), nil
	}
	return m.withNotice(fmt.Sprintf("sorted by %s", m.sortKey)), nil
}

// handleVoice maps a spoken-style transcript onto browser actions.
func handleVoice(m Model, args []string) (Model, tea.Cmd) {
	if len(args) == 0 {
		return m.withError("usage: /voice <transcript>"), nil
	}
	cmd, err := voice.Parse(strings.Join(args, " "))
	if err != nil {
		if errors.Is(err, voice.ErrUnrecognized) {
			return m.withError("did not understand that"), nil
		}
		return m.withError(err.Error()), nil
	}
	switch cmd.Kind {
	case voice.KindOpen:
		return handleOpen(m, []string{cmd.Arg})
	case voice.KindBack:
		if _, ok := m.nav.Back(); ok {
			return m.afterNavigate()
		}
		return m.withNotice("nothing to go back to"), nil
	case voice.KindUp:
		if _, ok := m.nav.Up(); ok {
			return m.afterNavigate()
		}
		return m, nil
	case voice.KindCreateFile:
		return handleTouch(m, []string{cmd.Arg})
	case voice.KindCreateDir:
		return handleMkdir(m, []string{cmd.Arg})
	case voice.KindDelete:
		return handleDelete(m, nil)
	case voice.KindRename:
		return handleRename(m, []string{cmd.Arg})
	case voice.KindSearch:
		return handleFind(m, []string{cmd.Arg})
	case voice.KindTag:
		return handleTag(m, []string{cmd.Arg})
	case voice.KindStop:
		return m, tea.Quit
	}
	return m, nil
}
