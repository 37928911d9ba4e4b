package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/parvatisuthar/fileexpo/explorer"
	"github.com/parvatisuthar/fileexpo/health"
)

// renderHeader draws the breadcrumb line with history indicators.
func (m Model) renderHeader() string {
	back := dimStyle.Render("◂")
	if m.nav.CanBack() {
		back = headerStyle.Render("◂")
	}
	forward := dimStyle.Render("▸")
	if m.nav.CanForward() {
		forward = headerStyle.Render("▸")
	}
	crumb := headerStyle.Render(truncate(m.nav.Current(), max(10, m.width-8)))
	return fmt.Sprintf(" %s %s  %s", back, forward, crumb)
}

// renderEntries draws the visible window of the listing.
func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return welcomeStyle.Render("  (empty directory)")
	}
	visible := m.listHeight()
	end := min(len(m.entries), m.offset+visible)

	now := time.Now()
	var b strings.Builder
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderEntry(m.entries[i], i == m.cursor, now))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderEntry(entry explorer.Entry, selected bool, now time.Time) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	name := entry.Name
	if entry.IsDir {
		name += "/"
	}
	nameWidth := max(12, m.width-44)
	name = truncate(name, nameWidth)

	size := ""
	if !entry.IsDir {
		size = explorer.FormatSize(entry.Size)
	}

	badges := ""
	if tags := m.runtime.Tags.Tags(entry.Path); len(tags) > 0 {
		badges = tagBadgeStyle.Render("[" + strings.Join(tags, ",") + "]")
	}

	row := fmt.Sprintf("%s%-*s %9s  %-16s %s",
		marker, nameWidth, name, size, explorer.FormatModTime(entry.ModTime, now), badges)

	switch {
	case selected:
		return selectedStyle.Render(row)
	case entry.IsDir:
		return dirStyle.Render(row)
	default:
		return fileStyle.Render(row)
	}
}

// showFileDetails fills the pane with metadata, tags, and usage for entry.
func (m Model) showFileDetails(entry explorer.Entry) Model {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", entry.Path)
	fmt.Fprintf(&b, "Type: %s   Size: %s   Modified: %s\n",
		entry.Kind(), explorer.FormatSize(entry.Size),
		explorer.FormatModTime(entry.ModTime, time.Now()))

	if tags := m.runtime.Tags.Tags(entry.Path); len(tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(tags, ", "))
	}

	if stats, err := m.runtime.Usage.Stats(entry.Path); err == nil && stats != nil {
		fmt.Fprintf(&b, "Opened %d times, last %s\n",
			stats.Accesses, explorer.FormatModTime(stats.LastAccess, time.Now()))
	}

	if problems := health.Problems(entry.Path); len(problems) > 0 {
		fmt.Fprintf(&b, "Problems: %s\n", strings.Join(problems, "; "))
	}

	return m.showPane(entry.Name, strings.TrimRight(b.String(), "\n"))
}

// renderPane draws the bordered output box with its title.
func (m Model) renderPane() string {
	title := paneTitleStyle.Render(truncate(m.paneTitle, max(10, m.width-6)))
	body := m.pane.View()
	return paneBoxStyle.Width(max(20, m.width-2)).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:1]
	}
	return s[:n-1] + "…"
}
