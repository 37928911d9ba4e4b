package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View composes the header, listing, output pane, prompt bar, and status bar.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	sections := []string{m.renderHeader(), m.renderEntries()}

	if m.notice != "" {
		style := noticeStyle
		if m.noticeErr {
			style = errorStyle
		}
		line := " " + style.Render(m.notice)
		if m.summarizing {
			line = " " + m.spinner.View() + style.Render(m.notice)
		}
		sections = append(sections, line)
	}

	if m.paneOpen {
		sections = append(sections, m.renderPane())
	}

	sections = append(sections, m.renderPromptBar(), m.statusBar.View(m, m.width))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderPromptBar() string {
	if m.mode == ModeCommand {
		hint := dimStyle.Render(" Enter to run | Esc to cancel")
		return promptBarStyle.Width(m.width).Render("/ " + m.input.View() + hint)
	}
	hint := strings.Join([]string{
		"enter open", "backspace up", "[ ] history", "/ commands",
		". hidden", "s sort", "q quit",
	}, " | ")
	return promptBarStyle.Width(m.width).Render(dimStyle.Render(hint))
}
