package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders directory context on the left and model/session info on
// the right.
type StatusBar struct {
	model      string
	lastUpdate time.Time
}

func (s StatusBar) View(m Model, width int) string {
	hidden := "hidden off"
	if m.showHidden {
		hidden = "hidden on"
	}
	left := fmt.Sprintf("📁 %s | sort: %s | %s",
		truncate(m.nav.Current(), 32), m.sortKey, hidden)

	right := fmt.Sprintf("%d items | 🤖 %s", len(m.entries), s.model)
	if m.summarizing {
		right = "summarizing… | " + right
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	return statusStyle.Render(left + strings.Repeat(" ", padding) + right)
}
