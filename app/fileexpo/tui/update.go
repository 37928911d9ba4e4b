package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parvatisuthar/fileexpo/explorer"
)

// Init fulfills the Bubble Tea Model interface.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, watchEvents(m.watcher.Events()))
	}
	return tea.Batch(cmds...)
}

// Update applies incoming Bubble Tea messages to mutate the Model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
		switch m.mode {
		case ModeBrowse:
			return m.handleBrowseKeys(msg)
		case ModeCommand:
			return m.handleCommandMode(msg)
		}
	case fsEventMsg:
		return m.handleFSEvent(msg)
	case summaryDoneMsg:
		return m.handleSummaryDone(msg)
	case summaryErrMsg:
		return m.handleSummaryErr(msg)
	case spinner.TickMsg:
		if !m.summarizing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize adjusts the layout on terminal resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	if !m.ready {
		m.pane = viewport.New(msg.Width-4, m.paneHeight())
		m.ready = true
	} else {
		m.pane.Width = msg.Width - 4
		m.pane.Height = m.paneHeight()
	}
	m.input.Width = max(10, msg.Width-4)
	m.clampOffset()
	return m, nil
}

// handleBrowseKeys implements the default listing navigation.
func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.clampOffset()
		}
		return m, nil
	case "pgup":
		m.cursor = max(0, m.cursor-m.listHeight())
		m.clampOffset()
		return m, nil
	case "pgdown":
		m.cursor = min(len(m.entries)-1, m.cursor+m.listHeight())
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampOffset()
		return m, nil
	case "home", "g":
		m.cursor = 0
		m.clampOffset()
		return m, nil
	case "end", "G":
		m.cursor = max(0, len(m.entries)-1)
		m.clampOffset()
		return m, nil
	case "enter":
		return m.openCursor()
	case "backspace", "left", "h":
		if _, ok := m.nav.Up(); ok {
			return m.afterNavigate()
		}
		return m, nil
	case "alt+left", "[":
		if _, ok := m.nav.Back(); ok {
			return m.afterNavigate()
		}
		return m.withNotice("nothing to go back to"), nil
	case "alt+right", "]":
		if _, ok := m.nav.Forward(); ok {
			return m.afterNavigate()
		}
		return m.withNotice("nothing to go forward to"), nil
	case "/":
		m.mode = ModeCommand
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	case ".":
		m.showHidden = !m.showHidden
		if err := m.reload(); err != nil {
			return m.withError(err.Error()), nil
		}
		return m, nil
	case "s":
		m.sortKey = nextSortKey(m.sortKey)
		if err := m.reload(); err != nil {
			return m.withError(err.Error()), nil
		}
		return m.withNotice(fmt.Sprintf("sorted by %s", m.sortKey)), nil
	case "r":
		if err := m.reload(); err != nil {
			return m.withError(err.Error()), nil
		}
		return m.withNotice("reloaded"), nil
	case "esc":
		m.notice = ""
		m.noticeErr = false
		return m.closePane(), nil
	}

	if m.paneOpen {
		switch msg.String() {
		case "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.pane, cmd = m.pane.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// openCursor descends into a directory or surfaces file details.
func (m Model) openCursor() (tea.Model, tea.Cmd) {
	entry, ok := m.currentEntry()
	if !ok {
		return m, nil
	}
	if entry.IsDir {
		return m.visit(entry.Path)
	}
	m.runtime.RecordAccess(entry.Path)
	return m.showFileDetails(entry), nil
}

// handleCommandMode processes slash-prefixed commands.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		raw := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		m.input.Blur()
		m.mode = ModeBrowse
		if raw == "" {
			return m, nil
		}
		if !strings.HasPrefix(raw, "/") {
			raw = "/" + raw
		}
		name, args := parseCommand(raw)
		if name == "" {
			return m, nil
		}
		return handleCommand(m, name, args)
	case "esc":
		m.mode = ModeBrowse
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// handleFSEvent refreshes the listing when the watched directory changes.
func (m Model) handleFSEvent(fsEventMsg) (tea.Model, tea.Cmd) {
	if err := m.reload(); err != nil {
		m = m.withError(err.Error())
	}
	if m.watcher != nil {
		return m, watchEvents(m.watcher.Events())
	}
	return m, nil
}

func (m Model) handleSummaryDone(msg summaryDoneMsg) (tea.Model, tea.Cmd) {
	m.summarizing = false
	m.summaryCh = nil
	m.notice = ""
	return m.showPane(fmt.Sprintf("Summary: %s", msg.Path), msg.Summary), nil
}

func (m Model) handleSummaryErr(msg summaryErrMsg) (tea.Model, tea.Cmd) {
	m.summarizing = false
	m.summaryCh = nil
	return m.withError(fmt.Sprintf("summarize %s: %v", msg.Path, msg.Err)), nil
}

// nextSortKey cycles name -> type -> size -> date.
func nextSortKey(key explorer.SortKey) explorer.SortKey {
	switch key {
	case explorer.SortByName:
		return explorer.SortByType
	case explorer.SortByType:
		return explorer.SortBySize
	case explorer.SortBySize:
		return explorer.SortByDate
	default:
		return explorer.SortByName
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
