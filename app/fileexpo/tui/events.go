package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// summaryDoneMsg carries a finished summary back into the UI loop.
type summaryDoneMsg struct {
	Path    string
	Summary string
}

// summaryErrMsg wraps summarizer failures for display.
type summaryErrMsg struct {
	Path string
	Err  error
}

// fsEventMsg signals that the watched directory changed on disk.
type fsEventMsg struct {
	Path string
}

// listen adapts a Go channel to a Bubble Tea command.
func listen(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// watchEvents forwards watcher notifications into the update loop.
func watchEvents(events <-chan string) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-events
		if !ok {
			return nil
		}
		return fsEventMsg{Path: path}
	}
}
