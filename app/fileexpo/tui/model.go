package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parvatisuthar/fileexpo/explorer"
	runtimesvc "github.com/parvatisuthar/fileexpo/internal/fileexpo/runtime"
)

// Run starts the browser UI on top of an initialized runtime.
func Run(ctx context.Context, rt *runtimesvc.Runtime) error {
	if rt == nil {
		return fmt.Errorf("runtime is required")
	}
	model, err := NewModel(rt)
	if err != nil {
		return err
	}
	program := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	_, runErr := program.Run()
	if model.watcher != nil {
		model.watcher.Close()
	}
	if err := rt.SaveWorkspace(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// InputMode tracks the role of the prompt bar.
type InputMode int

const (
	ModeBrowse InputMode = iota
	ModeCommand
)

// Model implements the Bubble Tea Model interface and coordinates the
// directory listing, output pane, prompt bar, and status bar.
type Model struct {
	runtime *runtimesvc.Runtime

	nav     *explorer.Navigator
	watcher *explorer.Watcher
	entries []explorer.Entry
	cursor  int
	offset  int

	showHidden bool
	sortKey    explorer.SortKey

	input   textinput.Model
	spinner spinner.Model
	pane    viewport.Model

	statusBar StatusBar

	mode      InputMode
	notice    string
	noticeErr bool
	paneTitle string
	paneOpen  bool

	summarizing bool
	summaryCh   chan tea.Msg

	width  int
	height int
	ready  bool
}

// NewModel seeds the browser at the runtime's start directory.
func NewModel(rt *runtimesvc.Runtime) (Model, error) {
	nav, err := explorer.NewNavigator(rt.Config.StartDir)
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Placeholder = "command"
	input.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle()

	m := Model{
		runtime:    rt,
		nav:        nav,
		showHidden: rt.Config.ShowHidden,
		sortKey:    explorer.SortKey(rt.Config.Sort),
		input:      input,
		spinner:    sp,
		statusBar: StatusBar{
			model:      rt.Config.OllamaModel,
			lastUpdate: time.Now(),
		},
		mode: ModeBrowse,
	}

	// The watcher is best effort: browsing works without live refresh.
	if w, err := explorer.NewWatcher(); err == nil {
		m.watcher = w
		_ = w.Watch(nav.Current())
	}

	if err := m.reload(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// reload re-reads the current directory into the entry list.
func (m *Model) reload() error {
	entries, err := explorer.List(m.nav.Current(), explorer.ListOptions{
		ShowHidden: m.showHidden,
		Sort:       m.sortKey,
	})
	if err != nil {
		return err
	}
	m.entries = entries
	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampOffset()
	return nil
}

// visit navigates to dir and repoints the watcher.
func (m Model) visit(dir string) (Model, tea.Cmd) {
	if err := m.nav.Goto(dir); err != nil {
		return m.withError(fmt.Sprintf("open %s: %v", dir, err)), nil
	}
	return m.afterNavigate()
}

// afterNavigate refreshes state shared by every navigation path.
func (m Model) afterNavigate() (Model, tea.Cmd) {
	m.cursor = 0
	m.offset = 0
	if err := m.reload(); err != nil {
		return m.withError(err.Error()), nil
	}
	if m.watcher != nil {
		_ = m.watcher.Watch(m.nav.Current())
	}
	m.notice = ""
	m.noticeErr = false
	return m, nil
}

// currentEntry returns the entry under the cursor.
func (m Model) currentEntry() (explorer.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return explorer.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m Model) withNotice(text string) Model {
	m.notice = text
	m.noticeErr = false
	return m
}

func (m Model) withError(text string) Model {
	m.notice = text
	m.noticeErr = true
	return m
}

// showPane fills the output pane and scrolls it back to the top.
func (m Model) showPane(title, content string) Model {
	m.paneTitle = title
	m.paneOpen = true
	if m.ready {
		m.pane.SetContent(content)
		m.pane.GotoTop()
	}
	return m
}

func (m Model) closePane() Model {
	m.paneOpen = false
	m.paneTitle = ""
	return m
}

// startSummarize kicks off a summary in the background and keeps the UI
// responsive through the channel listener.
func (m Model) startSummarize(path string) (Model, tea.Cmd) {
	if m.summarizing {
		return m.withError("a summary is already running"), nil
	}
	ch := make(chan tea.Msg, 1)
	m.summarizing = true
	m.summaryCh = ch
	go runSummarize(m.runtime, path, ch)
	m = m.withNotice(fmt.Sprintf("summarizing %s…", path))
	return m, tea.Batch(m.spinner.Tick, listen(ch))
}

// runSummarize executes the dispatcher off the UI goroutine.
func runSummarize(rt *runtimesvc.Runtime, path string, ch chan tea.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	summary, err := rt.Summarizer.Summarize(ctx, path)
	if err != nil {
		ch <- summaryErrMsg{Path: path, Err: err}
	} else {
		rt.RecordAccess(path)
		ch <- summaryDoneMsg{Path: path, Summary: summary}
	}
	close(ch)
}

func (m *Model) clampOffset() {
	visible := m.listHeight()
	if visible <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight is the row budget left for entries after the fixed chrome.
func (m Model) listHeight() int {
	chrome := 3 // header, prompt bar, status bar
	if m.notice != "" {
		chrome++
	}
	h := m.height - chrome
	if m.paneOpen {
		// viewport rows plus the border and title lines
		h -= m.paneHeight() + 3
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) paneHeight() int {
	h := m.height / 3
	if h < 4 {
		h = 4
	}
	return h
}
