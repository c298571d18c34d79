// Package ui is the interactive terminal surface: a bubbletea program that
// turns keys into Session intents and renders Session snapshots.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskcal/internal/app"
	"taskcal/internal/config"
	"taskcal/internal/duedate"
	"taskcal/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeSearch
	modeDue
)

type Model struct {
	session    *app.Session
	cfg        config.Config
	log        *log.Logger
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	confirmDel bool
	pendingDel *task.Task
	width      int
}

func New(session *app.Session, cfg config.Config, logger *log.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		session: session,
		cfg:     cfg,
		log:     logger,
		input:   ti,
		mode:    modeList,
		status:  fmt.Sprintf("Press '%s' to add, space to toggle, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Delete),
		width:   100,
	}
}

func Run(session *app.Session, cfg config.Config, logger *log.Logger) error {
	program := tea.NewProgram(New(session, cfg, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-20, 10)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeSearch:
		return m.updateSearchMode(key, msg)
	case modeDue:
		return m.updateDueMode(key, msg)
	}
	return m.updateListMode(key)
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m = m.leaveInput()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		_, ok, err := m.session.Add(m.input.Value())
		switch {
		case err != nil:
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		case !ok:
			m.status = "Title cannot be empty"
			return m, nil
		}
		m = m.leaveInput()
		m.cursor = 0
		m.status = "Added task"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// updateSearchMode filters live as the query is typed. Cancel clears it.
func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.session.SetSearch("")
		m = m.leaveInput()
		m.status = "Search cleared"
		return m, nil
	case m.cfg.Keys.Confirm:
		m = m.leaveInput()
		m.status = fmt.Sprintf("Search: %q", m.session.Search())
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.session.SetSearch(m.input.Value())
		m.cursor = clampCursor(m.cursor, len(m.items()))
		return m, cmd
	}
}

func (m Model) updateDueMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m = m.leaveInput()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		due, err := duedate.Parse(m.input.Value(), m.session.Now())
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.session.SetPendingDue(due)
		m = m.leaveInput()
		if due == nil {
			m.status = "New tasks have no deadline"
		} else {
			m.status = "New tasks due " + duedate.Format(due)
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// items is what the cursor moves over: the filtered list in list mode, the
// drawn grid then the no-deadline section in calendar mode.
func (m Model) items() []task.Task {
	return cursorItems(m.session.Snapshot())
}

func cursorItems(snap app.Snapshot) []task.Task {
	if snap.Calendar != nil {
		return snap.Calendar.Shown()
	}
	return snap.Visible
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	visible := m.items()
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(visible) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(visible))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(visible))
		}
	case m.cfg.Keys.Add:
		m = m.enterInput(modeAdd, "Task title", "")
		m.status = "Add mode: type a title and press Enter"
	case m.cfg.Keys.Search:
		m = m.enterInput(modeSearch, "Search tasks", m.session.Search())
		m.status = "Search: type to filter, Enter to keep, Esc to clear"
	case m.cfg.Keys.Due:
		m = m.enterInput(modeDue, "YYYY-MM-DD, tomorrow, next friday ... (empty for none)", duedate.Format(m.session.Snapshot().Due))
		m.status = "Due date for new tasks"
	case m.cfg.Keys.Priority:
		p := m.session.Priority().Next()
		m.session.SetPendingPriority(p)
		m.status = "New task priority: " + p.Label()
	case m.cfg.Keys.Filter:
		st := m.session.Filter().Next()
		m.session.SetFilter(st)
		m.cursor = clampCursor(m.cursor, len(m.items()))
		m.status = "Showing " + string(st)
	case m.cfg.Keys.View:
		next := m.session.Mode().Toggle()
		if err := m.session.SetMode(next); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, len(m.items()))
		m.status = string(next) + " view"
	case m.cfg.Keys.Toggle:
		if len(visible) == 0 {
			return m, nil
		}
		t := visible[clampCursor(m.cursor, len(visible))]
		if _, err := m.session.Toggle(t.ID); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, len(m.items()))
		m.status = "Toggled task"
	case m.cfg.Keys.Delete:
		if len(visible) == 0 {
			return m, nil
		}
		t := visible[clampCursor(m.cursor, len(visible))]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Text)
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if _, err := m.session.Delete(m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.cursor = clampCursor(m.cursor, len(m.items()))
			m.status = "Deleted task"
		}
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) enterInput(md mode, placeholder, value string) Model {
	m.mode = md
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m Model) leaveInput() Model {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func inputLabel(md mode) string {
	switch md {
	case modeAdd:
		return "Add task: "
	case modeSearch:
		return "Search: "
	case modeDue:
		return "Due date: "
	}
	return ""
}

func renderHelp(k config.Keymap) string {
	keys := []string{
		k.Up + "/" + k.Down + " move",
		k.Add + " add",
		keyName(k.Toggle) + " toggle",
		k.Delete + " delete",
		k.Search + " search",
		k.Filter + " filter",
		k.Priority + " priority",
		k.Due + " due",
		k.View + " view",
		k.Quit + " quit",
	}
	return strings.Join(keys, " • ")
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
