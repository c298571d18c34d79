package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskcal/internal/app"
	"taskcal/internal/config"
	"taskcal/internal/logging"
	"taskcal/internal/storage"
	"taskcal/internal/task"
	"taskcal/internal/view"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newModel(t *testing.T, kv storage.Store) (Model, *app.Session) {
	t.Helper()
	s, err := app.New(kv, app.Options{Now: func() time.Time { return now }})
	require.NoError(t, err)
	return New(s, config.Default(), logging.Discard()), s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestAddFlow(t *testing.T) {
	m, s := newModel(t, storage.NewMemory())

	m = send(t, m, runes("a"))
	assert.Equal(t, modeAdd, m.mode)

	m = send(t, m, runes("Buy milk"), enter)
	assert.Equal(t, modeList, m.mode)
	require.Equal(t, 1, s.Tasks().Len())
	assert.Equal(t, "Buy milk", s.Tasks().Tasks()[0].Text)
	assert.Contains(t, m.View(), "Buy milk")
}

func TestAddEmptyStaysInAddMode(t *testing.T) {
	m, s := newModel(t, storage.NewMemory())
	m = send(t, m, runes("a"), runes("   "), enter)
	assert.Equal(t, modeAdd, m.mode)
	assert.Equal(t, 0, s.Tasks().Len())

	m = send(t, m, esc)
	assert.Equal(t, modeList, m.mode)
}

func TestAddWriteFailureShowsStatus(t *testing.T) {
	kv := storage.NewMemory()
	m, s := newModel(t, kv)
	kv.FailSet = errors.New("disk full")

	m = send(t, m, runes("a"), runes("x"), enter)
	assert.Equal(t, 0, s.Tasks().Len())
	assert.Contains(t, m.status, "disk full")
}

func TestToggleAndDeleteConfirm(t *testing.T) {
	m, s := newModel(t, storage.NewMemory())
	m = send(t, m, runes("a"), runes("first"), enter, runes("a"), runes("second"), enter)
	require.Equal(t, 2, s.Tasks().Len())

	// cursor starts on the newest task
	m = send(t, m, space)
	assert.True(t, s.Tasks().Tasks()[0].Completed)

	m = send(t, m, runes("j"), runes("d"))
	assert.True(t, m.confirmDel)
	m = send(t, m, runes("n"))
	assert.False(t, m.confirmDel)
	assert.Equal(t, 2, s.Tasks().Len())

	m = send(t, m, runes("d"), runes("y"))
	require.Equal(t, 1, s.Tasks().Len())
	assert.Equal(t, "second", s.Tasks().Tasks()[0].Text)
	assert.Equal(t, 0, m.cursor)
}

func TestFilterCycleAndCounts(t *testing.T) {
	m, s := newModel(t, storage.NewMemory())
	m = send(t, m, runes("a"), runes("one"), enter, space)

	m = send(t, m, runes("f"))
	assert.Equal(t, view.StatusPending, s.Filter())
	assert.Empty(t, s.Snapshot().Visible)
	assert.Contains(t, m.View(), "No pending tasks.")

	m = send(t, m, runes("f"))
	assert.Equal(t, view.StatusCompleted, s.Filter())
	assert.Contains(t, m.View(), "Completed (1)")
}

func TestSearchLiveAndCancel(t *testing.T) {
	m, s := newModel(t, storage.NewMemory())
	m = send(t, m, runes("a"), runes("Buy milk"), enter, runes("a"), runes("Walk dog"), enter)

	m = send(t, m, runes("/"), runes("MILK"))
	assert.Equal(t, modeSearch, m.mode)
	require.Len(t, s.Snapshot().Visible, 1)

	m = send(t, m, enter)
	assert.Equal(t, "MILK", s.Search())

	m = send(t, m, runes("/"), esc)
	assert.Equal(t, "", s.Search())
	assert.Len(t, s.Snapshot().Visible, 2)
}

func TestPriorityAndDueForm(t *testing.T) {
	m, s := newModel(t, storage.NewMemory())
	m = send(t, m, runes("p"))
	assert.Equal(t, task.PriorityHigh, s.Priority())

	m = send(t, m, runes("D"), runes("2024-06-20"), enter)
	require.NotNil(t, s.Snapshot().Due)

	m = send(t, m, runes("D"), runes("zzqx"), enter)
	assert.Equal(t, modeDue, m.mode)
	m = send(t, m, esc)

	m = send(t, m, runes("a"), runes("dated"), enter)
	got := s.Tasks().Tasks()[0]
	assert.Equal(t, task.PriorityHigh, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, 20, got.DueDate.Day())
	assert.Nil(t, s.Snapshot().Due)
}

func TestViewToggleRendersCalendar(t *testing.T) {
	kv := storage.NewMemory()
	m, s := newModel(t, kv)
	m = send(t, m, runes("D"), runes("2024-06-20"), enter, runes("a"), runes("dentist"), enter)
	m = send(t, m, runes("a"), runes("someday"), enter)

	m = send(t, m, runes("v"))
	assert.Equal(t, view.ModeCalendar, s.Mode())
	out := m.View()
	assert.Contains(t, out, "June 2024")
	assert.Contains(t, out, "No deadline")
	assert.Contains(t, out, "someday")

	stored, ok, err := kv.Get(view.ModeKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "calendar", stored)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, storage.NewMemory())
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, clampCursor(3, 0))
	assert.Equal(t, 0, clampCursor(-1, 2))
	assert.Equal(t, 1, clampCursor(5, 2))
	assert.Equal(t, 1, clampCursor(1, 2))
}

func TestCalendarCursorSkipsUndrawnTasks(t *testing.T) {
	m, s := newModel(t, storage.NewMemory())
	m = send(t, m, runes("D"), runes("2024-06-20"), enter, runes("a"), runes("june task"), enter)
	m = send(t, m, runes("D"), runes("2024-07-20"), enter, runes("a"), runes("july task"), enter)
	m = send(t, m, runes("a"), runes("floating"), enter)

	m = send(t, m, runes("v"))
	require.Equal(t, view.ModeCalendar, s.Mode())
	assert.NotContains(t, m.View(), "july task")

	m = send(t, m, runes("j"), runes("j"), space)
	byText := map[string]bool{}
	for _, tk := range s.Tasks().Tasks() {
		byText[tk.Text] = tk.Completed
	}
	assert.False(t, byText["july task"])
	assert.False(t, byText["june task"])
	assert.True(t, byText["floating"], "second drawn item is the no-deadline task")

	m = send(t, m, runes("k"), space)
	for _, tk := range s.Tasks().Tasks() {
		byText[tk.Text] = tk.Completed
	}
	assert.True(t, byText["june task"])
	assert.False(t, byText["july task"])
}

func TestEmptyStateMessages(t *testing.T) {
	m, s := newModel(t, storage.NewMemory())
	assert.Contains(t, m.View(), "No tasks yet. Press 'a' to add one.")

	m = send(t, m, runes("a"), runes("open"), enter)
	m = send(t, m, runes("f"), runes("f"))
	require.Equal(t, view.StatusCompleted, s.Filter())
	assert.Contains(t, m.View(), "No completed tasks.")

	m = send(t, m, runes("/"), runes("zebra"), enter)
	assert.Contains(t, m.View(), "No tasks match your search.")
}

func TestOverdueDueDateIsHighlighted(t *testing.T) {
	past := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, colorHigh, dueStyle(task.Task{DueDate: &past}, now).GetForeground())
	assert.Equal(t, colorMuted, dueStyle(task.Task{DueDate: &today}, now).GetForeground())
	assert.Equal(t, colorMuted, dueStyle(task.Task{DueDate: &past, Completed: true}, now).GetForeground())
}
