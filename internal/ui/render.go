package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"taskcal/internal/app"
	"taskcal/internal/calendar"
	"taskcal/internal/duedate"
	"taskcal/internal/task"
	"taskcal/internal/view"
)

const (
	barWidth   = 30
	cellHeight = calendar.MaxVisible + 2
)

func (m Model) View() string {
	snap := m.session.Snapshot()
	var b strings.Builder

	b.WriteString(styleTitle.Render("taskcal") + styleMuted.Render("  "+string(snap.Mode)+" view"))
	b.WriteString("\n\n")
	b.WriteString(renderStats(snap.Stats))
	b.WriteString("\n")
	b.WriteString(renderTabs(snap))
	b.WriteString("\n")
	b.WriteString(renderPending(snap))
	b.WriteString("\n\n")

	if m.mode != modeList {
		b.WriteString(inputLabel(m.mode) + m.input.View())
		b.WriteString("\n\n")
	}

	var selected string
	if items := cursorItems(snap); len(items) > 0 {
		selected = items[clampCursor(m.cursor, len(items))].ID
	}
	if snap.Calendar != nil {
		b.WriteString(m.renderCalendar(*snap.Calendar, selected, snap.Now))
	} else {
		b.WriteString(m.renderList(snap, selected))
	}

	b.WriteString("\n")
	b.WriteString(styleStatus.Render(m.status))
	b.WriteString("\n")
	b.WriteString(styleHelp.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func renderStats(st view.Stats) string {
	line := fmt.Sprintf("Total %d · Done %s · Pending %s",
		st.Total, styleDoneNum.Render(fmt.Sprint(st.Completed)), stylePendNum.Render(fmt.Sprint(st.Pending)))
	pct, ok := st.Percent()
	if !ok {
		return line
	}
	filled := int(st.Ratio()*barWidth + 0.5)
	bar := styleBarFull.Render(strings.Repeat("█", filled)) + styleBarEmpty.Render(strings.Repeat("░", barWidth-filled))
	return line + "\n" + bar + fmt.Sprintf(" %d%%", pct)
}

func renderTabs(snap app.Snapshot) string {
	tabs := make([]string, 0, len(view.Statuses()))
	for _, st := range view.Statuses() {
		label := fmt.Sprintf("%s (%d)", tabLabel(st), snap.Counts[st])
		if st == snap.Filter {
			tabs = append(tabs, styleTabOn.Render(label))
		} else {
			tabs = append(tabs, styleTabOff.Render(label))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if snap.Search != "" {
		line += styleMuted.Render(fmt.Sprintf("  search: %q", snap.Search))
	}
	return line
}

func tabLabel(st view.Status) string {
	switch st {
	case view.StatusPending:
		return "Pending"
	case view.StatusCompleted:
		return "Completed"
	}
	return "All"
}

// renderPending shows what the next added task will get.
func renderPending(snap app.Snapshot) string {
	due := "none"
	if snap.Due != nil {
		due = duedate.Format(snap.Due)
	}
	return styleMuted.Render("new task: ") + priorityStyle(snap.Priority).Render(snap.Priority.Label()) +
		styleMuted.Render(" · due "+due)
}

func (m Model) renderList(snap app.Snapshot, selected string) string {
	if len(snap.Visible) == 0 {
		msg := view.Query{Status: snap.Filter, Search: snap.Search}.EmptyMessage()
		if snap.Stats.Total == 0 {
			msg += fmt.Sprintf(" Press '%s' to add one.", m.cfg.Keys.Add)
		}
		return styleMuted.Render(msg) + "\n"
	}
	var b strings.Builder
	for _, t := range snap.Visible {
		b.WriteString(renderRow(t, t.ID == selected, snap.Now))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRow(t task.Task, selected bool, now time.Time) string {
	cursor := "  "
	if selected {
		cursor = styleCursor.Render("> ")
	}
	check := "[ ]"
	text := t.Text
	if t.Completed {
		check = "[x]"
		text = styleDone.Render(text)
	}
	row := fmt.Sprintf("%s%s %s %s", cursor, check, priorityBadge(t.Priority), text)
	if t.DueDate != nil {
		row += dueStyle(t, now).Render("  due " + duedate.Format(t.DueDate))
	}
	if !t.CreatedAt.IsZero() {
		row += styleMuted.Render("  " + humanize.Time(t.CreatedAt))
	}
	return row
}

func dueStyle(t task.Task, now time.Time) lipgloss.Style {
	if t.Overdue(now) {
		return styleOverdue
	}
	return styleMuted
}

func (m Model) cellWidth() int {
	return max((m.width-2)/7, 8)
}

func (m Model) renderCalendar(month calendar.Month, selected string, now time.Time) string {
	cw := m.cellWidth()
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%s %d", month.Month, month.Year)))
	b.WriteString("\n")

	header := make([]string, 0, 7)
	for _, wd := range calendar.Weekdays(month.WeekStart) {
		header = append(header, styleWeekday.Width(cw).Render(wd.String()[:3]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, week := range month.Weeks() {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			cells = append(cells, renderCell(day, cw, selected))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	if len(month.NoDeadline) > 0 {
		b.WriteString("\n")
		b.WriteString(styleTitle.Render("No deadline"))
		b.WriteString("\n")
		for _, t := range month.NoDeadline {
			b.WriteString(renderRow(t, t.ID == selected, now))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderCell(day *calendar.Day, cw int, selected string) string {
	style := lipgloss.NewStyle().Width(cw).Height(cellHeight)
	if day == nil {
		return style.Render("")
	}
	lines := make([]string, 0, cellHeight)
	num := fmt.Sprintf("%2d", day.Date.Day())
	if day.Today {
		lines = append(lines, styleToday.Render(num))
	} else {
		lines = append(lines, styleDayNum.Render(num))
	}
	for _, t := range day.Visible() {
		prefix := " "
		if t.ID == selected {
			prefix = ">"
		}
		title := prefix + runewidth.Truncate(t.Text, cw-2, "…")
		if t.Completed {
			lines = append(lines, styleDone.Render(title))
		} else {
			lines = append(lines, priorityStyle(t.Priority).Render(title))
		}
	}
	if n := day.Hidden(); n > 0 {
		lines = append(lines, styleMuted.Render(fmt.Sprintf(" +%d", n)))
	}
	return style.Render(strings.Join(lines, "\n"))
}
