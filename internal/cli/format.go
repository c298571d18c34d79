package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"taskcal/internal/app"
	"taskcal/internal/calendar"
	"taskcal/internal/duedate"
	"taskcal/internal/task"
	"taskcal/internal/view"
)

const shortIDLen = 8

var (
	colorHigh   = color.New(color.FgRed, color.Bold)
	colorMedium = color.New(color.FgYellow)
	colorLow    = color.New(color.FgGreen)
	colorDim    = color.New(color.Faint)
	colorHeader = color.New(color.FgCyan, color.Bold)
	colorToday  = color.New(color.FgBlue, color.Bold, color.Underline)
	colorDue    = color.New(color.FgBlue)
	colorLate   = color.New(color.FgRed)
)

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func priorityColor(p task.Priority) *color.Color {
	switch p {
	case task.PriorityHigh:
		return colorHigh
	case task.PriorityMedium:
		return colorMedium
	default:
		return colorLow
	}
}

func formatTask(t task.Task, now time.Time) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	prio := priorityColor(t.Priority).Sprintf("%-6s", t.Priority.Label())
	line := fmt.Sprintf("%s  %s %s  %s", shortID(t.ID), check, prio, t.Text)
	if t.DueDate != nil {
		due := colorDue
		if t.Overdue(now) {
			due = colorLate
		}
		line += "  " + due.Sprint("due "+duedate.Format(t.DueDate))
	}
	if !t.CreatedAt.IsZero() {
		line += "  (" + humanize.Time(t.CreatedAt) + ")"
	}
	if t.Completed {
		return colorDim.Sprint(line)
	}
	return line
}

func printList(w io.Writer, snap app.Snapshot) error {
	if len(snap.Visible) == 0 {
		fmt.Fprintln(w, view.Query{Status: snap.Filter, Search: snap.Search}.EmptyMessage())
	}
	for _, t := range snap.Visible {
		fmt.Fprintln(w, formatTask(t, snap.Now))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, statsLine(snap.Stats))
	return nil
}

func statsLine(st view.Stats) string {
	line := fmt.Sprintf("%d %s · %d done · %d pending",
		st.Total, plural(st.Total, "task"), st.Completed, st.Pending)
	if pct, ok := st.Percent(); ok {
		line += fmt.Sprintf(" · %d%%", pct)
	}
	return line
}

func printStats(w io.Writer, st view.Stats) {
	fmt.Fprintf(w, "Total:     %d\n", st.Total)
	fmt.Fprintf(w, "Completed: %d\n", st.Completed)
	fmt.Fprintf(w, "Pending:   %d\n", st.Pending)
	if pct, ok := st.Percent(); ok {
		fmt.Fprintf(w, "Progress:  %d%%\n", pct)
	} else {
		fmt.Fprintln(w, "Progress:  -")
	}
}

// printCalendar writes the month grid, marking days with tasks, followed by
// an agenda of those days and the tasks without a deadline.
func printCalendar(w io.Writer, m calendar.Month, now time.Time) {
	fmt.Fprintln(w, colorHeader.Sprintf("%s %d", m.Month, m.Year))

	names := make([]string, 0, 7)
	for _, wd := range calendar.Weekdays(m.WeekStart) {
		names = append(names, fmt.Sprintf("%-4s", wd.String()[:2]))
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(names, ""), " "))

	for _, week := range m.Weeks() {
		var b strings.Builder
		for _, day := range week {
			if day == nil {
				b.WriteString("    ")
				continue
			}
			mark := " "
			if len(day.Tasks) > 0 {
				mark = "*"
			}
			num := fmt.Sprintf("%2d", day.Date.Day())
			if day.Today {
				num = colorToday.Sprint(num)
			}
			b.WriteString(num + mark + " ")
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	var agenda bool
	for _, day := range m.Cells {
		if day == nil || len(day.Tasks) == 0 {
			continue
		}
		if !agenda {
			fmt.Fprintln(w)
			agenda = true
		}
		fmt.Fprintln(w, colorHeader.Sprint(day.Date.Format("Mon Jan 02")))
		for _, t := range day.Visible() {
			fmt.Fprintln(w, "  "+formatTask(t, now))
		}
		if n := day.Hidden(); n > 0 {
			fmt.Fprintln(w, colorDim.Sprintf("  +%d", n))
		}
	}

	if len(m.NoDeadline) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, colorHeader.Sprint("No deadline"))
		for _, t := range m.NoDeadline {
			fmt.Fprintln(w, "  "+formatTask(t, now))
		}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
