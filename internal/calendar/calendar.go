// Package calendar buckets tasks by due date onto the grid of the month that
// contains "now".
package calendar

import (
	"time"

	"taskcal/internal/task"
)

// MaxVisible is how many tasks a day cell lists before summarising the rest.
const MaxVisible = 3

type Day struct {
	Date  time.Time
	Today bool
	Tasks []task.Task
}

// Visible returns at most MaxVisible tasks.
func (d *Day) Visible() []task.Task {
	if len(d.Tasks) > MaxVisible {
		return d.Tasks[:MaxVisible]
	}
	return d.Tasks
}

// Hidden is the "+N" count of tasks not in Visible.
func (d *Day) Hidden() int {
	if len(d.Tasks) > MaxVisible {
		return len(d.Tasks) - MaxVisible
	}
	return 0
}

type Month struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	// Cells holds nil padding up to the weekday of day 1, then one Day per
	// day of the month.
	Cells      []*Day
	NoDeadline []task.Task
}

// Build lays out the month of now. Due dates are compared as calendar dates
// in now's location.
func Build(tasks []task.Task, now time.Time, weekStart time.Weekday) Month {
	loc := now.Location()
	year, month, today := now.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)

	m := Month{Year: year, Month: month, WeekStart: weekStart}
	m.Cells = make([]*Day, offset(first.Weekday(), weekStart), offset(first.Weekday(), weekStart)+last.Day())
	for d := 1; d <= last.Day(); d++ {
		m.Cells = append(m.Cells, &Day{
			Date:  time.Date(year, month, d, 0, 0, 0, 0, loc),
			Today: d == today,
		})
	}

	for _, t := range tasks {
		if t.DueDate == nil {
			m.NoDeadline = append(m.NoDeadline, t)
			continue
		}
		y, mo, d := t.DueDate.In(loc).Date()
		if y != year || mo != month {
			continue
		}
		day := m.Day(d)
		day.Tasks = append(day.Tasks, t)
	}
	return m
}

// Day returns the cell for day-of-month n, or nil when out of range.
func (m Month) Day(n int) *Day {
	pad := m.Padding()
	i := pad + n - 1
	if n < 1 || i >= len(m.Cells) {
		return nil
	}
	return m.Cells[i]
}

// Padding is the number of empty cells before day 1.
func (m Month) Padding() int {
	for i, c := range m.Cells {
		if c != nil {
			return i
		}
	}
	return len(m.Cells)
}

// Weeks splits the cells into rows of seven, padding the last row with nil.
func (m Month) Weeks() [][]*Day {
	var weeks [][]*Day
	for i := 0; i < len(m.Cells); i += 7 {
		row := make([]*Day, 7)
		copy(row, m.Cells[i:min(i+7, len(m.Cells))])
		weeks = append(weeks, row)
	}
	return weeks
}

// Shown lists the tasks the grid draws, in date order, followed by the
// tasks without a deadline. Overflow hidden behind "+N" is left out.
func (m Month) Shown() []task.Task {
	var out []task.Task
	for _, c := range m.Cells {
		if c != nil {
			out = append(out, c.Visible()...)
		}
	}
	return append(out, m.NoDeadline...)
}

// Weekdays returns column headers starting at weekStart.
func Weekdays(weekStart time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7)
	}
	return out
}

func offset(day, weekStart time.Weekday) int {
	return (int(day) - int(weekStart) + 7) % 7
}
