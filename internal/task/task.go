package task

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return "", false
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return "Unknown"
}

// Task is one to-do item. The JSON layout is the stored format.
type Task struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Priority  Priority   `json:"priority"`
	CreatedAt time.Time  `json:"createdAt"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

func (t Task) HasDue() bool {
	return t.DueDate != nil
}

// DueOn reports whether the task is due on the calendar day of day, read in
// day's location.
func (t Task) DueOn(day time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	y1, m1, d1 := t.DueDate.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Overdue reports whether an open task's due date is a calendar day before
// now's, read in now's location.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	loc := now.Location()
	y, m, d := t.DueDate.In(loc).Date()
	ny, nm, nd := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Before(time.Date(ny, nm, nd, 0, 0, 0, 0, loc))
}
