// Package view derives what a surface shows from the task collection: the
// filtered list, the progress statistics and the persisted display mode.
package view

import (
	"strings"

	"taskcal/internal/task"
)

type Status string

const (
	StatusAll       Status = "all"
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

// Statuses in tab order.
func Statuses() []Status {
	return []Status{StatusAll, StatusPending, StatusCompleted}
}

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAll, StatusCompleted, StatusPending:
		return st, true
	}
	return "", false
}

// Next cycles through Statuses.
func (s Status) Next() Status {
	all := Statuses()
	for i, st := range all {
		if st == s {
			return all[(i+1)%len(all)]
		}
	}
	return StatusAll
}

func (s Status) Match(t task.Task) bool {
	switch s {
	case StatusCompleted:
		return t.Completed
	case StatusPending:
		return !t.Completed
	default:
		return true
	}
}

type Query struct {
	Status Status
	Search string
}

// Matches reports whether text contains the search query, ignoring case. A
// blank query matches everything; otherwise the query is used untrimmed.
func (q Query) Matches(text string) bool {
	if strings.TrimSpace(q.Search) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(q.Search))
}

// EmptyMessage explains why a filtered list is empty. A search takes
// precedence over the status tab.
func (q Query) EmptyMessage() string {
	switch {
	case strings.TrimSpace(q.Search) != "":
		return "No tasks match your search."
	case q.Status == StatusCompleted:
		return "No completed tasks."
	case q.Status == StatusPending:
		return "No pending tasks."
	}
	return "No tasks yet."
}

// Filter returns the tasks passing both the status and the search predicate,
// in source order.
func Filter(tasks []task.Task, q Query) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Status.Match(t) && q.Matches(t.Text) {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns how many tasks each status filter would show, ignoring search.
func Counts(tasks []task.Task) map[Status]int {
	counts := map[Status]int{StatusAll: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			counts[StatusCompleted]++
		} else {
			counts[StatusPending]++
		}
	}
	return counts
}
