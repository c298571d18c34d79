package view

import (
	"math"

	"taskcal/internal/task"
)

type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// Summarize counts over the full, unfiltered collection.
func Summarize(tasks []task.Task) Stats {
	var st Stats
	st.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

// Percent is the rounded completion percentage. It is undefined, reported
// as false, for an empty collection.
func (s Stats) Percent() (int, bool) {
	if s.Total <= 0 {
		return 0, false
	}
	return int(math.Round(float64(s.Completed) / float64(s.Total) * 100)), true
}

// Ratio is Completed/Total in [0, 1], for progress bars. Zero when empty.
func (s Stats) Ratio() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}
