package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	for _, in := range []string{"low", "Medium", " HIGH "} {
		_, ok := ParsePriority(in)
		assert.True(t, ok, in)
	}
	_, ok := ParsePriority("urgent")
	assert.False(t, ok)
}

func TestPriorityNextCycles(t *testing.T) {
	assert.Equal(t, PriorityMedium, PriorityLow.Next())
	assert.Equal(t, PriorityHigh, PriorityMedium.Next())
	assert.Equal(t, PriorityLow, PriorityHigh.Next())
}

func TestDueOnIgnoresTimeOfDay(t *testing.T) {
	due := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
	tk := Task{DueDate: &due}

	assert.True(t, tk.DueOn(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, tk.DueOn(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, Task{}.DueOn(due))
}

func TestOverdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	day := func(d int) *time.Time {
		v := time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	assert.True(t, Task{DueDate: day(14)}.Overdue(now))
	assert.False(t, Task{DueDate: day(15)}.Overdue(now), "due today is not overdue")
	assert.False(t, Task{DueDate: day(16)}.Overdue(now))
	assert.False(t, Task{DueDate: day(14), Completed: true}.Overdue(now))
	assert.False(t, Task{}.Overdue(now))
}

func TestOverdueUsesNowsCalendarDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-06-14 20:00 UTC is already 2024-06-15 in Tokyo.
	due := time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, tokyo)
	assert.False(t, Task{DueDate: &due}.Overdue(now))
	assert.True(t, Task{DueDate: &due}.Overdue(now.AddDate(0, 0, 1)))
}
