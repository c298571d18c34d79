// Package duedate turns what the user typed into a due date. Due dates are
// calendar days, stored as local midnight.
package duedate

import (
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const Layout = "2006-01-02"

// Parse accepts YYYY-MM-DD or natural language such as "tomorrow" or
// "next friday". Empty input means no deadline and returns nil.
func Parse(input string, now time.Time) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if t, err := time.ParseInLocation(Layout, input, now.Location()); err == nil {
		return &t, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return nil, fmt.Errorf("could not parse due date %q", input)
	}
	day := StartOfDay(result.Time.In(now.Location()))
	return &day, nil
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Format renders t as YYYY-MM-DD, or "" for no deadline.
func Format(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(Layout)
}
