package duedate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 30, 15, 4, 5, 0, time.UTC)

func TestParseEmptyIsNoDeadline(t *testing.T) {
	for _, in := range []string{"", "  "} {
		got, err := Parse(in, now)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestParseISODateIsLocalMidnight(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	got, err := Parse("2024-06-01", now.In(tokyo))
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, tokyo), *got)
	assert.Equal(t, "2024-06-01", Format(got))
}

func TestParseNaturalLanguage(t *testing.T) {
	got, err := Parse("tomorrow", now)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "2024-05-31", Format(got))
	assert.Zero(t, got.Hour())
	assert.Zero(t, got.Minute())
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("qwzx plorb", now)
	assert.Error(t, err)
}

func TestFormatNil(t *testing.T) {
	assert.Equal(t, "", Format(nil))
}

func TestStartOfDay(t *testing.T) {
	assert.Equal(t, time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC), StartOfDay(now))
}
