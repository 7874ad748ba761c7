package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeeklyPeriod_AnchorYesterday(t *testing.T) {
	// Given: a fixed "now" in the middle of a day
	now := time.Date(2026, 8, 23, 15, 42, 10, 0, time.Local)

	// When
	p := NewWeeklyPeriod(now, AnchorYesterday)

	// Then: end = yesterday, start = end - 6 days, 7 inclusive days
	assert.Equal(t, time.Date(2026, 8, 22, 0, 0, 0, 0, time.Local), p.EndDate)
	assert.Equal(t, time.Date(2026, 8, 16, 0, 0, 0, 0, time.Local), p.StartDate)
	assert.Equal(t, 7, p.Days())

	assert.Equal(t, p.StartDate.Unix(), p.StartTimestamp)
	// The window ends one second before the midnight after EndDate.
	assert.Equal(t, p.EndDate.AddDate(0, 0, 1).Unix()-1, p.EndTimestamp)
}

func TestNewWeeklyPeriod_AnchorToday(t *testing.T) {
	now := time.Date(2026, 8, 23, 9, 0, 0, 0, time.Local)

	p := NewWeeklyPeriod(now, AnchorToday)

	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.Local), p.EndDate)
	assert.Equal(t, time.Date(2026, 8, 16, 0, 0, 0, 0, time.Local), p.StartDate)
}

func TestNewWeeklyPeriod_UnknownAnchorDefaultsToYesterday(t *testing.T) {
	now := time.Date(2026, 8, 23, 9, 0, 0, 0, time.Local)

	p := NewWeeklyPeriod(now, Anchor(""))

	require.Equal(t, time.Date(2026, 8, 22, 0, 0, 0, 0, time.Local), p.EndDate)
}

func TestNewWeeklyPeriod_WindowCoversWholeDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 1, 0, time.Local)

	p := NewWeeklyPeriod(now, AnchorYesterday)

	// One second after the window there must be a new day.
	next := time.Unix(p.EndTimestamp+1, 0)
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(p.EndDate))
}

func TestQueryResult_Empty(t *testing.T) {
	var nilResult *QueryResult
	assert.True(t, nilResult.Empty())
	assert.True(t, (&QueryResult{Columns: []string{"a"}}).Empty())
	assert.False(t, (&QueryResult{Rows: [][]any{{1}}}).Empty())
}
