package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRangeUTC(t *testing.T) {
	value := time.Date(2026, 5, 14, 18, 42, 7, 0, time.UTC)
	start, end := DayRange(value, time.UTC)
	assert.Equal(t, time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestDayRangeCrossesZoneBoundary(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	// 23:00 UTC on the 14th is already the 15th in Shanghai.
	value := time.Date(2026, 5, 14, 23, 0, 0, 0, time.UTC)
	start, _ := DayRange(value, shanghai)
	assert.Equal(t, 15, start.Day())

	start, _ = DayRange(value, time.UTC)
	assert.Equal(t, 14, start.Day())
}

func TestDayRangeNilLocationFallsBackToLocal(t *testing.T) {
	value := time.Now()
	start, end := DayRange(value, nil)
	assert.False(t, start.After(value))
	assert.True(t, end.After(value))
	assert.Equal(t, start.AddDate(0, 0, 1), end)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2026, time.February, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 5, 14, 0, 30, 0, 0, time.UTC)
	b := time.Date(2026, 5, 14, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 5, 15, 0, 0, 1, 0, time.UTC)
	assert.True(t, SameDay(a, b, time.UTC))
	assert.False(t, SameDay(b, c, time.UTC))
}
