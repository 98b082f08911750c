package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 15, hour, min, 0, 0, time.UTC)
}

func TestShiftContains(t *testing.T) {
	day := &Shift{StartTime: "06:00", EndTime: "22:00"}

	assert.True(t, day.Contains(at(6, 0)), "window start is inclusive")
	assert.True(t, day.Contains(at(12, 30)))
	assert.True(t, day.Contains(at(21, 59)))
	assert.False(t, day.Contains(at(22, 0)), "window end is exclusive")
	assert.False(t, day.Contains(at(5, 59)))
	assert.False(t, day.CrossesMidnight())
}

func TestShiftContainsMidnightWrap(t *testing.T) {
	night := &Shift{StartTime: "22:00", EndTime: "06:00"}

	assert.True(t, night.CrossesMidnight())
	assert.True(t, night.Contains(at(22, 0)))
	assert.True(t, night.Contains(at(23, 59)))
	assert.True(t, night.Contains(at(0, 0)))
	assert.True(t, night.Contains(at(5, 59)))
	assert.False(t, night.Contains(at(6, 0)))
	assert.False(t, night.Contains(at(12, 0)))
}

func TestMinutesOfDay(t *testing.T) {
	m, err := MinutesOfDay("08:30")
	assert.NoError(t, err)
	assert.Equal(t, 510, m)

	m, err = MinutesOfDay("00:00")
	assert.NoError(t, err)
	assert.Equal(t, 0, m)

	for _, bad := range []string{"", "8", "24:00", "12:60", "ab:cd", "12-30"} {
		_, err = MinutesOfDay(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}
