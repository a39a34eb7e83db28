package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	ts := time.Date(2025, 3, 9, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", DayKey(ts))
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	assert.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = ParseClock("00:00")
	assert.NoError(t, err)
	assert.Equal(t, 0, m)

	for _, bad := range []string{"", "24:00", "12:60", "noon", "9"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestSleepDurationAcrossMidnight(t *testing.T) {
	hours, err := SleepDuration("23:00", "07:00")
	assert.NoError(t, err)
	assert.Equal(t, 8.0, hours)
}

func TestSleepDurationSameEvening(t *testing.T) {
	hours, err := SleepDuration("07:00", "08:00")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, hours)
}

func TestSleepDurationRoundsToOneDecimal(t *testing.T) {
	hours, err := SleepDuration("22:50", "06:30")
	assert.NoError(t, err)
	assert.Equal(t, 7.7, hours)
}

func TestSleepDurationNeverExceeds24Hours(t *testing.T) {
	// wake one minute before bedtime: almost a full day forward
	hours, err := SleepDuration("12:00", "11:59")
	assert.NoError(t, err)
	assert.Greater(t, hours, 23.9)
	assert.LessOrEqual(t, hours, 24.0)
}
