package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DayKey normalizes a timestamp to its calendar-day key, the format
// habit and sleep logs are keyed by.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseClock converts an HH:MM local-clock value to minutes since midnight.
func ParseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", v)
	}
	return h*60 + m, nil
}

// SleepDuration computes elapsed hours between bedtime and wake time,
// both HH:MM clock values, rounded to one decimal. A wake time earlier
// on the clock than bedtime is taken as crossing midnight, so the
// result is always the forward interval to the next occurrence of the
// wake time: never negative, never more than 24 hours.
func SleepDuration(bedtime, wakeTime string) (float64, error) {
	bed, err := ParseClock(bedtime)
	if err != nil {
		return 0, err
	}
	wake, err := ParseClock(wakeTime)
	if err != nil {
		return 0, err
	}
	if wake < bed {
		wake += 24 * 60
	}
	hours := float64(wake-bed) / 60.0
	return math.Round(hours*10) / 10, nil
}
