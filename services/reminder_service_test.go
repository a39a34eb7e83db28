package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) time.Time {
	return time.Date(2025, 6, 15, hour, 30, 0, 0, time.UTC)
}

func TestReminderWindow(t *testing.T) {
	assert.False(t, inWindow(at(8)))
	assert.True(t, inWindow(at(9)))
	assert.True(t, inWindow(at(15)))
	assert.True(t, inWindow(at(20)))
	assert.False(t, inWindow(at(21)))
	assert.False(t, inWindow(at(23)))
}

func TestReminderDebounce(t *testing.T) {
	now := at(12)

	assert.True(t, due(now, time.Time{}), "first check is always due")
	assert.False(t, due(now, now.Add(-30*time.Minute)), "checks inside the hour are suppressed")
	assert.True(t, due(now, now.Add(-time.Hour)))
	assert.True(t, due(now, now.Add(-2*time.Hour)))
}
