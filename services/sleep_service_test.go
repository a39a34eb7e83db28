package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstSleepOfDay(t *testing.T) {
	ts := time.Date(2025, 6, 15, 7, 30, 0, 0, time.UTC)

	assert.True(t, firstSleepOfDay(ts, ts), "insert stamps both columns identically")
	assert.False(t, firstSleepOfDay(ts, ts.Add(time.Minute)), "an edited entry must not award XP again")
}
