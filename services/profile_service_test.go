package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAwardMessagePriority(t *testing.T) {
	assert.Equal(t, "Level up! You reached level 2", awardMessage(1, 2, XPHabitCompleted, "Sleep logged!"),
		"a level-up outranks the caller's message")
	assert.Equal(t, "Sleep logged!", awardMessage(1, 1, XPSleepLogged, "Sleep logged!"))
	assert.Equal(t, fmt.Sprintf("+%d XP", XPHabitCompleted), awardMessage(1, 1, XPHabitCompleted, ""))
}

func TestNextStreakState(t *testing.T) {
	cur, max, changed, celebrate := nextStreakState(3, 10, 4)
	assert.Equal(t, 4, cur)
	assert.Equal(t, 10, max, "max is untouched while below it")
	assert.True(t, changed)
	assert.False(t, celebrate)

	cur, max, changed, _ = nextStreakState(10, 10, 11)
	assert.Equal(t, 11, cur)
	assert.Equal(t, 11, max, "max follows a new record")
	assert.True(t, changed)
}

func TestNextStreakStateMaxNeverDecreases(t *testing.T) {
	_, max, changed, _ := nextStreakState(12, 12, 0)
	assert.Equal(t, 12, max, "a broken streak keeps the record")
	assert.True(t, changed)

	_, max, _, _ = nextStreakState(0, 12, 5)
	assert.Equal(t, 12, max)
}

func TestNextStreakStateNoChange(t *testing.T) {
	cur, max, changed, celebrate := nextStreakState(5, 9, 5)
	assert.Equal(t, 5, cur)
	assert.Equal(t, 9, max)
	assert.False(t, changed, "same value means nothing to persist")
	assert.False(t, celebrate)

	_, _, changed, _ = nextStreakState(5, 9, -1)
	assert.False(t, changed, "no daily habits leaves the streak alone")
}

func TestNextStreakStateCelebration(t *testing.T) {
	_, _, _, celebrate := nextStreakState(6, 6, StreakMilestone)
	assert.True(t, celebrate)

	_, _, _, celebrate = nextStreakState(StreakMilestone, StreakMilestone, StreakMilestone)
	assert.False(t, celebrate, "an unchanged recomputation never re-celebrates")

	_, _, _, celebrate = nextStreakState(StreakMilestone, StreakMilestone, StreakMilestone+1)
	assert.False(t, celebrate, "only the milestone day itself celebrates")
}
