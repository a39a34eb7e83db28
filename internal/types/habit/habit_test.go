package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCompleteBooleanHabit(t *testing.T) {
	h := &Habit{IsBoolean: true}

	assert.False(t, h.IsComplete(nil))
	assert.False(t, h.IsComplete(&Log{Completed: false}))
	assert.True(t, h.IsComplete(&Log{Completed: true}))
}

func TestIsCompleteQuantityHabit(t *testing.T) {
	h := &Habit{IsBoolean: false, GoalValue: 8, Unit: "glasses"}

	assert.False(t, h.IsComplete(nil))
	assert.False(t, h.IsComplete(&Log{Value: 7}))
	assert.True(t, h.IsComplete(&Log{Value: 8}))
	assert.True(t, h.IsComplete(&Log{Value: 12}))
	// completed flag is ignored for quantity habits
	assert.False(t, h.IsComplete(&Log{Completed: true, Value: 0}))
}

func TestSnapshotDailyHabits(t *testing.T) {
	snap := &Snapshot{Habits: []Habit{
		{ID: "a", Frequency: FrequencyDaily},
		{ID: "b", Frequency: FrequencyWeekly},
		{ID: "c", Frequency: FrequencyDaily},
	}}

	daily := snap.DailyHabits()
	assert.Len(t, daily, 2)
	assert.Equal(t, "a", daily[0].ID)
	assert.Equal(t, "c", daily[1].ID)
}

func TestSnapshotLogsByDay(t *testing.T) {
	snap := &Snapshot{Logs: []Log{
		{HabitID: "a", LogDate: "2025-06-14", Value: 3},
		{HabitID: "a", LogDate: "2025-06-15", Value: 5},
		{HabitID: "b", LogDate: "2025-06-15", Completed: true},
	}}

	byDay := snap.LogsByDay()
	assert.Equal(t, 5, byDay["a"]["2025-06-15"].Value)
	assert.True(t, byDay["b"]["2025-06-15"].Completed)
	assert.Nil(t, byDay["b"]["2025-06-14"])
}
