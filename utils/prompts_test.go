package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"habitQuestAPI/internal/types/habit"
	"habitQuestAPI/internal/types/timetable"
)

func TestBuildReminderPrompt(t *testing.T) {
	boolean := &habit.Habit{Name: "Meditate", IsBoolean: true}
	prompt := BuildReminderPrompt(boolean)
	assert.Contains(t, prompt, "Meditate")
	assert.Contains(t, prompt, "check it off")

	quantity := &habit.Habit{Name: "Drink water", GoalValue: 8, Unit: "glasses"}
	prompt = BuildReminderPrompt(quantity)
	assert.Contains(t, prompt, "Drink water")
	assert.Contains(t, prompt, "8 glasses")
}

func TestBuildPlanPromptEmbedsScheduleAndHabits(t *testing.T) {
	entries := []timetable.Entry{
		{CourseName: "Linear Algebra", StartTime: "09:00", EndTime: "10:30"},
		{CourseName: "Databases", StartTime: "13:00", EndTime: "14:30"},
	}
	habits := []habit.Habit{
		{Name: "Read", IsBoolean: true, Frequency: habit.FrequencyDaily},
		{Name: "Pushups", GoalValue: 20, Unit: "reps", Frequency: habit.FrequencyDaily},
	}

	prompt := BuildPlanPrompt(entries, habits)
	assert.Contains(t, prompt, "Linear Algebra from 09:00 to 10:30")
	assert.Contains(t, prompt, "Databases from 13:00 to 14:30")
	assert.Contains(t, prompt, "- Read\n")
	assert.Contains(t, prompt, "Pushups (20 reps)")
}

func TestBuildPlanPromptEmptyDay(t *testing.T) {
	prompt := BuildPlanPrompt(nil, nil)
	assert.Contains(t, prompt, "- none")
}
