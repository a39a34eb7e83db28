package utils

import (
	"fmt"
	"strings"

	"habitQuestAPI/internal/types/habit"
	"habitQuestAPI/internal/types/timetable"
)

// BuildReminderPrompt asks for a short nudge about one unfinished habit.
func BuildReminderPrompt(h *habit.Habit) string {
	goal := "check it off"
	if !h.IsBoolean {
		goal = fmt.Sprintf("reach %d %s", h.GoalValue, h.Unit)
	}
	return fmt.Sprintf(
		"Write a single short motivational sentence (under 20 words, no quotes) reminding a student to do their habit %q today. The goal is to %s.",
		h.Name, goal,
	)
}

// BuildPlanPrompt embeds today's class schedule and daily habits into a
// structured daily-plan request.
func BuildPlanPrompt(entries []timetable.Entry, dailyHabits []habit.Habit) string {
	var b strings.Builder

	b.WriteString("Create a realistic hour-by-hour plan for a student's day. Keep it under 200 words, plain text.\n")

	b.WriteString("Today's classes:\n")
	if len(entries) == 0 {
		b.WriteString("- none\n")
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s from %s to %s\n", e.CourseName, e.StartTime, e.EndTime)
	}

	b.WriteString("Daily habits to fit in:\n")
	if len(dailyHabits) == 0 {
		b.WriteString("- none\n")
	}
	for _, h := range dailyHabits {
		if h.IsBoolean {
			fmt.Fprintf(&b, "- %s\n", h.Name)
		} else {
			fmt.Fprintf(&b, "- %s (%d %s)\n", h.Name, h.GoalValue, h.Unit)
		}
	}

	return b.String()
}
