package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"habitQuestAPI/internal/timeutil"
	"habitQuestAPI/internal/types/habit"
)

var today = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func boolHabit(id string) habit.Habit {
	return habit.Habit{ID: id, Name: id, Frequency: habit.FrequencyDaily, IsBoolean: true}
}

func quantityHabit(id string, goal int) habit.Habit {
	return habit.Habit{ID: id, Name: id, Frequency: habit.FrequencyDaily, GoalValue: goal, Unit: "reps"}
}

// completedLog adds a qualifying log for the habit N days before today.
func completedLog(h habit.Habit, daysAgo int) habit.Log {
	l := habit.Log{
		HabitID: h.ID,
		LogDate: timeutil.DayKey(today.AddDate(0, 0, -daysAgo)),
	}
	if h.IsBoolean {
		l.Completed = true
	} else {
		l.Value = h.GoalValue
	}
	return l
}

func TestComputeStreakCountsConsecutiveDays(t *testing.T) {
	h1 := boolHabit("read")
	h2 := quantityHabit("pushups", 20)

	snap := &habit.Snapshot{Habits: []habit.Habit{h1, h2}}
	for day := 0; day < 5; day++ {
		snap.Logs = append(snap.Logs, completedLog(h1, day), completedLog(h2, day))
	}

	assert.Equal(t, 5, ComputeStreak(snap, today))
}

func TestComputeStreakTruncatesAtFirstIncompleteDay(t *testing.T) {
	h1 := boolHabit("read")
	h2 := boolHabit("meditate")

	snap := &habit.Snapshot{Habits: []habit.Habit{h1, h2}}
	for day := 0; day < 6; day++ {
		snap.Logs = append(snap.Logs, completedLog(h1, day))
		if day != 3 {
			// day 3 breaks the run: h2 has no qualifying log
			snap.Logs = append(snap.Logs, completedLog(h2, day))
		}
	}

	assert.Equal(t, 3, ComputeStreak(snap, today))
}

func TestComputeStreakQuantityBelowGoalDoesNotCount(t *testing.T) {
	h := quantityHabit("pushups", 20)

	snap := &habit.Snapshot{
		Habits: []habit.Habit{h},
		Logs: []habit.Log{
			{HabitID: h.ID, LogDate: timeutil.DayKey(today), Value: 19},
		},
	}

	assert.Equal(t, 0, ComputeStreak(snap, today))
}

func TestComputeStreakNoDailyHabits(t *testing.T) {
	weekly := habit.Habit{ID: "laundry", Frequency: habit.FrequencyWeekly, IsBoolean: true}
	snap := &habit.Snapshot{Habits: []habit.Habit{weekly}}

	assert.Equal(t, -1, ComputeStreak(snap, today))
}

func TestComputeStreakIsIdempotent(t *testing.T) {
	h := boolHabit("read")
	snap := &habit.Snapshot{Habits: []habit.Habit{h}}
	for day := 0; day < 4; day++ {
		snap.Logs = append(snap.Logs, completedLog(h, day))
	}

	first := ComputeStreak(snap, today)
	second := ComputeStreak(snap, today)
	assert.Equal(t, first, second)
}

func TestComputeStreakCapped(t *testing.T) {
	h := boolHabit("read")
	snap := &habit.Snapshot{Habits: []habit.Habit{h}}
	for day := 0; day < MaxStreakDays+30; day++ {
		snap.Logs = append(snap.Logs, completedLog(h, day))
	}

	assert.Equal(t, MaxStreakDays, ComputeStreak(snap, today))
}

func TestWeeklyCompletionMixedDays(t *testing.T) {
	h1 := boolHabit("read")
	h2 := boolHabit("meditate")

	snap := &habit.Snapshot{Habits: []habit.Habit{h1, h2}}
	// today both done, yesterday one done, older days nothing
	snap.Logs = append(snap.Logs, completedLog(h1, 0), completedLog(h2, 0), completedLog(h1, 1))

	weekly := WeeklyCompletion(snap, today)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 50, 100}, weekly)
}

func TestWeeklyCompletionNoDailyHabits(t *testing.T) {
	snap := &habit.Snapshot{}

	weekly := WeeklyCompletion(snap, today)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, weekly)

	summary := Summarize(snap, nil, today)
	assert.Equal(t, 0, summary.TodayPercent)
	assert.Equal(t, 0, summary.WeekAverage)
	assert.Equal(t, 0.0, summary.AvgSleepHours)
}

func TestSummarize(t *testing.T) {
	h := boolHabit("read")
	snap := &habit.Snapshot{Habits: []habit.Habit{h}}
	for day := 0; day < 7; day++ {
		snap.Logs = append(snap.Logs, completedLog(h, day))
	}

	summary := Summarize(snap, []float64{8.0, 6.0}, today)
	assert.Equal(t, 100, summary.TodayPercent)
	assert.Equal(t, 100, summary.WeekAverage)
	assert.Equal(t, 7.0, summary.AvgSleepHours)
	assert.Len(t, summary.Weekly, 7)
}
