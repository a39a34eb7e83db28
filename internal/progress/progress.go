// Package progress holds the pure computations over a user's habit
// snapshot: the consecutive-day streak and the 7-day completion series.
// Nothing here touches the database; services load a snapshot and pass
// it in, which keeps these functions deterministic under test.
package progress

import (
	"math"
	"time"

	"habitQuestAPI/internal/timeutil"
	"habitQuestAPI/internal/types/habit"
)

// MaxStreakDays bounds the backward walk so pathological log data can
// never spin the computation for years of dates.
const MaxStreakDays = 365

// WeekDays is the length of the weekly completion series.
const WeekDays = 7

// dayCompleted reports whether every daily habit has a qualifying log
// on the given day. A missing log counts as incomplete.
func dayCompleted(daily []habit.Habit, logsByDay map[string]map[string]*habit.Log, day string) bool {
	for i := range daily {
		h := &daily[i]
		if !h.IsComplete(logsByDay[h.ID][day]) {
			return false
		}
	}
	return true
}

// dayPercent is the share of daily habits completed on the given day,
// rounded to the nearest integer. Zero daily habits yields 0.
func dayPercent(daily []habit.Habit, logsByDay map[string]map[string]*habit.Log, day string) int {
	if len(daily) == 0 {
		return 0
	}
	done := 0
	for i := range daily {
		h := &daily[i]
		if h.IsComplete(logsByDay[h.ID][day]) {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(daily)) * 100))
}

// ComputeStreak walks backward one calendar day at a time from today,
// counting days on which all daily habits were completed, and stops at
// the first day that was not. Capped at MaxStreakDays. Returns -1 when
// there are no daily habits, meaning the caller should leave the stored
// streak untouched.
func ComputeStreak(snap *habit.Snapshot, today time.Time) int {
	daily := snap.DailyHabits()
	if len(daily) == 0 {
		return -1
	}

	logsByDay := snap.LogsByDay()
	streak := 0
	for streak < MaxStreakDays {
		day := timeutil.DayKey(today.AddDate(0, 0, -streak))
		if !dayCompleted(daily, logsByDay, day) {
			break
		}
		streak++
	}
	return streak
}

// WeeklyCompletion returns the completion percentage for the 7 calendar
// days ending today inclusive, oldest first.
func WeeklyCompletion(snap *habit.Snapshot, today time.Time) []int {
	daily := snap.DailyHabits()
	logsByDay := snap.LogsByDay()

	series := make([]int, WeekDays)
	for i := 0; i < WeekDays; i++ {
		day := timeutil.DayKey(today.AddDate(0, 0, i-(WeekDays-1)))
		series[i] = dayPercent(daily, logsByDay, day)
	}
	return series
}

// Summary bundles the dashboard statistics derived from one snapshot.
type Summary struct {
	Weekly        []int   `json:"weekly"`
	TodayPercent  int     `json:"today_percent"`
	WeekAverage   int     `json:"week_average"`
	AvgSleepHours float64 `json:"avg_sleep_hours"`
}

// Summarize derives today's percentage, the unweighted 7-day average
// and the mean sleep duration across all provided totals (0.0 if none).
func Summarize(snap *habit.Snapshot, sleepHours []float64, today time.Time) Summary {
	weekly := WeeklyCompletion(snap, today)

	sum := 0
	for _, p := range weekly {
		sum += p
	}

	avgSleep := 0.0
	if len(sleepHours) > 0 {
		total := 0.0
		for _, h := range sleepHours {
			total += h
		}
		avgSleep = total / float64(len(sleepHours))
	}

	return Summary{
		Weekly:        weekly,
		TodayPercent:  weekly[WeekDays-1],
		WeekAverage:   int(math.Round(float64(sum) / WeekDays)),
		AvgSleepHours: avgSleep,
	}
}
