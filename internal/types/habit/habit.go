package habit

import "time"

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

type Habit struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Frequency Frequency `json:"frequency"`
	IsBoolean bool      `json:"is_boolean"`
	GoalValue int       `json:"goal_value"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Log struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	HabitID   string    `json:"habit_id"`
	LogDate   string    `json:"log_date"` // YYYY-MM-DD
	Completed bool      `json:"completed"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsComplete is the single completion predicate shared by the streak
// engine, the progress aggregator and the dashboard: a boolean habit
// needs its completed flag, a quantity habit needs value >= goal.
func (h *Habit) IsComplete(l *Log) bool {
	if l == nil {
		return false
	}
	if h.IsBoolean {
		return l.Completed
	}
	return l.Value >= h.GoalValue
}

type CreateHabitRequest struct {
	Name      string    `json:"name" validate:"required,max=120"`
	Frequency Frequency `json:"frequency" validate:"required,oneof=daily weekly"`
	IsBoolean bool      `json:"is_boolean"`
	GoalValue int       `json:"goal_value" validate:"omitempty,gte=1"`
	Unit      string    `json:"unit" validate:"max=30"`
}

type UpdateHabitRequest struct {
	Name      string    `json:"name" validate:"required,max=120"`
	Frequency Frequency `json:"frequency" validate:"required,oneof=daily weekly"`
	IsBoolean bool      `json:"is_boolean"`
	GoalValue int       `json:"goal_value" validate:"omitempty,gte=1"`
	Unit      string    `json:"unit" validate:"max=30"`
}

type LogHabitRequest struct {
	Completed bool `json:"completed"`
	Value     int  `json:"value" validate:"gte=0"`
}

// Snapshot is the in-memory view of a user's habit history that the
// pure computations (streak, weekly progress) run over. It is rebuilt
// wholesale from the store on each load, never reconciled in place.
type Snapshot struct {
	Habits []Habit
	Logs   []Log
}

// DailyHabits returns the habits subject to streak computation.
func (s *Snapshot) DailyHabits() []Habit {
	var daily []Habit
	for _, h := range s.Habits {
		if h.Frequency == FrequencyDaily {
			daily = append(daily, h)
		}
	}
	return daily
}

// LogsByDay indexes logs as habitID -> logDate -> log.
func (s *Snapshot) LogsByDay() map[string]map[string]*Log {
	byDay := make(map[string]map[string]*Log)
	for i := range s.Logs {
		l := &s.Logs[i]
		if byDay[l.HabitID] == nil {
			byDay[l.HabitID] = make(map[string]*Log)
		}
		byDay[l.HabitID][l.LogDate] = l
	}
	return byDay
}
