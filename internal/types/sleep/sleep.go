package sleep

import "time"

type Log struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	LogDate    string    `json:"log_date"` // YYYY-MM-DD
	Bedtime    string    `json:"bedtime"`  // HH:MM
	WakeTime   string    `json:"wake_time"`
	Quality    int       `json:"quality"`
	TotalHours float64   `json:"total_hours"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LogSleepRequest struct {
	LogDate  string `json:"log_date" validate:"omitempty,datetime=2006-01-02"`
	Bedtime  string `json:"bedtime" validate:"required,datetime=15:04"`
	WakeTime string `json:"wake_time" validate:"required,datetime=15:04"`
	Quality  int    `json:"quality" validate:"required,gte=1,lte=5"`
}

// LogSleepResult reports whether the write created a new row or
// updated the existing one for that day. XP is only awarded on create.
type LogSleepResult struct {
	Log     *Log `json:"log"`
	Created bool `json:"created"`
}
