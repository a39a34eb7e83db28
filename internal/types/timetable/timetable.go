package timetable

import "time"

// Entry is one class slot in the weekly timetable. Entries may overlap
// freely; no validation is done across rows.
type Entry struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	CourseName string    `json:"course_name"`
	DayOfWeek  int       `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime  string    `json:"start_time"`  // HH:MM
	EndTime    string    `json:"end_time"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateEntryRequest struct {
	CourseName string `json:"course_name" validate:"required,max=120"`
	DayOfWeek  int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime  string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string `json:"end_time" validate:"required,datetime=15:04"`
}

type UpdateEntryRequest struct {
	CourseName string `json:"course_name" validate:"required,max=120"`
	DayOfWeek  int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime  string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string `json:"end_time" validate:"required,datetime=15:04"`
}
