package profile

import "time"

// XPPerLevel is the amount of experience needed to advance one level.
const XPPerLevel = 200

type Profile struct {
	ID            string    `json:"id"`
	ClerkID       string    `json:"clerkId"`
	XP            int       `json:"xp"`
	Level         int       `json:"level"`
	CurrentStreak int       `json:"current_streak"`
	MaxStreak     int       `json:"max_streak"`
	DarkMode      bool      `json:"dark_mode"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LevelForXP derives the level tier from an XP total.
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}

type UpdateDarkModeRequest struct {
	DarkMode bool `json:"dark_mode"`
}

type AwardResult struct {
	XP        int    `json:"xp"`
	Level     int    `json:"level"`
	LeveledUp bool   `json:"leveled_up"`
	Message   string `json:"message"`
}
