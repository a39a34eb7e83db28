package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitQuestAPI/internal/types/notification"
	"habitQuestAPI/internal/types/profile"
)

// XP awards for the two first-of-the-day transitions. Edits and
// re-completions never re-award.
const (
	XPHabitCompleted = 50
	XPSleepLogged    = 10
)

// StreakMilestone is the streak length that earns a celebration.
const StreakMilestone = 7

type ProfileService struct {
	db                  *pgxpool.Pool
	notificationService *NotificationService
}

func NewProfileService(db *pgxpool.Pool, notificationService *NotificationService) *ProfileService {
	return &ProfileService{db: db, notificationService: notificationService}
}

// GetOrCreateByClerkID fetches a profile, creating it on first sight.
// A concurrent duplicate insert is benign: ON CONFLICT DO NOTHING and
// re-read means the profile simply already exists.
func (s *ProfileService) GetOrCreateByClerkID(ctx context.Context, clerkID string) (*profile.Profile, error) {
	query := `
	INSERT INTO profiles (id, clerk_id, xp, level, current_streak, max_streak, dark_mode, created_at, updated_at)
	VALUES ($1, $2, 0, 1, 0, 0, false, $3, $3)
	ON CONFLICT (clerk_id) DO NOTHING
	`
	if _, err := s.db.Exec(ctx, query, uuid.New().String(), clerkID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return s.GetByClerkID(ctx, clerkID)
}

func (s *ProfileService) GetByClerkID(ctx context.Context, clerkID string) (*profile.Profile, error) {
	query := `
	SELECT id, clerk_id, xp, level, current_streak, max_streak, dark_mode, created_at, updated_at
	FROM profiles
	WHERE clerk_id = $1
	`

	p := &profile.Profile{}
	err := s.db.QueryRow(ctx, query, clerkID).Scan(
		&p.ID,
		&p.ClerkID,
		&p.XP,
		&p.Level,
		&p.CurrentStreak,
		&p.MaxStreak,
		&p.DarkMode,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

func (s *ProfileService) UpdateDarkMode(ctx context.Context, profileID string, darkMode bool) error {
	_, err := s.db.Exec(ctx,
		`UPDATE profiles SET dark_mode = $2, updated_at = $3 WHERE id = $1`,
		profileID, darkMode, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update dark mode: %w", err)
	}
	return nil
}

// AwardXP adds points to the profile, recomputes the level tier and
// records a feed notification. A level-up message wins over the
// caller's message, which wins over the generic "+N XP".
func (s *ProfileService) AwardXP(ctx context.Context, profileID string, amount int, message string) (*profile.AwardResult, error) {
	query := `
	UPDATE profiles
	SET xp = xp + $2,
	    level = (xp + $2) / $3 + 1,
	    updated_at = $4
	WHERE id = $1
	RETURNING xp, level
	`

	var newXP, newLevel int
	err := s.db.QueryRow(ctx, query, profileID, amount, profile.XPPerLevel, time.Now()).Scan(&newXP, &newLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to award xp: %w", err)
	}

	prevLevel := profile.LevelForXP(newXP - amount)
	result := &profile.AwardResult{
		XP:        newXP,
		Level:     newLevel,
		LeveledUp: newLevel > prevLevel,
		Message:   awardMessage(prevLevel, newLevel, amount, message),
	}

	glyph := "star"
	title := "XP earned"
	if result.LeveledUp {
		glyph = "trophy"
		title = "Level up!"
	}
	if _, err := s.notificationService.Create(ctx, uuid.MustParse(profileID), notification.SeveritySuccess, glyph, title, result.Message); err != nil {
		log.Printf("ProfileService: failed to record XP notification for %s: %v", profileID, err)
	}

	return result, nil
}

// awardMessage picks the notification text: a level-up wins over the
// caller's message, which wins over the generic award line.
func awardMessage(prevLevel, newLevel, amount int, message string) string {
	switch {
	case newLevel > prevLevel:
		return fmt.Sprintf("Level up! You reached level %d", newLevel)
	case message != "":
		return message
	default:
		return fmt.Sprintf("+%d XP", amount)
	}
}

// nextStreakState folds a freshly computed streak into the stored
// (current, max) pair. changed=false means nothing to persist — a
// negative computed value (no daily habits) or an unchanged streak
// leaves the stored values alone. celebrate marks the milestone hit;
// because it only fires on a change, the celebration is one-shot.
func nextStreakState(current, max, computed int) (newCurrent, newMax int, changed, celebrate bool) {
	if computed < 0 || computed == current {
		return current, max, false, false
	}

	newMax = max
	if computed > newMax {
		newMax = computed
	}
	return computed, newMax, true, computed == StreakMilestone
}

// RecordStreak persists a freshly computed streak. The write only
// happens when the value changed, which also makes the 7-day
// celebration one-shot: an unchanged recomputation is a no-op.
func (s *ProfileService) RecordStreak(ctx context.Context, p *profile.Profile, computed int) error {
	newCurrent, newMax, changed, celebrate := nextStreakState(p.CurrentStreak, p.MaxStreak, computed)
	if !changed {
		return nil
	}

	_, err := s.db.Exec(ctx,
		`UPDATE profiles SET current_streak = $2, max_streak = $3, updated_at = $4 WHERE id = $1`,
		p.ID, newCurrent, newMax, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record streak: %w", err)
	}

	p.CurrentStreak = newCurrent
	p.MaxStreak = newMax

	if celebrate {
		title := fmt.Sprintf("%d-day streak! Keep it going", StreakMilestone)
		if _, err := s.notificationService.CreateAndPush(ctx, uuid.MustParse(p.ID), notification.SeveritySuccess, "flame", title, title); err != nil {
			log.Printf("ProfileService: failed to send streak celebration for %s: %v", p.ID, err)
		}
	}

	return nil
}
