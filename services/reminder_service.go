package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitQuestAPI/internal/aiclient"
	"habitQuestAPI/internal/timeutil"
	"habitQuestAPI/internal/types/notification"
	"habitQuestAPI/middleware"
	"habitQuestAPI/utils"
)

// Reminder window: checks run from 09:00 up to but not past 21:00.
const (
	reminderWindowStart = 9
	reminderWindowEnd   = 21
	reminderInterval    = time.Hour
)

// ReminderService walks all profiles on an hourly timer and nudges
// each user about the first daily habit still unfinished today. The
// last-check marker is in-memory only; a restart can re-check within
// the same hour, which is accepted as a known limitation.
type ReminderService struct {
	db                  *pgxpool.Pool
	habitService        *HabitService
	notificationService *NotificationService
	ai                  *aiclient.Client

	mu        sync.Mutex
	lastCheck time.Time
}

func NewReminderService(db *pgxpool.Pool, habitService *HabitService, notificationService *NotificationService, ai *aiclient.Client) *ReminderService {
	return &ReminderService{
		db:                  db,
		habitService:        habitService,
		notificationService: notificationService,
		ai:                  ai,
	}
}

// Run blocks until ctx is cancelled, firing a check every hour. Meant
// to be started as a goroutine from main; cancelling the context on
// shutdown stops the timer.
func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(reminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("ReminderService: stopped")
			return
		case <-ticker.C:
			s.CheckAll(ctx, time.Now())
		}
	}
}

// inWindow reports whether the local hour is inside the daytime
// reminder window, inclusive of 9, exclusive past 21.
func inWindow(now time.Time) bool {
	h := now.Hour()
	return h >= reminderWindowStart && h < reminderWindowEnd
}

// due guards against rapid re-entry: a check less than an hour after
// the previous one is suppressed regardless of timer firing.
func due(now, last time.Time) bool {
	return last.IsZero() || now.Sub(last) >= reminderInterval
}

// CheckAll runs one reminder cycle over every profile.
func (s *ReminderService) CheckAll(ctx context.Context, now time.Time) {
	if !inWindow(now) {
		return
	}

	s.mu.Lock()
	if !due(now, s.lastCheck) {
		s.mu.Unlock()
		return
	}
	s.lastCheck = now
	s.mu.Unlock()

	rows, err := s.db.Query(ctx, `SELECT id FROM profiles`)
	if err != nil {
		log.Printf("ReminderService: failed to list profiles: %v", err)
		return
	}
	defer rows.Close()

	var profileIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Printf("ReminderService: failed to scan profile: %v", err)
			return
		}
		profileIDs = append(profileIDs, id)
	}
	if err := rows.Err(); err != nil {
		log.Printf("ReminderService: profile listing failed: %v", err)
		return
	}

	for _, id := range profileIDs {
		if err := s.checkProfile(ctx, id, now); err != nil {
			log.Printf("ReminderService: check failed for %s: %v", id, err)
		}
	}
}

// checkProfile sends at most one reminder: the first daily habit, in
// creation order, whose log for today is missing or short of its goal.
func (s *ReminderService) checkProfile(ctx context.Context, profileID string, now time.Time) error {
	snap, err := s.habitService.LoadSnapshot(ctx, profileID)
	if err != nil {
		return err
	}

	daily := snap.DailyHabits()
	if len(daily) == 0 {
		return nil
	}

	logsByDay := snap.LogsByDay()
	today := timeutil.DayKey(now)

	for i := range daily {
		h := &daily[i]
		if h.IsComplete(logsByDay[h.ID][today]) {
			continue
		}

		body := "Don't forget: " + h.Name
		if s.ai != nil {
			if text, err := s.ai.Generate(ctx, utils.BuildReminderPrompt(h)); err == nil && text != "" {
				body = text
			} else if err != nil {
				// soft failure: fall back to the generic nudge
				log.Printf("ReminderService: reminder text failed for %s: %v", profileID, err)
			}
		}

		_, err := s.notificationService.CreateAndPush(ctx, uuid.MustParse(profileID),
			notification.SeverityInfo, "bell", "Habit reminder", body)
		if err == nil {
			middleware.CountReminderSent()
		}
		return err
	}

	return nil
}
