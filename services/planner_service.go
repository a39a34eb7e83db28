package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"habitQuestAPI/internal/aiclient"
	"habitQuestAPI/internal/types/notification"
	"habitQuestAPI/internal/types/profile"
	"habitQuestAPI/utils"
)

type PlannerService struct {
	habitService        *HabitService
	timetableService    *TimetableService
	notificationService *NotificationService
	ai                  *aiclient.Client
}

func NewPlannerService(habitService *HabitService, timetableService *TimetableService, notificationService *NotificationService, ai *aiclient.Client) *PlannerService {
	return &PlannerService{
		habitService:        habitService,
		timetableService:    timetableService,
		notificationService: notificationService,
		ai:                  ai,
	}
}

type PlanResponse struct {
	Plan string `json:"plan"`
}

// GeneratePlan asks the generative endpoint for a full-day plan built
// from today's timetable and the user's daily habits. AI failures
// degrade to an error notification, never a crash.
func (s *PlannerService) GeneratePlan(ctx context.Context, p *profile.Profile) (*PlanResponse, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("plan generation is not configured")
	}

	now := time.Now()
	entries, err := s.timetableService.GetEntriesForDay(ctx, p.ID, int(now.Weekday()))
	if err != nil {
		return nil, err
	}

	snap, err := s.habitService.LoadSnapshot(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	prompt := utils.BuildPlanPrompt(entries, snap.DailyHabits())
	plan, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		log.Printf("PlannerService: plan generation failed for %s: %v", p.ID, err)
		if _, nerr := s.notificationService.Create(ctx, uuid.MustParse(p.ID), notification.SeverityError, "calendar",
			"Plan generation failed", "Could not generate today's plan. Try again later."); nerr != nil {
			log.Printf("PlannerService: failed to record failure notification: %v", nerr)
		}
		return nil, fmt.Errorf("plan generation failed")
	}

	return &PlanResponse{Plan: plan}, nil
}
