package handlers

import (
	"context"
	"net/http"
	"time"

	"habitQuestAPI/middleware"
	"habitQuestAPI/services"
)

type PlannerHandler struct {
	plannerService *services.PlannerService
	profileService *services.ProfileService
}

func NewPlannerHandler(plannerService *services.PlannerService, profileService *services.ProfileService) *PlannerHandler {
	return &PlannerHandler{
		plannerService: plannerService,
		profileService: profileService,
	}
}

// GeneratePlan builds an AI day plan from the timetable and daily
// habits. The generative call can retry for seconds, so the timeout is
// generous.
func (h *PlannerHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	p, err := h.profileService.GetByClerkID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}

	plan, err := h.plannerService.GeneratePlan(ctx, p)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Plan generation failed")
		return
	}

	respondWithJSON(w, http.StatusOK, plan)
}
