package handlers

import (
	"context"
	"net/http"
	"time"

	"habitQuestAPI/internal/progress"
	"habitQuestAPI/middleware"
	"habitQuestAPI/services"
)

type ProgressHandler struct {
	habitService   *services.HabitService
	sleepService   *services.SleepService
	profileService *services.ProfileService
}

func NewProgressHandler(habitService *services.HabitService, sleepService *services.SleepService, profileService *services.ProfileService) *ProgressHandler {
	return &ProgressHandler{
		habitService:   habitService,
		sleepService:   sleepService,
		profileService: profileService,
	}
}

// GetProgress returns the 7-day completion series and the dashboard
// summary, computed over a fresh snapshot.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
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

	snap, err := h.habitService.LoadSnapshot(ctx, p.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load habit history")
		return
	}

	sleepHours, err := h.sleepService.SleepHours(ctx, p.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load sleep history")
		return
	}

	summary := progress.Summarize(snap, sleepHours, time.Now())
	respondWithJSON(w, http.StatusOK, summary)
}
