package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"habitQuestAPI/internal/types/sleep"
	"habitQuestAPI/middleware"
	"habitQuestAPI/services"
)

type SleepHandler struct {
	sleepService   *services.SleepService
	profileService *services.ProfileService
}

func NewSleepHandler(sleepService *services.SleepService, profileService *services.ProfileService) *SleepHandler {
	return &SleepHandler{
		sleepService:   sleepService,
		profileService: profileService,
	}
}

func (h *SleepHandler) GetSleepLogs(w http.ResponseWriter, r *http.Request) {
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

	logs, err := h.sleepService.GetSleepLogs(ctx, p.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load sleep logs")
		return
	}

	respondWithJSON(w, http.StatusOK, logs)
}

// LogSleep upserts the entry for one day. Same-day re-submission
// edits the existing row instead of creating a second one.
func (h *SleepHandler) LogSleep(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req sleep.LogSleepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.profileService.GetByClerkID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}

	result, err := h.sleepService.LogSleep(ctx, p, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	respondWithJSON(w, status, result)
}

func (h *SleepHandler) DeleteSleepLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	logID := mux.Vars(r)["id"]

	p, err := h.profileService.GetByClerkID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Profile not found")
		return
	}

	if err := h.sleepService.DeleteSleepLog(ctx, p.ID, logID); err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Sleep log deleted"})
}
