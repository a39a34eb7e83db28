package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"habitQuestAPI/middleware"
)

func TestGetLogsRejectsMalformedDate(t *testing.T) {
	h := NewHabitHandler(nil, nil)

	for _, date := range []string{"15-06-2025", "2025/06/15", "yesterday", "2025-13-40"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/habits/logs?date="+date, nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.ClerkIDKey, "user_2x"))
		rec := httptest.NewRecorder()

		h.GetLogs(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "date %q should be rejected before any lookup", date)
		assert.Contains(t, rec.Body.String(), "Invalid date")
	}
}

func TestGetLogsRequiresAuth(t *testing.T) {
	h := NewHabitHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/habits/logs", nil)
	rec := httptest.NewRecorder()

	h.GetLogs(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
