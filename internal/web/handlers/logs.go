package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/player-verify/internal/database"
)

const (
	defaultPlayerLogLimit = 50
	defaultRecentLogLimit = 100
	maxLogLimit           = 500
)

// LogsHandler handles audit log read endpoints
type LogsHandler struct {
	audit       database.AuditLogStore
	enrollments database.EnrollmentStore
}

// NewLogsHandler creates a new logs handler
func NewLogsHandler(audit database.AuditLogStore, enrollments database.EnrollmentStore) *LogsHandler {
	return &LogsHandler{
		audit:       audit,
		enrollments: enrollments,
	}
}

// PlayerLogs returns the verification history for one player, most
// recent first.
func (h *LogsHandler) PlayerLogs(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		respondError(w, http.StatusBadRequest, "missing player ID")
		return
	}

	enrollment, err := h.enrollments.GetByID(r.Context(), playerID)
	if err != nil {
		log.Printf("Failed to load player %s: %v", sanitizeForLog(playerID), err)
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	if enrollment == nil {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}

	limit := queryLimit(r, defaultPlayerLogLimit, maxLogLimit)
	attempts, err := h.audit.ListByPlayer(r.Context(), playerID, limit)
	if err != nil {
		log.Printf("Failed to list logs for player %s: %v", sanitizeForLog(playerID), err)
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	if attempts == nil {
		attempts = []database.VerificationAttempt{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"player_id":   playerID,
		"player_name": enrollment.Name,
		"logs":        attempts,
		"count":       len(attempts),
	})
}

// Recent returns the system-wide verification feed, most recent first.
func (h *LogsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultRecentLogLimit, maxLogLimit)
	attempts, err := h.audit.ListRecent(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to list recent logs: %v", err)
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	if attempts == nil {
		attempts = []database.AttemptWithPlayer{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"logs":  attempts,
		"count": len(attempts),
	})
}
