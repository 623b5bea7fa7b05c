package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kozaktomas/player-verify/internal/events"
	"github.com/kozaktomas/player-verify/internal/sessions"
)

// SessionsHandler handles player session signal endpoints
type SessionsHandler struct {
	registry *sessions.Registry
	hub      *events.Hub
}

// NewSessionsHandler creates a new sessions handler
func NewSessionsHandler(registry *sessions.Registry, hub *events.Hub) *SessionsHandler {
	return &SessionsHandler{
		registry: registry,
		hub:      hub,
	}
}

// sessionSignalRequest represents a session start or end signal
type sessionSignalRequest struct {
	PlayerID string `json:"player_id"`
}

// Start records the beginning of a player's verification session.
func (h *SessionsHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req sessionSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.PlayerID == "" {
		respondError(w, http.StatusBadRequest, "player_id is required")
		return
	}

	session := h.registry.Start(req.PlayerID)
	log.Printf("Session started for player %s", sanitizeForLog(req.PlayerID))

	if h.hub != nil {
		h.hub.Broadcast(events.Event{
			Type: events.TypeSessionStarted,
			Data: events.SessionSignal{
				PlayerID:  req.PlayerID,
				Timestamp: session.StartTime,
			},
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"session": session,
	})
}

// End removes a player's verification session. Ending an unknown
// session still succeeds.
func (h *SessionsHandler) End(w http.ResponseWriter, r *http.Request) {
	var req sessionSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.PlayerID == "" {
		respondError(w, http.StatusBadRequest, "player_id is required")
		return
	}

	h.registry.End(req.PlayerID)
	log.Printf("Session ended for player %s", sanitizeForLog(req.PlayerID))

	if h.hub != nil {
		h.hub.Broadcast(events.Event{
			Type: events.TypeSessionEnded,
			Data: events.SessionSignal{
				PlayerID:  req.PlayerID,
				Timestamp: time.Now(),
			},
		})
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Active returns all currently tracked sessions, oldest first.
func (h *SessionsHandler) Active(w http.ResponseWriter, r *http.Request) {
	active := h.registry.Active()
	respondJSON(w, http.StatusOK, map[string]any{
		"sessions": active,
		"count":    len(active),
	})
}
