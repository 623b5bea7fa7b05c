package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/kozaktomas/player-verify/internal/config"
	"github.com/kozaktomas/player-verify/internal/database"
)

// PlayersHandler handles player enrollment endpoints
type PlayersHandler struct {
	config      *config.Config
	enrollments database.EnrollmentStore
}

// NewPlayersHandler creates a new players handler
func NewPlayersHandler(cfg *config.Config, enrollments database.EnrollmentStore) *PlayersHandler {
	return &PlayersHandler{
		config:      cfg,
		enrollments: enrollments,
	}
}

// registerRequest represents an enrollment request
type registerRequest struct {
	PlayerID       string    `json:"player_id"`
	Name           string    `json:"name"`
	StudentID      string    `json:"student_id"`
	FacialEncoding []float32 `json:"facial_encoding"`
	MachineGUID    string    `json:"machine_guid"`
}

// Register enrolls a new player: identity, facial template and device
// binding are stored atomically.
func (h *PlayersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.PlayerID == "" || req.Name == "" || req.MachineGUID == "" {
		respondError(w, http.StatusBadRequest, "player_id, name and machine_guid are required")
		return
	}
	if len(req.FacialEncoding) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "no face detected in enrollment captures")
		return
	}
	if dim := h.config.Verification.EmbeddingDim; len(req.FacialEncoding) != dim {
		respondError(w, http.StatusBadRequest, "facial_encoding has wrong dimension")
		return
	}

	enrollment := database.PlayerEnrollment{
		PlayerID:       req.PlayerID,
		Name:           req.Name,
		StudentID:      req.StudentID,
		FacialTemplate: req.FacialEncoding,
		MachineGUID:    req.MachineGUID,
		RegisteredAt:   time.Now(),
	}

	if err := h.enrollments.Create(r.Context(), enrollment); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusConflict, "player already registered")
			return
		}
		log.Printf("Failed to enroll player %s: %v", sanitizeForLog(req.PlayerID), err)
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	log.Printf("Enrolled player %s", sanitizeForLog(req.PlayerID))
	respondJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"player_id": req.PlayerID,
	})
}

// List returns the roster of enrolled players without templates.
func (h *PlayersHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.enrollments.List(r.Context())
	if err != nil {
		log.Printf("Failed to list players: %v", err)
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	if players == nil {
		players = []database.PlayerEnrollment{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"players": players,
		"count":   len(players),
	})
}
