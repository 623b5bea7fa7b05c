package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kozaktomas/player-verify/internal/sessions"
	"github.com/kozaktomas/player-verify/internal/verify"
)

// VerifyHandler handles verification attempt endpoints
type VerifyHandler struct {
	engine   *verify.Engine
	registry *sessions.Registry
}

// NewVerifyHandler creates a new verify handler
func NewVerifyHandler(engine *verify.Engine, registry *sessions.Registry) *VerifyHandler {
	return &VerifyHandler{
		engine:   engine,
		registry: registry,
	}
}

// verifyRequest represents one verification attempt from a client
type verifyRequest struct {
	PlayerID       string    `json:"player_id"`
	FacialEncoding []float32 `json:"facial_encoding"`
	MachineGUID    string    `json:"machine_guid"`
	ImageData      string    `json:"image_data"`
}

// Verify runs one verification attempt and returns the verdict. The
// verdict is only returned once the audit row is committed.
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.PlayerID == "" || req.MachineGUID == "" {
		respondError(w, http.StatusBadRequest, "player_id and machine_guid are required")
		return
	}

	result, err := h.engine.Verify(r.Context(), verify.Request{
		PlayerID:    req.PlayerID,
		Template:    req.FacialEncoding,
		MachineGUID: req.MachineGUID,
		ImageData:   req.ImageData,
	})
	if err != nil {
		switch {
		case errors.Is(err, verify.ErrNoFaceDetected):
			respondError(w, http.StatusUnprocessableEntity, "no face detected")
		case errors.Is(err, verify.ErrPlayerNotFound):
			respondError(w, http.StatusNotFound, "player not found")
		case errors.Is(err, verify.ErrShapeMismatch):
			log.Printf("Template shape mismatch for player %s", sanitizeForLog(req.PlayerID))
			respondError(w, http.StatusInternalServerError, "template dimension mismatch")
		case errors.Is(err, verify.ErrStorageUnavailable):
			log.Printf("Storage unavailable during verification of %s: %v", sanitizeForLog(req.PlayerID), err)
			respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		default:
			log.Printf("Verification failed for player %s: %v", sanitizeForLog(req.PlayerID), err)
			respondError(w, http.StatusInternalServerError, "verification failed")
		}
		return
	}

	// Periodic checks keep the player's session from being evicted.
	if h.registry != nil {
		h.registry.Touch(req.PlayerID)
	}

	respondJSON(w, http.StatusOK, result)
}
