package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kozaktomas/player-verify/internal/database"
	"golang.org/x/crypto/bcrypt"
)

// AdminsHandler handles admin account management endpoints
type AdminsHandler struct {
	admins database.AdminStore
}

// NewAdminsHandler creates a new admins handler
func NewAdminsHandler(admins database.AdminStore) *AdminsHandler {
	return &AdminsHandler{admins: admins}
}

// createAdminRequest represents a request to create an admin account
type createAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Create registers a new dashboard admin account. The password is
// hashed with bcrypt before it is stored.
func (h *AdminsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}
	if req.Role == "" {
		req.Role = database.RoleTournamentAdmin
	}
	if req.Role != database.RoleSuperAdmin && req.Role != database.RoleTournamentAdmin {
		respondError(w, http.StatusBadRequest, "unknown role")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for admin %s: %v", sanitizeForLog(req.Username), err)
		respondError(w, http.StatusInternalServerError, "failed to create admin")
		return
	}

	id, err := h.admins.Create(r.Context(), database.AdminUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusConflict, "admin already exists")
			return
		}
		log.Printf("Failed to create admin %s: %v", sanitizeForLog(req.Username), err)
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"id":       id,
		"username": req.Username,
		"role":     req.Role,
	})
}
