package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/kozaktomas/player-verify/internal/database"
	"github.com/kozaktomas/player-verify/internal/web/middleware"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	admins         database.AdminStore
	sessionManager *middleware.SessionManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(admins database.AdminStore, sm *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{
		admins:         admins,
		sessionManager: sm,
	}
}

// loginRequest represents a login request
type loginRequest struct {
	username string
	password string
}

func (l *loginRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal login request: %w", err)
	}
	l.username = raw["username"]
	l.password = raw["password"]
	return nil
}

// LoginResponse represents a login response
type LoginResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id,omitempty"`
	Username  string `json:"username,omitempty"`
	Role      string `json:"role,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Login handles admin login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	// Require both username and password
	if req.username == "" || req.password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	admin, err := h.admins.GetByUsername(r.Context(), req.username)
	if err != nil {
		log.Printf("Failed to load admin %s: %v", sanitizeForLog(req.username), err)
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	if admin == nil || !admin.IsActive ||
		bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.password)) != nil {
		respondJSON(w, http.StatusUnauthorized, LoginResponse{
			Success: false,
			Error:   "invalid credentials",
		})
		return
	}

	session, err := h.sessionManager.CreateSession(r.Context(), admin.Username, admin.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	if err := h.admins.UpdateLastLogin(r.Context(), admin.ID); err != nil {
		log.Printf("Failed to record last login for %s: %v", sanitizeForLog(admin.Username), err)
	}

	h.sessionManager.SetSessionCookie(w, session)

	respondJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		SessionID: session.ID,
		Username:  session.Username,
		Role:      session.Role,
		ExpiresAt: session.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	})
}

// Logout handles admin logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := h.sessionManager.GetSessionFromRequest(r)
	if session != nil {
		h.sessionManager.DeleteSession(r.Context(), session.ID)
	}

	h.sessionManager.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// StatusResponse represents the auth status response
type StatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	Role          string `json:"role,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`
}

// Status checks if the admin is authenticated by validating the session.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	session := h.sessionManager.GetSessionFromRequest(r)
	if session == nil {
		respondJSON(w, http.StatusOK, StatusResponse{Authenticated: false})
		return
	}
	respondJSON(w, http.StatusOK, StatusResponse{
		Authenticated: true,
		Username:      session.Username,
		Role:          session.Role,
		ExpiresAt:     session.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	})
}
