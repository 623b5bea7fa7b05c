package handlers

import (
	"net/http"

	"github.com/kozaktomas/player-verify/internal/config"
)

// ConfigHandler exposes the client-facing verification settings
type ConfigHandler struct {
	config *config.Config
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{config: cfg}
}

// ClientConfig is the subset of settings verification clients need.
type ClientConfig struct {
	Tolerance       float64 `json:"tolerance"`
	EmbeddingDim    int     `json:"embedding_dim"`
	CaptureCount    int     `json:"capture_count"`
	IntervalSeconds int     `json:"interval_seconds"`
}

// Get returns the verification settings for clients.
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ClientConfig{
		Tolerance:       h.config.Verification.Tolerance,
		EmbeddingDim:    h.config.Verification.EmbeddingDim,
		CaptureCount:    h.config.Verification.CaptureCount,
		IntervalSeconds: h.config.Verification.IntervalSeconds,
	})
}
