package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/mindcure-backend/internal/service/settings"
)

//go:generate moq -out settings_service_mock_test.go -pkg rest . settingsService

type settingsService interface {
	SetAPIKey(ctx context.Context, apiKey string) error
	Status(ctx context.Context) (*settings.KeyStatus, error)
	DeleteAPIKey(ctx context.Context) error
}

// SettingsHandler serves the caller's own model API key.
type SettingsHandler struct {
	svc settingsService
	log *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: logger.With("handler", "settings")}
}

type apiKeyRequest struct {
	APIKey string `json:"apiKey"`
}

type apiKeyStatusResponse struct {
	HasAPIKey     bool       `json:"hasApiKey"`
	APIKeyAddedAt *time.Time `json:"apiKeyAddedAt"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SetAPIKey handles POST and PUT /api/user/api-key.
func (h *SettingsHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req apiKeyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.SetAPIKey(r.Context(), req.APIKey); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "API key saved successfully"})
}

// APIKeyStatus handles GET /api/user/api-key. The key itself is never returned.
func (h *SettingsHandler) APIKeyStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, apiKeyStatusResponse{HasAPIKey: st.HasAPIKey, APIKeyAddedAt: st.AddedAt})
}

// DeleteAPIKey handles DELETE /api/user/api-key.
func (h *SettingsHandler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAPIKey(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "API key removed"})
}
