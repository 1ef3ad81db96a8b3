package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/service/grant"
)

//go:generate moq -out grant_service_mock_test.go -pkg rest . grantService

type grantService interface {
	CompanionConnection(ctx context.Context) (*grant.ConnectionDetails, error)
	PeerConnection(ctx context.Context, input grant.PeerTokenInput) (*grant.PeerTokenResult, error)
}

// GrantHandler serves media room grants.
type GrantHandler struct {
	svc grantService
	log *slog.Logger
}

// NewGrantHandler creates a GrantHandler.
func NewGrantHandler(svc grantService, logger *slog.Logger) *GrantHandler {
	return &GrantHandler{svc: svc, log: logger.With("handler", "grant")}
}

type connectionDetailsResponse struct {
	ServerURL        string `json:"serverUrl"`
	RoomName         string `json:"roomName"`
	ParticipantName  string `json:"participantName"`
	ParticipantToken string `json:"participantToken"`
}

type peerTokenRequest struct {
	RoomName string `json:"roomName"`
	CallType string `json:"callType"`
}

type peerTokenResponse struct {
	Token           string `json:"token"`
	ServerURL       string `json:"serverUrl"`
	RoomName        string `json:"roomName"`
	ParticipantName string `json:"participantName"`
}

// ConnectionDetails handles GET /api/connection-details.
func (h *GrantHandler) ConnectionDetails(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	details, err := h.svc.CompanionConnection(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, connectionDetailsResponse{
		ServerURL:        details.ServerURL,
		RoomName:         details.RoomName,
		ParticipantName:  details.ParticipantName,
		ParticipantToken: details.ParticipantToken,
	})
}

// PeerToken handles POST /api/peer-token.
func (h *GrantHandler) PeerToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	var req peerTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.PeerConnection(r.Context(), grant.PeerTokenInput{
		RoomName: req.RoomName,
		CallType: domain.CallType(req.CallType),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, peerTokenResponse{
		Token:           res.Token,
		ServerURL:       res.ServerURL,
		RoomName:        res.RoomName,
		ParticipantName: res.ParticipantName,
	})
}
