package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/service/grant"
	"github.com/heartmarshall/mindcure-backend/internal/service/peer"
)

//go:generate moq -out peer_service_mock_test.go -pkg rest . peerService

type peerService interface {
	JoinQueue(ctx context.Context, input peer.JoinInput) (*domain.MatchResult, error)
	CheckStatus(ctx context.Context) (*domain.MatchResult, error)
	LeaveQueue(ctx context.Context) error
	EndConnection(ctx context.Context, roomName string) error
}

// Match actions accepted by PeerHandler.Match.
const (
	ActionJoinQueue     = "join_queue"
	ActionCheckStatus   = "check_status"
	ActionLeaveQueue    = "leave_queue"
	ActionEndConnection = "end_connection"
)

// PeerHandler serves peer matchmaking.
type PeerHandler struct {
	svc peerService
	log *slog.Logger
}

// NewPeerHandler creates a PeerHandler.
func NewPeerHandler(svc peerService, logger *slog.Logger) *PeerHandler {
	return &PeerHandler{svc: svc, log: logger.With("handler", "peer")}
}

type peerMatchRequest struct {
	Action    string   `json:"action"`
	Interests []string `json:"interests"`
	RoomName  string   `json:"roomName"`
}

type matchResponse struct {
	Status string     `json:"status"`
	Match  *peerMatch `json:"match,omitempty"`
}

type peerMatch struct {
	ID        string   `json:"id"`
	Alias     string   `json:"alias"`
	RoomID    string   `json:"roomId"`
	MatchedOn []string `json:"matchedOn"`
}

// Match handles POST /api/peer-match.
func (h *PeerHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req peerMatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx := r.Context()

	switch req.Action {
	case ActionJoinQueue:
		res, err := h.svc.JoinQueue(ctx, peer.JoinInput{Interests: req.Interests})
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toMatchResponse(res))

	case ActionCheckStatus:
		res, err := h.svc.CheckStatus(ctx)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toMatchResponse(res))

	case ActionLeaveQueue:
		if err := h.svc.LeaveQueue(ctx); err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	case ActionEndConnection:
		if err := h.svc.EndConnection(ctx, req.RoomName); err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		writeError(w, http.StatusBadRequest, "Invalid action")
	}
}

func toMatchResponse(res *domain.MatchResult) matchResponse {
	resp := matchResponse{Status: string(res.Status)}
	if res.Status == domain.MatchMatched && res.PeerID != uuid.Nil {
		matchedOn := res.MatchedOn
		if matchedOn == nil {
			matchedOn = []string{}
		}
		resp.Match = &peerMatch{
			ID:        res.PeerID.String(),
			Alias:     grant.DefaultPeerName,
			RoomID:    res.RoomName,
			MatchedOn: matchedOn,
		}
	}
	return resp
}
