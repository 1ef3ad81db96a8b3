package grant

import (
	"strings"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// PeerTokenInput is the body of a peer grant request.
type PeerTokenInput struct {
	RoomName string
	CallType domain.CallType
}

func (i PeerTokenInput) Validate() error {
	if strings.TrimSpace(i.RoomName) == "" {
		return domain.NewValidationError("roomName", "Room name is required")
	}
	return nil
}

// ConnectionDetails is returned for a companion session.
type ConnectionDetails struct {
	ServerURL        string
	RoomName         string
	ParticipantName  string
	ParticipantToken string
}

// PeerTokenResult is returned for a peer session.
type PeerTokenResult struct {
	Token           string
	ServerURL       string
	RoomName        string
	ParticipantName string
}
