package grant

import (
	"fmt"
	"time"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// Capability sets per session kind.
var (
	companionCapabilities = domain.NewCapabilities(
		domain.CapJoin,
		domain.CapPublishAudio,
		domain.CapPublishVideo,
		domain.CapPublishData,
		domain.CapSubscribe,
		domain.CapUpdateOwnMetadata,
	)

	peerVoiceCapabilities = domain.NewCapabilities(
		domain.CapJoin,
		domain.CapPublishAudio,
		domain.CapPublishData,
		domain.CapSubscribe,
	)

	peerVideoCapabilities = peerVoiceCapabilities.With(
		domain.CapPublishVideo,
		domain.CapPublishScreenShare,
	)
)

// Issuer builds and signs access grants. Given valid inputs it is pure apart
// from the clock and the token id.
type Issuer struct {
	signer       grantSigner
	companionTTL time.Duration
	peerTTL      time.Duration
	now          func() time.Time
}

// NewIssuer creates an Issuer with the given grant lifetimes.
func NewIssuer(signer grantSigner, companionTTL, peerTTL time.Duration) *Issuer {
	return &Issuer{
		signer:       signer,
		companionTTL: companionTTL,
		peerTTL:      peerTTL,
		now:          time.Now,
	}
}

// Configured reports whether grants can be signed.
func (i *Issuer) Configured() bool {
	return i.signer.Configured()
}

// IssueForCompanionSession grants full publish rights for an AI-companion room.
func (i *Issuer) IssueForCompanionSession(identity, displayName, roomName string) (*domain.AccessGrant, error) {
	return i.issue(identity, displayName, roomName, companionCapabilities, i.companionTTL)
}

// IssueForPeerSession grants audio, or audio plus camera and screen share when
// callType is video.
func (i *Issuer) IssueForPeerSession(identity, displayName, roomName string, callType domain.CallType) (*domain.AccessGrant, error) {
	caps := peerVoiceCapabilities
	if callType.IsVideo() {
		caps = peerVideoCapabilities
	}
	return i.issue(identity, displayName, roomName, caps, i.peerTTL)
}

func (i *Issuer) issue(identity, name, room string, caps domain.Capabilities, ttl time.Duration) (*domain.AccessGrant, error) {
	if identity == "" || room == "" {
		return nil, fmt.Errorf("grant.issue: %w", domain.NewValidationError("identity", "identity and room are required"))
	}

	g := domain.AccessGrant{
		Identity:     identity,
		Name:         name,
		RoomName:     room,
		Capabilities: caps,
		IssuedAt:     i.now().UTC(),
		TTL:          ttl,
	}

	token, err := i.signer.Sign(g)
	if err != nil {
		return nil, fmt.Errorf("grant.issue: %w", err)
	}
	g.Token = token
	return &g, nil
}
