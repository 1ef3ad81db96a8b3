package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

// Track sources understood by the media server.
const (
	SourceCamera      = "camera"
	SourceMicrophone  = "microphone"
	SourceScreenShare = "screen_share"
)

// GrantSigner signs room access grants for the media server. Tokens use the
// LiveKit claim layout: the API key is the issuer, the identity is the
// subject and the room permissions live under "video".
type GrantSigner struct {
	apiKey    string
	apiSecret []byte
}

// NewGrantSigner creates a signer. Missing credentials are reported by Sign,
// not here, so the service can start without media configured.
func NewGrantSigner(apiKey, apiSecret string) *GrantSigner {
	return &GrantSigner{apiKey: apiKey, apiSecret: []byte(apiSecret)}
}

// Configured reports whether both halves of the key pair are present.
func (s *GrantSigner) Configured() bool {
	return s.apiKey != "" && len(s.apiSecret) > 0
}

type videoGrant struct {
	Room                 string   `json:"room,omitempty"`
	RoomJoin             bool     `json:"roomJoin,omitempty"`
	CanPublish           *bool    `json:"canPublish,omitempty"`
	CanSubscribe         *bool    `json:"canSubscribe,omitempty"`
	CanPublishData       *bool    `json:"canPublishData,omitempty"`
	CanPublishSources    []string `json:"canPublishSources,omitempty"`
	CanUpdateOwnMetadata *bool    `json:"canUpdateOwnMetadata,omitempty"`
}

type grantClaims struct {
	jwt.RegisteredClaims
	Name  string      `json:"name,omitempty"`
	Video *videoGrant `json:"video,omitempty"`
}

// Sign returns the signed token for g. IssuedAt and TTL must be set.
func (s *GrantSigner) Sign(g domain.AccessGrant) (string, error) {
	if !s.Configured() {
		return "", fmt.Errorf("sign grant: %w", domain.ErrMissingCredential)
	}

	claims := grantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.apiKey,
			Subject:   g.Identity,
			ID:        uuid.NewString(),
			NotBefore: jwt.NewNumericDate(g.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(g.ExpiresAt()),
		},
		Name:  g.Name,
		Video: toVideoGrant(g.RoomName, g.Capabilities),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.apiSecret)
	if err != nil {
		return "", fmt.Errorf("sign grant: %w", err)
	}
	return signed, nil
}

// Parse validates a grant token and returns the grant it encodes.
func (s *GrantSigner) Parse(token string) (*domain.AccessGrant, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("parse grant: %w", domain.ErrMissingCredential)
	}

	parsed, err := jwt.ParseWithClaims(token, &grantClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.apiSecret, nil
	}, jwt.WithIssuer(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("parse grant: %w", err)
	}

	claims, ok := parsed.Claims.(*grantClaims)
	if !ok || !parsed.Valid || claims.Video == nil {
		return nil, fmt.Errorf("parse grant: invalid claims")
	}

	g := &domain.AccessGrant{
		Identity:     claims.Subject,
		Name:         claims.Name,
		RoomName:     claims.Video.Room,
		Capabilities: fromVideoGrant(claims.Video),
		Token:        token,
	}
	if claims.NotBefore != nil && claims.ExpiresAt != nil {
		g.IssuedAt = claims.NotBefore.Time
		g.TTL = claims.ExpiresAt.Sub(claims.NotBefore.Time)
	}
	return g, nil
}

func toVideoGrant(room string, caps domain.Capabilities) *videoGrant {
	v := &videoGrant{
		Room:                 room,
		RoomJoin:             caps.Has(domain.CapJoin),
		CanSubscribe:         boolPtr(caps.Has(domain.CapSubscribe)),
		CanPublishData:       boolPtr(caps.Has(domain.CapPublishData)),
		CanUpdateOwnMetadata: boolPtr(caps.Has(domain.CapUpdateOwnMetadata)),
	}

	var sources []string
	if caps.Has(domain.CapPublishVideo) {
		sources = append(sources, SourceCamera)
	}
	if caps.Has(domain.CapPublishAudio) {
		sources = append(sources, SourceMicrophone)
	}
	if caps.Has(domain.CapPublishScreenShare) {
		sources = append(sources, SourceScreenShare)
	}
	v.CanPublish = boolPtr(len(sources) > 0)
	v.CanPublishSources = sources

	return v
}

func fromVideoGrant(v *videoGrant) domain.Capabilities {
	var caps domain.Capabilities
	if v.RoomJoin {
		caps = caps.With(domain.CapJoin)
	}
	if isTrue(v.CanSubscribe) {
		caps = caps.With(domain.CapSubscribe)
	}
	if isTrue(v.CanPublishData) {
		caps = caps.With(domain.CapPublishData)
	}
	if isTrue(v.CanUpdateOwnMetadata) {
		caps = caps.With(domain.CapUpdateOwnMetadata)
	}
	if isTrue(v.CanPublish) {
		for _, src := range v.CanPublishSources {
			switch src {
			case SourceCamera:
				caps = caps.With(domain.CapPublishVideo)
			case SourceMicrophone:
				caps = caps.With(domain.CapPublishAudio)
			case SourceScreenShare:
				caps = caps.With(domain.CapPublishScreenShare)
			}
		}
	}
	return caps
}

func boolPtr(b bool) *bool { return &b }

func isTrue(b *bool) bool { return b != nil && *b }
