// Package grant issues media-room access grants and decides who may enter a room.
package grant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/roomid"
	"github.com/heartmarshall/mindcure-backend/pkg/ctxutil"
)

//go:generate moq -out grant_signer_mock_test.go -pkg grant . grantSigner
//go:generate moq -out profile_repo_mock_test.go -pkg grant . profileRepo
//go:generate moq -out membership_repo_mock_test.go -pkg grant . membershipRepo
//go:generate moq -out room_registry_mock_test.go -pkg grant . roomRegistry

type grantSigner interface {
	Sign(g domain.AccessGrant) (string, error)
	Configured() bool
}

type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

type membershipRepo interface {
	FindActive(ctx context.Context, roomName string, userID uuid.UUID) (*domain.PeerConnection, error)
}

type roomRegistry interface {
	Register(ctx context.Context, roomName, owner, identity string, ttl time.Duration) error
	Owner(ctx context.Context, roomName string) (string, error)
}

const (
	DefaultCompanionName = "User"
	DefaultPeerName      = "Anonymous Peer"

	// registerAttempts bounds redraws of a colliding companion room name.
	registerAttempts = 3
)

// Service answers grant requests for the caller in the context.
type Service struct {
	issuer      *Issuer
	profiles    profileRepo
	memberships membershipRepo
	rooms       roomRegistry
	serverURL   string
	log         *slog.Logger
}

// NewService creates a grant Service. serverURL is the media server address
// handed to clients; an empty value makes every request fail with
// domain.ErrMissingCredential.
func NewService(
	logger *slog.Logger,
	issuer *Issuer,
	profiles profileRepo,
	memberships membershipRepo,
	rooms roomRegistry,
	serverURL string,
) *Service {
	return &Service{
		issuer:      issuer,
		profiles:    profiles,
		memberships: memberships,
		rooms:       rooms,
		serverURL:   serverURL,
		log:         logger.With("service", "grant"),
	}
}

func (s *Service) configured() bool {
	return s.serverURL != "" && s.issuer.Configured()
}

// CompanionConnection creates a fresh companion room for the caller, who may be
// anonymous, and returns a grant for it.
func (s *Service) CompanionConnection(ctx context.Context) (*ConnectionDetails, error) {
	if !s.configured() {
		return nil, fmt.Errorf("grant.CompanionConnection: media server: %w", domain.ErrMissingCredential)
	}

	owner := roomid.AnonymousOwner
	name := DefaultCompanionName

	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		owner = userID.String()
		profile := s.loadProfile(ctx, userID)
		if profile == nil {
			profile = &domain.Profile{ID: userID}
		}
		if profile.Email == "" {
			profile.Email = ctxutil.EmailFromCtx(ctx)
		}
		name = profile.DisplayName(DefaultCompanionName)
	}

	identity := roomid.MakeParticipantIdentity(roomid.RoleCompanionUser, owner)

	room, err := s.registerRoom(ctx, owner, identity)
	if err != nil {
		return nil, fmt.Errorf("grant.CompanionConnection: %w", err)
	}

	g, err := s.issuer.IssueForCompanionSession(identity, name, room)
	if err != nil {
		return nil, fmt.Errorf("grant.CompanionConnection: %w", err)
	}

	s.log.InfoContext(ctx, "companion grant issued",
		slog.String("room", room),
		slog.String("identity", identity),
		slog.Time("expires_at", g.ExpiresAt()),
	)

	return &ConnectionDetails{
		ServerURL:        s.serverURL,
		RoomName:         room,
		ParticipantName:  name,
		ParticipantToken: g.Token,
	}, nil
}

// PeerConnection grants the caller access to a peer room they are a member of.
func (s *Service) PeerConnection(ctx context.Context, input PeerTokenInput) (*PeerTokenResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !s.configured() {
		return nil, fmt.Errorf("grant.PeerConnection: media server: %w", domain.ErrMissingCredential)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	room := strings.TrimSpace(input.RoomName)

	if err := s.requireMembership(ctx, room, userID); err != nil {
		return nil, fmt.Errorf("grant.PeerConnection: %w", err)
	}

	name := s.loadProfile(ctx, userID).FullNameOr(DefaultPeerName)
	identity := roomid.MakeParticipantIdentity(roomid.RolePeer, userID.String())

	g, err := s.issuer.IssueForPeerSession(identity, name, room, input.CallType)
	if err != nil {
		return nil, fmt.Errorf("grant.PeerConnection: %w", err)
	}

	return &PeerTokenResult{
		Token:           g.Token,
		ServerURL:       s.serverURL,
		RoomName:        room,
		ParticipantName: name,
	}, nil
}

// VerifyRoomAccess checks that the caller may attach to roomName. Peer rooms
// need an active membership record; companion rooms need the registry to list
// the caller as owner.
func (s *Service) VerifyRoomAccess(ctx context.Context, roomName string) error {
	userID, authenticated := ctxutil.UserIDFromCtx(ctx)

	purpose, _ := roomid.Purpose(roomName)
	switch purpose {
	case roomid.PurposePeer:
		if !authenticated {
			return domain.ErrUnauthorized
		}
		return s.requireMembership(ctx, roomName, userID)

	case roomid.PurposeCompanion:
		owner, err := s.rooms.Owner(ctx, roomName)
		if errors.Is(err, domain.ErrNotFound) {
			return s.denied(ctx, roomName, userID)
		}
		if err != nil {
			return fmt.Errorf("grant.VerifyRoomAccess: %w", err)
		}
		want := roomid.AnonymousOwner
		if authenticated {
			want = userID.String()
		}
		if owner != want {
			return s.denied(ctx, roomName, userID)
		}
		return nil
	}

	return s.denied(ctx, roomName, userID)
}

func (s *Service) requireMembership(ctx context.Context, room string, userID uuid.UUID) error {
	conn, err := s.memberships.FindActive(ctx, room, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return s.denied(ctx, room, userID)
	}
	if err != nil {
		return fmt.Errorf("lookup membership: %w", err)
	}
	if !conn.IsParty(userID) {
		return s.denied(ctx, room, userID)
	}
	return nil
}

func (s *Service) denied(ctx context.Context, room string, userID uuid.UUID) error {
	s.log.WarnContext(ctx, "room access denied",
		slog.String("room", room),
		slog.String("user_id", userID.String()),
	)
	return domain.ErrInvalidRoom
}

func (s *Service) registerRoom(ctx context.Context, owner, identity string) (string, error) {
	for range registerAttempts {
		room := roomid.MakeRoomName(roomid.PurposeCompanion, owner)
		err := s.rooms.Register(ctx, room, owner, identity, s.issuer.companionTTL)
		if err == nil {
			return room, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return "", fmt.Errorf("register room: %w", err)
		}
	}
	return "", fmt.Errorf("register room: %w", domain.ErrConflict)
}

// loadProfile returns nil when the profile is missing or cannot be read;
// a display name is never worth failing a grant over.
func (s *Service) loadProfile(ctx context.Context, userID uuid.UUID) *domain.Profile {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "profile lookup failed", slog.String("error", err.Error()))
		}
		return nil
	}
	return p
}
