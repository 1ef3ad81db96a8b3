// Package roomid encodes and decodes room names and participant identities.
//
// Room names have the form {purpose}-{owner}-{suffix}. The owner segment is a
// hint for logs and diagnostics only: it is not bound to the room by any
// signature and must never be used to authorize access.
package roomid

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	PurposeCompanion = "mindcure"
	PurposePeer      = "peer"

	// AnonymousOwner stands in for callers without an account.
	AnonymousOwner = "anonymous"

	// MaxNumericSuffix is the upper bound (inclusive) of numeric room suffixes.
	MaxNumericSuffix = 9999

	// IdentityPrefixLen is how many characters of the user id go into an identity.
	IdentityPrefixLen = 8

	sep = "-"
)

// Role is the tag prepended to a participant identity.
type Role string

const (
	RoleCompanionUser Role = "mindcure_user_"
	RolePeer          Role = "peer_"
)

// MakeRoomName returns {purpose}-{owner}-{n} with n uniformly drawn from [0, MaxNumericSuffix].
func MakeRoomName(purpose, ownerUserID string) string {
	return join(purpose, ownerUserID, strconv.FormatInt(randomSuffix(), 10))
}

// MakeRoomNameULID is MakeRoomName with a ULID suffix, for rooms whose names
// must stay unique beyond a single grant TTL.
func MakeRoomNameULID(purpose, ownerUserID string) string {
	return join(purpose, ownerUserID, newULID())
}

// ExtractOwnerID returns the owner segment of a room name.
// The purpose never contains the separator, so the owner is everything
// between the first and the last separator; owner ids may contain hyphens.
func ExtractOwnerID(room string) (string, bool) {
	first := strings.Index(room, sep)
	last := strings.LastIndex(room, sep)
	if first < 0 || last <= first+1 {
		return "", false
	}
	return room[first+1 : last], true
}

// Purpose returns the purpose segment of a room name.
func Purpose(room string) (string, bool) {
	purpose, _, ok := strings.Cut(room, sep)
	if !ok || purpose == "" {
		return "", false
	}
	return purpose, true
}

// MakeParticipantIdentity returns the role tag followed by a truncated user id.
// Distinct users sharing the same prefix collide; callers that need uniqueness
// combine the identity with the room name.
func MakeParticipantIdentity(role Role, userID string) string {
	if userID == "" {
		userID = AnonymousOwner
	}
	if len(userID) > IdentityPrefixLen {
		userID = userID[:IdentityPrefixLen]
	}
	return string(role) + userID
}

func join(purpose, owner, suffix string) string {
	purpose = strings.ReplaceAll(strings.TrimSpace(purpose), sep, "_")
	if purpose == "" {
		purpose = "room"
	}
	if owner == "" {
		owner = AnonymousOwner
	}
	return purpose + sep + owner + sep + suffix
}

var suffixBound = big.NewInt(MaxNumericSuffix + 1)

func randomSuffix() int64 {
	n, err := rand.Int(rand.Reader, suffixBound)
	if err != nil {
		// crypto/rand does not fail on supported platforms; keep the
		// format valid regardless.
		return time.Now().UnixNano() % (MaxNumericSuffix + 1)
	}
	return n.Int64()
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}
