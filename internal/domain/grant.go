package domain

import (
	"strings"
	"time"
)

// Capability is one permission bit within an access grant.
type Capability uint8

const (
	CapJoin Capability = 1 << iota
	CapPublishAudio
	CapPublishVideo
	CapPublishScreenShare
	CapPublishData
	CapSubscribe
	CapUpdateOwnMetadata
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{CapJoin, "join"},
	{CapPublishAudio, "publishAudio"},
	{CapPublishVideo, "publishVideo"},
	{CapPublishScreenShare, "publishScreenShare"},
	{CapPublishData, "publishData"},
	{CapSubscribe, "subscribe"},
	{CapUpdateOwnMetadata, "updateOwnMetadata"},
}

// Capabilities is a set of Capability bits.
type Capabilities uint8

// NewCapabilities builds a set from individual bits.
func NewCapabilities(caps ...Capability) Capabilities {
	var set Capabilities
	for _, c := range caps {
		set |= Capabilities(c)
	}
	return set
}

// Has reports whether c is in the set.
func (s Capabilities) Has(c Capability) bool { return s&Capabilities(c) != 0 }

// With returns the set extended by caps.
func (s Capabilities) With(caps ...Capability) Capabilities {
	return s | NewCapabilities(caps...)
}

// Names lists the set members in declaration order.
func (s Capabilities) Names() []string {
	names := make([]string, 0, len(capabilityNames))
	for _, cn := range capabilityNames {
		if s.Has(cn.c) {
			names = append(names, cn.name)
		}
	}
	return names
}

func (s Capabilities) String() string {
	return "{" + strings.Join(s.Names(), ",") + "}"
}

// CallType selects the media surface of a peer session.
type CallType string

const (
	CallTypeVideo CallType = "video"
	CallTypeVoice CallType = "voice"
)

// IsVideo reports whether the call carries camera and screen-share tracks.
// Anything other than "video" is treated as audio only.
func (t CallType) IsVideo() bool { return t == CallTypeVideo }

// AccessGrant is a signed, time-limited credential for one identity in one room.
type AccessGrant struct {
	Identity     string
	Name         string
	RoomName     string
	Capabilities Capabilities
	IssuedAt     time.Time
	TTL          time.Duration
	Token        string
}

// ExpiresAt returns the moment the grant stops being honoured by the media server.
func (g AccessGrant) ExpiresAt() time.Time {
	return g.IssuedAt.Add(g.TTL)
}
