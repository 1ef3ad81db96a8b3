package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is the public part of a user account, owned by the identity provider.
type Profile struct {
	ID       uuid.UUID
	Email    string
	FullName string
}

// DisplayName returns the full name, the email local part, or fallback.
func (p *Profile) DisplayName(fallback string) string {
	if p == nil {
		return fallback
	}
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(p.Email, "@"); ok && local != "" {
		return local
	}
	return fallback
}

// FullNameOr returns the full name or fallback, ignoring the email.
func (p *Profile) FullNameOr(fallback string) string {
	if p == nil {
		return fallback
	}
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	return fallback
}

// UserSettings holds per-user preferences. SealedAPIKey is never stored in plaintext.
type UserSettings struct {
	UserID       uuid.UUID
	SealedAPIKey []byte
	UpdatedAt    time.Time
}
