// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Token represents a single bearer session credential. A user may hold many
// tokens at once (one per device); each token grants full access to the
// owning account until it expires or the user logs out.
type Token struct {
	ID        uuid.UUID // The unique ID for this token record.
	Value     string    // The opaque bearer string presented by clients. Globally unique.
	UserID    uuid.UUID // Links this token to the User it belongs to.
	CreatedAt time.Time // Timestamp of when this session was created.
	ExpiresAt time.Time // The exact time this token stops being accepted.
}

// Valid reports whether the token is still accepted at the given instant.
func (t *Token) Valid(now time.Time) bool {
	return TokenValid(t, now)
}

// TokenValue implements TokenLike.
func (t *Token) TokenValue() string { return t.Value }

// TokenExpiresAt implements TokenLike.
func (t *Token) TokenExpiresAt() time.Time { return t.ExpiresAt }

// TokenOwnerID implements TokenLike.
func (t *Token) TokenOwnerID() uuid.UUID { return t.UserID }

// TokenLike is the capability set shared logic needs from a session
// credential, mirroring Authenticatable for user-like types.
type TokenLike interface {
	TokenValue() string
	TokenExpiresAt() time.Time
	TokenOwnerID() uuid.UUID
}

// TokenValid reports whether a credential is still accepted at the given
// instant. Expiry is exclusive: a token presented exactly at its expiry
// time is rejected.
func TokenValid(t TokenLike, now time.Time) bool {
	return now.Before(t.TokenExpiresAt())
}
