// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OAuthLink associates an external identity-provider account with a local
// User. The (ProviderName, ProviderUserID) pair is globally unique, which
// prevents the same external identity from being linked to two local users.
type OAuthLink struct {
	ID             uuid.UUID  // The unique ID for this link record.
	UserID         uuid.UUID  // Links this external identity to the User it belongs to.
	ProviderName   string     // Provider tag, e.g. "google".
	ProviderUserID string     // The user's unique ID issued by the external provider.
	ProviderEmail  string     // Email as reported by the provider; may diverge from the local user's email.
	AccessToken    string     // Provider access token, if retained. Opaque to this system.
	RefreshToken   string     // Provider refresh token, if granted.
	TokenExpiresAt *time.Time // Expiry of the provider access token, when known.
	CreatedAt      time.Time  // Timestamp of when this identity was first linked.
	UpdatedAt      time.Time  // Timestamp of the last provider-token refresh.
}
