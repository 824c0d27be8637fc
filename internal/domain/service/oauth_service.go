package service

import (
	"context"
	"time"
)

// OAuthUser represents user information from OAuth providers
type OAuthUser struct {
	ID            string // Provider-specific user ID (e.g., Google's 'sub' claim)
	Email         string // User's email address
	Name          string // User's display name
	Provider      string // The OAuth provider name (e.g., "google")
	AvatarURL     string // URL to user's profile picture
	EmailVerified bool   // Whether the email is verified by the provider
	Locale        string // User's locale/language preference
}

// ProviderToken holds the credentials returned by a provider's token endpoint.
type ProviderToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time // nil when the provider did not report an expiry
}

// OAuthProvider defines the interface for the authorization-code flow
// against an external identity provider.
type OAuthProvider interface {
	// Name returns the provider's stable name (e.g., "google").
	Name() string

	// AuthCodeURL builds the provider's consent page URL carrying the
	// given anti-forgery state.
	AuthCodeURL(state string) string

	// Exchange redeems an authorization code for provider tokens.
	Exchange(ctx context.Context, code string) (*ProviderToken, error)

	// FetchUser retrieves the user's profile using a provider access token.
	FetchUser(ctx context.Context, accessToken string) (*OAuthUser, error)
}

// IDTokenVerifier defines the interface for verifying OAuth ID tokens.
// This is primarily used for sign-in flows where the client obtains an
// ID token directly and posts it to the backend.
type IDTokenVerifier interface {
	// VerifyIDToken verifies an OAuth ID token and returns user information.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
}
