package usecase

import "context"

// OAuthUsecase defines the interface for OAuth sign-in flows.
type OAuthUsecase interface {
	// BeginGoogleFlow builds the Google consent URL carrying the given
	// anti-forgery state. The delivery layer owns minting the state and
	// pinning it to the browser.
	BeginGoogleFlow(ctx context.Context, state string) (string, error)

	// HandleGoogleCallback redeems the authorization code, resolves the
	// provider identity to a local account and opens a session.
	HandleGoogleCallback(ctx context.Context, code string) (*AuthOutput, error)

	// LoginWithIDToken verifies a Google ID token posted by the client
	// and opens a session for the resolved account.
	LoginWithIDToken(ctx context.Context, idToken string) (*AuthOutput, error)
}
