// Package google implements the OAuth provider contracts against Google's
// OAuth 2.0 endpoints.
package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"authgate/config"
	"authgate/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	// ProviderName is the stable identifier stored with provider links.
	ProviderName = "google"

	defaultScopes = "email profile"

	// Outbound calls to Google are bounded so a slow upstream cannot
	// hold the callback handler open indefinitely.
	httpTimeout = 10 * time.Second
)

// OAuthClient handles the authorization-code flow against Google.
type OAuthClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       string

	httpClient *http.Client

	// Endpoint overrides for tests; zero values mean the real Google endpoints.
	authURL     string
	tokenURL    string
	userInfoURL string
}

// NewOAuthClient creates a Google OAuth client from application config.
func NewOAuthClient(cfg *config.Config) service.OAuthProvider {
	scopes := defaultScopes
	if len(cfg.GoogleOAuth.Scopes) > 0 {
		scopes = strings.Join(cfg.GoogleOAuth.Scopes, " ")
	}

	return &OAuthClient{
		clientID:     cfg.GoogleOAuth.ClientID,
		clientSecret: cfg.GoogleOAuth.ClientSecret,
		redirectURI:  cfg.GoogleOAuth.RedirectURI,
		scopes:       scopes,
		httpClient:   &http.Client{Timeout: httpTimeout},
		authURL:      googleAuthURL,
		tokenURL:     googleTokenURL,
		userInfoURL:  googleUserInfoURL,
	}
}

// Name returns the provider's stable name.
func (c *OAuthClient) Name() string {
	return ProviderName
}

// AuthCodeURL constructs the Google consent page URL carrying the given
// anti-forgery state. Offline access with forced consent makes Google
// return a refresh token on every grant.
func (c *OAuthClient) AuthCodeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", c.scopes)
	params.Set("response_type", "code")
	params.Set("state", state)
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")

	return c.authURL + "?" + params.Encode()
}

// Exchange redeems an authorization code at Google's token endpoint.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (*service.ProviderToken, error) {
	data := url.Values{}
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", c.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create token exchange request")
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange code for token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, errors.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResponse struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return nil, errors.Wrap(err, "failed to decode token response")
	}

	if tokenResponse.AccessToken == "" {
		return nil, errors.New("token response contained no access token")
	}

	token := &service.ProviderToken{
		AccessToken:  tokenResponse.AccessToken,
		RefreshToken: tokenResponse.RefreshToken,
	}
	if tokenResponse.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(tokenResponse.ExpiresIn) * time.Second)
		token.ExpiresAt = &expiresAt
	}

	return token, nil
}

// FetchUser retrieves the user's profile using a provider access token.
func (c *OAuthClient) FetchUser(ctx context.Context, accessToken string) (*service.OAuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, errors.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var googleUser struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		VerifiedEmail bool   `json:"verified_email"`
		Locale        string `json:"locale"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	if googleUser.ID == "" {
		return nil, errors.New("user info response contained no user ID")
	}

	return &service.OAuthUser{
		ID:            googleUser.ID,
		Email:         googleUser.Email,
		Name:          googleUser.Name,
		Provider:      ProviderName,
		AvatarURL:     googleUser.Picture,
		EmailVerified: googleUser.VerifiedEmail,
		Locale:        googleUser.Locale,
	}, nil
}
