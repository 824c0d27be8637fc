package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"authgate/config"
	"authgate/internal/delivery/http/response"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/infra/auth/google"
	"authgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// stateCookieName pins the anti-forgery state to the browser that
	// started the flow.
	stateCookieName = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

// OAuthHandler drives the browser-facing Google sign-in flow and the
// client-side ID-token flow.
type OAuthHandler struct {
	oauthUC     usecase.OAuthUsecase
	logger      *slog.Logger
	frontendURL string
}

// NewOAuthHandler is the constructor for OAuthHandler, injected by Fx.
func NewOAuthHandler(oauthUC usecase.OAuthUsecase, cfg *config.Config, logger *slog.Logger) *OAuthHandler {
	frontendURL := ""
	if cfg.Frontend != nil {
		frontendURL = cfg.Frontend.OAuthRedirectURL
	}

	return &OAuthHandler{
		oauthUC:     oauthUC,
		logger:      logger,
		frontendURL: frontendURL,
	}
}

// GoogleLogin starts the authorization-code flow. The minted state is
// pinned to the browser through a short-lived HttpOnly cookie before the
// redirect to the Google consent page.
func (h *OAuthHandler) GoogleLogin(c echo.Context) error {
	state, err := google.GenerateState()
	if err != nil {
		return errors.WithStack(err)
	}

	authURL, err := h.oauthUC.BeginGoogleFlow(c.Request().Context(), state)
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})

	// Frontends that prefer to drive the redirect themselves can ask
	// for the URL instead.
	if c.QueryParam("redirect") == "false" {
		return response.Success(c, http.StatusOK, map[string]string{
			"oauthUrl": authURL,
		}, "Google OAuth URL generated successfully")
	}

	return c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback finishes the authorization-code flow. Failures are
// reported to the frontend through the redirect channel rather than as a
// raw error page.
func (h *OAuthHandler) GoogleCallback(c echo.Context) error {
	h.clearStateCookie(c)

	if errCode := c.QueryParam("error"); errCode != "" {
		return h.redirectError(c, "consent_denied", errCode)
	}

	if !h.stateMatches(c) {
		stateErr := domainerrors.ErrOAuthStateMismatch
		return h.redirectError(c, stateErr.ErrorCode(), stateErr.Message())
	}

	code := c.QueryParam("code")
	if code == "" {
		return h.redirectError(c, "missing_code", "No authorization code in callback")
	}

	output, err := h.oauthUC.HandleGoogleCallback(c.Request().Context(), code)
	if err != nil {
		h.logger.Warn("Google callback failed", slog.String("error", err.Error()))

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return h.redirectError(c, appErr.ErrorCode(), appErr.Message())
		}

		return h.redirectError(c, "oauth_failed", "Google sign-in failed")
	}

	return h.redirectSuccess(c, output)
}

type idTokenRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// GoogleToken handles the client-side sign-in path: the frontend obtained
// a Google ID token itself and posts it here for a local session.
func (h *OAuthHandler) GoogleToken(c echo.Context) error {
	var req idTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid ID token input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.oauthUC.LoginWithIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newSessionView(output), "Google sign-in successful")
}

// stateMatches compares the callback's state parameter with the value
// pinned to the browser when the flow started.
func (h *OAuthHandler) stateMatches(c echo.Context) bool {
	state := c.QueryParam("state")
	if state == "" {
		return false
	}

	cookie, err := c.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	return cookie.Value == state
}

func (h *OAuthHandler) clearStateCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth/google",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *OAuthHandler) redirectSuccess(c echo.Context, output *usecase.AuthOutput) error {
	target := h.frontendTarget(c)
	query := target.Query()
	query.Set("token", output.Token)
	query.Set("source", "google")
	target.RawQuery = query.Encode()

	return c.Redirect(http.StatusTemporaryRedirect, target.String())
}

func (h *OAuthHandler) redirectError(c echo.Context, code string, reason string) error {
	target := h.frontendTarget(c)
	query := target.Query()
	query.Set("error", code)
	query.Set("reason", reason)
	target.RawQuery = query.Encode()

	return c.Redirect(http.StatusTemporaryRedirect, target.String())
}

// frontendTarget parses the configured post-OAuth landing URL, falling
// back to the site root when unset or unparseable.
func (h *OAuthHandler) frontendTarget(c echo.Context) *url.URL {
	if h.frontendURL != "" {
		if target, err := url.Parse(h.frontendURL); err == nil {
			return target
		}
		h.logger.Warn("invalid frontend OAuth redirect URL", slog.String("url", h.frontendURL))
	}

	return &url.URL{Path: "/"}
}
