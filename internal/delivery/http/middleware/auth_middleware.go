package middleware

import (
	"strings"

	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// contextKeyUser is the echo.Context key the authenticated user is stored
// under by Authenticate.
const contextKeyUser = "auth_user"

// AuthMiddleware validates opaque bearer session tokens and enforces roles.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate resolves the Authorization bearer token to a user and stores
// it on the request context. Missing, malformed, unknown and expired tokens
// are all reported identically.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return domainerrors.ErrUnauthenticated
		}

		user, err := m.authUC.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		SetCurrentUser(c, user)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated user's
// role by exact string match. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return domainerrors.ErrUnauthenticated
			}

			if !entity.HasRole(user, requiredRole) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// RequireAnyRole is a middleware factory that checks the authenticated
// user's role against a set of acceptable roles.
func (m *AuthMiddleware) RequireAnyRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return domainerrors.ErrUnauthenticated
			}

			if !entity.HasAnyRole(user, roles...) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// RequireAdmin restricts a route to accounts holding the admin role.
func (m *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return m.RequireRole(entity.RoleAdmin)
}

// SetCurrentUser stores the authenticated user on the request context.
func SetCurrentUser(c echo.Context, user *entity.User) {
	c.Set(contextKeyUser, user)
}

// CurrentUser returns the user stored by Authenticate, if any.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(contextKeyUser).(*entity.User)

	return user, ok
}

// bearerToken extracts the opaque token from the Authorization header.
func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return "", false
	}

	return token, true
}
