package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthUsecase only implements Authenticate; the middleware never calls
// the other operations.
type fakeAuthUsecase struct {
	usecase.AuthUsecase

	users map[string]*entity.User
}

func (f *fakeAuthUsecase) Authenticate(ctx context.Context, tokenValue string) (*entity.User, error) {
	if user, ok := f.users[tokenValue]; ok {
		return user, nil
	}

	return nil, domainerrors.ErrUnauthenticated
}

func newAuthTestContext(t *testing.T, authHeader string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}

	return e.NewContext(req, httptest.NewRecorder())
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "amy@example.com", Role: entity.RoleUser}
	m := NewAuthMiddleware(&fakeAuthUsecase{users: map[string]*entity.User{"good-token": user}})

	c := newAuthTestContext(t, "Bearer good-token")
	err := m.Authenticate(func(c echo.Context) error {
		got, ok := CurrentUser(c)
		require.True(t, ok)
		assert.Equal(t, user.ID, got.ID)

		return c.NoContent(http.StatusOK)
	})(c)

	assert.NoError(t, err)
}

func TestAuthenticate_RejectsBadCredentials(t *testing.T) {
	m := NewAuthMiddleware(&fakeAuthUsecase{users: map[string]*entity.User{}})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic dXNlcjpwYXNz"},
		{"empty bearer value", "Bearer "},
		{"unknown token", "Bearer nope"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newAuthTestContext(t, tc.header)
			err := m.Authenticate(okHandler)(c)
			assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
	m := NewAuthMiddleware(&fakeAuthUsecase{users: map[string]*entity.User{"admin-token": admin}})

	t.Run("matching role passes", func(t *testing.T) {
		c := newAuthTestContext(t, "Bearer admin-token")
		err := m.Authenticate(func(c echo.Context) error {
			return m.RequireAdmin()(okHandler)(c)
		})(c)
		assert.NoError(t, err)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		c := newAuthTestContext(t, "Bearer admin-token")
		err := m.Authenticate(func(c echo.Context) error {
			return m.RequireRole("moderator")(okHandler)(c)
		})(c)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("role match is case sensitive", func(t *testing.T) {
		c := newAuthTestContext(t, "Bearer admin-token")
		err := m.Authenticate(func(c echo.Context) error {
			return m.RequireRole("Admin")(okHandler)(c)
		})(c)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("any-role accepts a matching set", func(t *testing.T) {
		c := newAuthTestContext(t, "Bearer admin-token")
		err := m.Authenticate(func(c echo.Context) error {
			return m.RequireAnyRole("moderator", entity.RoleAdmin)(okHandler)(c)
		})(c)
		assert.NoError(t, err)
	})

	t.Run("no identity is unauthenticated", func(t *testing.T) {
		c := newAuthTestContext(t, "")
		err := m.RequireAdmin()(okHandler)(c)
		assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	})
}
