package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"authgate/internal/delivery/http/middleware"
	"authgate/internal/delivery/http/response"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(e *echo.Echo, path string, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) *response.Response {
	t.Helper()

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return &body
}

func TestAuthHandler_Register(t *testing.T) {
	uc := &fakeAuthUC{registerOut: testSession("amy@example.com")}
	h := NewAuthHandler(uc, discardLogger())

	c, rec := postJSON(newTestEcho(), "/auth/register",
		`{"name":"Amy","email":"amy@example.com","password":"password123","fields":{"phone":"0912"}}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)

	require.NotNil(t, uc.gotRegister)
	assert.Equal(t, "amy@example.com", uc.gotRegister.Email)
	assert.Equal(t, map[string]string{"phone": "0912"}, uc.gotRegister.CustomFields)

	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var session sessionView
	require.NoError(t, json.Unmarshal(raw, &session))
	assert.Equal(t, "session-token", session.Token)
	assert.False(t, session.HasPassword) // testSession has no hash set
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUC{}, discardLogger())

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Amy","password":"password123"}`},
		{"malformed email", `{"name":"Amy","email":"not-an-email","password":"password123"}`},
		{"short password", `{"name":"Amy","email":"amy@example.com","password":"short"}`},
		{"missing name", `{"email":"amy@example.com","password":"password123"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := postJSON(newTestEcho(), "/auth/register", tc.body)

			err := h.Register(c)
			require.Error(t, err)

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	uc := &fakeAuthUC{registerErr: domainerrors.ErrEmailTaken}
	h := NewAuthHandler(uc, discardLogger())

	c, _ := postJSON(newTestEcho(), "/auth/register",
		`{"name":"Amy","email":"amy@example.com","password":"password123"}`)

	err := h.Register(c)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthHandler_Login(t *testing.T) {
	uc := &fakeAuthUC{loginOut: testSession("amy@example.com")}
	h := NewAuthHandler(uc, discardLogger())

	c, rec := postJSON(newTestEcho(), "/auth/login",
		`{"email":"amy@example.com","password":"password123"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.gotLogin)
	assert.Equal(t, "amy@example.com", uc.gotLogin.Email)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	uc := &fakeAuthUC{loginErr: domainerrors.ErrInvalidCredentials}
	h := NewAuthHandler(uc, discardLogger())

	c, _ := postJSON(newTestEcho(), "/auth/login",
		`{"email":"amy@example.com","password":"wrong-password"}`)

	err := h.Login(c)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

// withUser simulates the Authenticate middleware having run.
func withUser(e *echo.Echo, method string, path string, user *entity.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	middleware.SetCurrentUser(c, user)

	return c, rec
}

func TestAuthHandler_Me(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "amy@example.com", Name: "Amy", Role: entity.RoleUser, CreatedAt: time.Now()}
	uc := &fakeAuthUC{profile: &usecase.ProfileOutput{
		User: user,
		CustomFields: []*entity.UserCustomField{
			{UserID: user.ID, FieldName: "phone", FieldValue: "0912"},
		},
	}}
	h := NewAuthHandler(uc, discardLogger())

	c, rec := withUser(newTestEcho(), http.MethodGet, "/auth/me", user)

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phone":"0912"`)
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUC{}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c := newTestEcho().NewContext(req, httptest.NewRecorder())

	assert.ErrorIs(t, h.Me(c), domainerrors.ErrUnauthenticated)
}

func TestAuthHandler_Logout(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	uc := &fakeAuthUC{}
	h := NewAuthHandler(uc, discardLogger())

	c, rec := withUser(newTestEcho(), http.MethodPost, "/auth/logout", user)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uuid.UUID{user.ID}, uc.loggedOut)
}

func TestAuthHandler_Providers(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}
	uc := &fakeAuthUC{providers: []*entity.OAuthLink{
		{UserID: user.ID, ProviderName: "google", ProviderEmail: "amy@gmail.com"},
	}}
	h := NewAuthHandler(uc, discardLogger())

	c, rec := withUser(newTestEcho(), http.MethodGet, "/auth/providers", user)

	require.NoError(t, h.Providers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"provider":"google"`)
}

func TestAuthHandler_ListUsers(t *testing.T) {
	uc := &fakeAuthUC{users: []*usecase.ProfileOutput{
		{User: &entity.User{ID: uuid.New(), Email: "a@example.com", Role: entity.RoleAdmin}},
		{User: &entity.User{ID: uuid.New(), Email: "b@example.com", Role: entity.RoleUser}},
	}}
	h := NewAuthHandler(uc, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(req, rec)

	require.NoError(t, h.ListUsers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@example.com")
	assert.Contains(t, rec.Body.String(), "b@example.com")
}
