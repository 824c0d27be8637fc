package handler

import (
	"context"
	"io"
	"log/slog"
	"time"

	"authgate/internal/delivery/http/validator"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func testSession(email string) *usecase.AuthOutput {
	return &usecase.AuthOutput{
		Token:     "session-token",
		ExpiresAt: time.Now().Add(720 * time.Hour),
		User: &entity.User{
			ID:    uuid.New(),
			Email: email,
			Name:  "Amy",
			Role:  entity.RoleUser,
		},
	}
}

// fakeAuthUC is a scripted usecase.AuthUsecase.
type fakeAuthUC struct {
	registerOut *usecase.AuthOutput
	registerErr error
	loginOut    *usecase.AuthOutput
	loginErr    error
	profile     *usecase.ProfileOutput
	providers   []*entity.OAuthLink
	users       []*usecase.ProfileOutput

	gotRegister *usecase.RegisterInput
	gotLogin    *usecase.LoginInput
	loggedOut   []uuid.UUID
}

func (f *fakeAuthUC) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	f.gotRegister = &input

	return f.registerOut, f.registerErr
}

func (f *fakeAuthUC) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	f.gotLogin = &input

	return f.loginOut, f.loginErr
}

func (f *fakeAuthUC) Authenticate(ctx context.Context, tokenValue string) (*entity.User, error) {
	return nil, domainerrors.ErrUnauthenticated
}

func (f *fakeAuthUC) Logout(ctx context.Context, userID uuid.UUID) error {
	f.loggedOut = append(f.loggedOut, userID)

	return nil
}

func (f *fakeAuthUC) CurrentUser(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	if f.profile == nil {
		return nil, domainerrors.ErrUserNotFound
	}

	return f.profile, nil
}

func (f *fakeAuthUC) ListProviders(ctx context.Context, userID uuid.UUID) ([]*entity.OAuthLink, error) {
	return f.providers, nil
}

func (f *fakeAuthUC) ListUsers(ctx context.Context) ([]*usecase.ProfileOutput, error) {
	return f.users, nil
}

// fakeOAuthUC is a scripted usecase.OAuthUsecase.
type fakeOAuthUC struct {
	authURL     string
	callbackOut *usecase.AuthOutput
	callbackErr error
	idTokenOut  *usecase.AuthOutput
	idTokenErr  error

	gotState   string
	gotCode    string
	gotIDToken string
}

func (f *fakeOAuthUC) BeginGoogleFlow(ctx context.Context, state string) (string, error) {
	f.gotState = state

	return f.authURL + "&state=" + state, nil
}

func (f *fakeOAuthUC) HandleGoogleCallback(ctx context.Context, code string) (*usecase.AuthOutput, error) {
	f.gotCode = code

	return f.callbackOut, f.callbackErr
}

func (f *fakeOAuthUC) LoginWithIDToken(ctx context.Context, idToken string) (*usecase.AuthOutput, error) {
	f.gotIDToken = idToken

	return f.idTokenOut, f.idTokenErr
}

// fakeFieldUC is a scripted usecase.RegistrationFieldUsecase.
type fakeFieldUC struct {
	active []*entity.RegistrationField
	all    []*entity.RegistrationField
	field  *entity.RegistrationField

	createErr error
	deleted   []uuid.UUID
}

func (f *fakeFieldUC) ListPublic(ctx context.Context) ([]*entity.RegistrationField, error) {
	return f.active, nil
}

func (f *fakeFieldUC) ListAll(ctx context.Context) ([]*entity.RegistrationField, error) {
	return f.all, nil
}

func (f *fakeFieldUC) Get(ctx context.Context, id uuid.UUID) (*entity.RegistrationField, error) {
	if f.field == nil || f.field.ID != id {
		return nil, domainerrors.ErrFieldNotFound
	}

	return f.field, nil
}

func (f *fakeFieldUC) Create(ctx context.Context, input usecase.FieldInput) (*entity.RegistrationField, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	field := &entity.RegistrationField{
		ID:         uuid.New(),
		FieldName:  input.FieldName,
		FieldLabel: input.FieldLabel,
		FieldType:  input.FieldType,
		IsActive:   input.IsActive,
	}
	f.field = field

	return field, nil
}

func (f *fakeFieldUC) Update(ctx context.Context, id uuid.UUID, input usecase.FieldInput) (*entity.RegistrationField, error) {
	if f.field == nil || f.field.ID != id {
		return nil, domainerrors.ErrFieldNotFound
	}

	f.field.FieldLabel = input.FieldLabel

	return f.field, nil
}

func (f *fakeFieldUC) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)

	return nil
}
