// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	tokenRepo     repository.TokenRepository
	oauthLinkRepo repository.OAuthLinkRepository
	fieldRepo     repository.RegistrationFieldRepository
	hasher        service.PasswordHasher
	tokenIssuer   service.TokenIssuer
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	TokenRepo     repository.TokenRepository
	OAuthLinkRepo repository.OAuthLinkRepository
	FieldRepo     repository.RegistrationFieldRepository
	Hasher        service.PasswordHasher
	TokenIssuer   service.TokenIssuer
	Logger        *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:     params.TxManager,
		userRepo:      params.UserRepo,
		tokenRepo:     params.TokenRepo,
		oauthLinkRepo: params.OAuthLinkRepo,
		fieldRepo:     params.FieldRepo,
		hasher:        params.Hasher,
		tokenIssuer:   params.TokenIssuer,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail lowers and trims an email so lookups and uniqueness
// behave case-insensitively.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a password account and opens its first session.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	customFields, err := srv.validateCustomFields(ctx, input.CustomFields)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("hash password")
	}

	user := &entity.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hashedPassword,
		Role:         entity.RoleUser,
	}

	var session *entity.Token
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return domainerrors.ErrEmailTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing email")
		}

		if err := userRepo.Create(ctx, user); err != nil {
			// A concurrent registration can slip between the lookup and
			// the insert; the constraint reports it as a taken email.
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrEmailTaken
			}

			return err
		}

		for _, field := range customFields {
			field.UserID = user.ID
		}
		if err := userRepo.CreateCustomFields(ctx, customFields); err != nil {
			return err
		}

		issued, err := srv.tokenIssuer.Issue(user.ID)
		if err != nil {
			return errors.Wrap(err, "failed to issue session token")
		}
		if err := repoFactory.NewTokenRepository().Create(ctx, issued); err != nil {
			return err
		}
		session = issued

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Registration completed", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{Token: session.Value, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// validateCustomFields checks submitted values against the active
// registration fields and returns the entities to persist.
func (srv *authService) validateCustomFields(ctx context.Context, values map[string]string) ([]*entity.UserCustomField, error) {
	fields, err := srv.fieldRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load registration fields")
	}

	known := make(map[string]*entity.RegistrationField, len(fields))
	for _, field := range fields {
		known[field.FieldName] = field
	}

	for name := range values {
		if _, ok := known[name]; !ok {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown field: " + name)
		}
	}

	result := make([]*entity.UserCustomField, 0, len(values))
	for _, field := range fields {
		value, present := values[field.FieldName]
		value = strings.TrimSpace(value)

		if field.IsRequired && (!present || value == "") {
			return nil, domainerrors.ErrValidationFailed.WithDetails("missing required field: " + field.FieldName)
		}
		if !present || value == "" {
			continue
		}

		if field.FieldType == entity.FieldTypeSelect && len(field.Options) > 0 &&
			!slices.Contains(field.Options, value) {
			return nil, domainerrors.ErrValidationFailed.WithDetails("invalid option for field: " + field.FieldName)
		}

		if field.ValidationPattern != "" {
			pattern, err := regexp.Compile(field.ValidationPattern)
			if err != nil {
				// A broken admin-supplied pattern must not lock users out.
				srv.log(ctx).Warn("Skipping invalid validation pattern",
					slog.String("field", field.FieldName), slog.Any("error", err))
			} else if !pattern.MatchString(value) {
				return nil, domainerrors.ErrValidationFailed.WithDetails("value does not match pattern for field: " + field.FieldName)
			}
		}

		result = append(result, &entity.UserCustomField{
			FieldName:  field.FieldName,
			FieldValue: value,
		})
	}

	return result, nil
}

// Login verifies email and password and opens a new session.
// Every failure path shares one error so the response never reveals
// whether the email exists.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}

	if !user.HasPassword() {
		// Provider-only accounts have no password to check.
		return nil, domainerrors.ErrInvalidCredentials
	}

	ok, err := srv.hasher.Check(input.Password, user.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored password hash is unreadable",
			slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("verify password")
	}
	if !ok {
		return nil, domainerrors.ErrInvalidCredentials
	}

	session, err := srv.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{Token: session.Value, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// openSession mints and persists a fresh session token.
func (srv *authService) openSession(ctx context.Context, userID uuid.UUID) (*entity.Token, error) {
	session, err := srv.tokenIssuer.Issue(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}
	if err := srv.tokenRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Authenticate resolves a presented bearer token to its user.
func (srv *authService) Authenticate(ctx context.Context, tokenValue string) (*entity.User, error) {
	if tokenValue == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	token, err := srv.tokenRepo.FindByValue(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, domainerrors.ErrUnauthenticated
		}

		return nil, errors.Wrap(err, "failed to look up session token")
	}

	if !token.Valid(time.Now()) {
		// Lazy cleanup: the expired row is removed the moment it is
		// presented, and the caller sees the same answer as for an
		// unknown token.
		if err := srv.tokenRepo.Delete(ctx, token.ID); err != nil {
			srv.log(ctx).Warn("Failed to remove expired session token",
				slog.Any("tokenID", token.ID), slog.Any("error", err))
		}

		return nil, domainerrors.ErrUnauthenticated
	}

	user, err := srv.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	return user, nil
}

// Logout ends every session the user holds.
func (srv *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := srv.tokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	srv.log(ctx).Info("Logout completed", slog.Any("userID", userID))

	return nil
}

// CurrentUser returns the authenticated user's profile.
func (srv *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	customFields, err := srv.userRepo.FindCustomFieldsByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load custom fields")
	}

	return &usecase.ProfileOutput{User: user, CustomFields: customFields}, nil
}

// ListProviders returns the OAuth provider links of a user.
func (srv *authService) ListProviders(ctx context.Context, userID uuid.UUID) ([]*entity.OAuthLink, error) {
	return srv.oauthLinkRepo.FindByUserID(ctx, userID)
}

// ListUsers returns all accounts with their custom field values.
func (srv *authService) ListUsers(ctx context.Context) ([]*usecase.ProfileOutput, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]*usecase.ProfileOutput, 0, len(users))
	for _, user := range users {
		customFields, err := srv.userRepo.FindCustomFieldsByUserID(ctx, user.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load custom fields")
		}
		profiles = append(profiles, &usecase.ProfileOutput{User: user, CustomFields: customFields})
	}

	return profiles, nil
}
