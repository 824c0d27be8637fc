package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	"authgate/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// oauthService implements the OAuthUsecase interface.
type oauthService struct {
	txManager   repository.TransactionManager
	provider    service.OAuthProvider
	verifier    service.IDTokenVerifier
	tokenRepo   repository.TokenRepository
	tokenIssuer service.TokenIssuer
	logger      *slog.Logger
}

// OAuthServiceParams holds dependencies for oauthService, injected by Fx.
type OAuthServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	Provider    service.OAuthProvider
	Verifier    service.IDTokenVerifier
	TokenRepo   repository.TokenRepository
	TokenIssuer service.TokenIssuer
	Logger      *slog.Logger
}

// NewOAuthService is the constructor for oauthService.
func NewOAuthService(params OAuthServiceParams) usecase.OAuthUsecase {
	return &oauthService{
		txManager:   params.TxManager,
		provider:    params.Provider,
		verifier:    params.Verifier,
		tokenRepo:   params.TokenRepo,
		tokenIssuer: params.TokenIssuer,
		logger:      params.Logger,
	}
}

func (srv *oauthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// BeginGoogleFlow builds the Google consent URL for the given state.
func (srv *oauthService) BeginGoogleFlow(_ context.Context, state string) (string, error) {
	if state == "" {
		return "", domainerrors.ErrInternalError.WrapMessage("empty oauth state")
	}

	return srv.provider.AuthCodeURL(state), nil
}

// HandleGoogleCallback redeems the authorization code, resolves the
// provider identity to a local account and opens a session.
func (srv *oauthService) HandleGoogleCallback(ctx context.Context, code string) (*usecase.AuthOutput, error) {
	providerToken, err := srv.provider.Exchange(ctx, code)
	if err != nil {
		srv.log(ctx).Warn("Authorization code exchange failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthUpstream.WrapMessage(err.Error())
	}

	oauthUser, err := srv.provider.FetchUser(ctx, providerToken.AccessToken)
	if err != nil {
		srv.log(ctx).Warn("Provider profile fetch failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthUpstream.WrapMessage(err.Error())
	}

	return srv.signIn(ctx, oauthUser, providerToken)
}

// LoginWithIDToken verifies a posted Google ID token and opens a session.
func (srv *oauthService) LoginWithIDToken(ctx context.Context, idToken string) (*usecase.AuthOutput, error) {
	oauthUser, err := srv.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, domainerrors.ErrOAuthTokenInvalid.WrapMessage(err.Error())
	}

	return srv.signIn(ctx, oauthUser, nil)
}

// signIn resolves the provider identity to a local account and opens a session.
func (srv *oauthService) signIn(ctx context.Context, oauthUser *service.OAuthUser, providerToken *service.ProviderToken) (*usecase.AuthOutput, error) {
	user, err := srv.resolveAccount(ctx, oauthUser, providerToken)
	if err != nil {
		return nil, err
	}

	session, err := srv.tokenIssuer.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}
	if err := srv.tokenRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("OAuth sign-in completed",
		slog.Any("userID", user.ID), slog.String("provider", oauthUser.Provider))

	return &usecase.AuthOutput{Token: session.Value, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// resolveAccount maps a provider identity onto a local account:
//  1. a known provider identity signs in its linked account,
//  2. otherwise a matching email gets the provider linked to it,
//  3. otherwise a fresh account is provisioned.
//
// A concurrent callback for the same identity can race the inserts; the
// unique constraints surface that, and one retry turns the loser's insert
// into a plain lookup.
func (srv *oauthService) resolveAccount(ctx context.Context, oauthUser *service.OAuthUser, providerToken *service.ProviderToken) (*entity.User, error) {
	if oauthUser.ID == "" {
		return nil, domainerrors.ErrOAuthUpstream.WrapMessage("provider returned no user ID")
	}
	if oauthUser.Email == "" {
		return nil, domainerrors.ErrOAuthUpstream.WrapMessage("provider returned no email")
	}

	user, err := srv.resolveOnce(ctx, oauthUser, providerToken)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrDuplicateOAuthLink) && !errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, err
	}

	srv.log(ctx).Info("Account resolution lost a race, retrying as lookup",
		slog.String("provider", oauthUser.Provider), slog.String("providerUserID", oauthUser.ID))

	user, err = srv.resolveOnce(ctx, oauthUser, providerToken)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("account resolution failed after retry")
	}

	return user, nil
}

func (srv *oauthService) resolveOnce(ctx context.Context, oauthUser *service.OAuthUser, providerToken *service.ProviderToken) (*entity.User, error) {
	email := normalizeEmail(oauthUser.Email)

	var resolved *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		linkRepo := repoFactory.NewOAuthLinkRepository()

		link, err := linkRepo.FindByProviderUserID(ctx, oauthUser.Provider, oauthUser.ID)
		if err == nil {
			// Returning user: the identity is already linked.
			user, err := userRepo.FindByID(ctx, link.UserID)
			if err != nil {
				return errors.Wrap(err, "linked user missing")
			}

			if err := srv.refreshLink(ctx, linkRepo, link, oauthUser, providerToken); err != nil {
				return err
			}
			resolved = user

			return nil
		}
		if !errors.Is(err, repository.ErrOAuthLinkNotFound) {
			return errors.Wrap(err, "failed to look up provider identity")
		}

		user, err := userRepo.FindByEmail(ctx, email)
		if err == nil {
			// Email match: attach the provider identity to the existing account.
			if err := linkRepo.Create(ctx, newLink(user, oauthUser, providerToken)); err != nil {
				return err
			}
			resolved = user

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up user by email")
		}

		// New user: provision a provider-only account.
		user = &entity.User{
			Email: email,
			Name:  providerDisplayName(oauthUser, email),
			Role:  entity.RoleUser,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		if err := linkRepo.Create(ctx, newLink(user, oauthUser, providerToken)); err != nil {
			return err
		}
		resolved = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return resolved, nil
}

// refreshLink updates the stored provider credentials, writing only when
// something actually changed.
func (srv *oauthService) refreshLink(ctx context.Context, linkRepo repository.OAuthLinkRepository, link *entity.OAuthLink, oauthUser *service.OAuthUser, providerToken *service.ProviderToken) error {
	changed := false

	if email := normalizeEmail(oauthUser.Email); email != "" && link.ProviderEmail != email {
		link.ProviderEmail = email
		changed = true
	}
	if providerToken != nil {
		if providerToken.AccessToken != "" && link.AccessToken != providerToken.AccessToken {
			link.AccessToken = providerToken.AccessToken
			link.TokenExpiresAt = providerToken.ExpiresAt
			changed = true
		}
		if providerToken.RefreshToken != "" && link.RefreshToken != providerToken.RefreshToken {
			link.RefreshToken = providerToken.RefreshToken
			changed = true
		}
	}

	if !changed {
		return nil
	}

	return linkRepo.Update(ctx, link)
}

func newLink(user *entity.User, oauthUser *service.OAuthUser, providerToken *service.ProviderToken) *entity.OAuthLink {
	link := &entity.OAuthLink{
		UserID:         user.ID,
		ProviderName:   oauthUser.Provider,
		ProviderUserID: oauthUser.ID,
		ProviderEmail:  normalizeEmail(oauthUser.Email),
	}
	if providerToken != nil {
		link.AccessToken = providerToken.AccessToken
		link.RefreshToken = providerToken.RefreshToken
		link.TokenExpiresAt = providerToken.ExpiresAt
	}

	return link
}

// providerDisplayName picks a name for a freshly provisioned account:
// the provider profile name when present, else the email local part.
func providerDisplayName(oauthUser *service.OAuthUser, email string) string {
	if name := strings.TrimSpace(oauthUser.Name); name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}
