// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"paygate/config"
	deliverycontext "paygate/internal/delivery/context"
	"paygate/internal/domain/entity"
	domainerrors "paygate/internal/domain/errors"
	"paygate/internal/domain/repository"
	"paygate/internal/domain/service"
	"paygate/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process. Username,
// email and account number are each checked for uniqueness inside the
// transaction; the table's unique constraints backstop concurrent races.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := srv.checkRegistrationConflicts(ctx, userRepo, input); err != nil {
			return err
		}

		newUser := &entity.User{
			Username:      input.Username,
			Email:         input.Email,
			PasswordHash:  hashedPassword,
			FullName:      input.FullName,
			AccountNumber: input.AccountNumber,
			Role:          entity.RoleUser,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		registeredUser = newUser

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

func (srv *authService) checkRegistrationConflicts(ctx context.Context, userRepo repository.UserRepository, input *usecase.RegisterInput) error {
	if _, err := userRepo.FindByUsername(ctx, input.Username); err == nil {
		return domainerrors.ErrUsernameExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check username uniqueness")
	}

	if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
		return domainerrors.ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check email uniqueness")
	}

	if _, err := userRepo.FindByAccountNumber(ctx, input.AccountNumber); err == nil {
		return domainerrors.ErrAccountNumberExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check account number uniqueness")
	}

	return nil
}

// Login orchestrates the user login process. An unknown username and a wrong
// password produce the same error, so the response never confirms whether an
// account exists.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("username", input.Username))

	loggedInUser, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, loggedInUser.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials
	}

	pair, err := srv.issueTokenPair(ctx, srv.refreshTokenRepo, loggedInUser)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return &usecase.LoginOutput{
		TokenPairOutput: *pair,
		User:            loggedInUser,
	}, nil
}

// Refresh exchanges a refresh token for a fresh pair. The presented token is
// consumed exactly once: the new grant is persisted first, then the old one
// is revoked conditionally, and if another request already consumed it the
// whole transaction rolls back, discarding the new grant.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Info("Attempting to refresh access token")

	var pair *usecase.TokenPairOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		grant, err := refreshRepo.FindActive(ctx, input.RefreshToken)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) ||
				errors.Is(err, repository.ErrRefreshTokenRevoked) ||
				errors.Is(err, repository.ErrRefreshTokenExpired) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		user, err := userRepo.FindByID(ctx, grant.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to find user for refresh")
		}

		pair, err = srv.issueTokenPair(ctx, refreshRepo, user)
		if err != nil {
			return err
		}

		revoked, err := refreshRepo.Revoke(ctx, input.RefreshToken)
		if err != nil {
			return errors.Wrap(err, "failed to revoke rotated refresh token")
		}
		if !revoked {
			// A concurrent request consumed the token between FindActive
			// and here. Losing the race invalidates this rotation.
			return domainerrors.ErrRefreshTokenInvalid
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Refresh token rotation failed", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Refresh token rotated successfully")

	return pair, nil
}

// Logout revokes the presented refresh token. Unknown, expired and already
// revoked tokens all fail the same way; logout is deliberately not idempotent.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Info("Attempting to log out")

	revoked, err := srv.refreshTokenRepo.Revoke(ctx, input.RefreshToken)
	if err != nil {
		srv.log(ctx).Error("Failed to revoke refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke refresh token")
	}
	if !revoked {
		srv.log(ctx).Warn("Logout with unknown or already revoked token")

		return domainerrors.ErrLogoutTokenInvalid
	}

	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// issueTokenPair creates a signed access token and a persisted refresh grant
// for the user.
func (srv *authService) issueTokenPair(ctx context.Context, refreshRepo repository.RefreshTokenRepository, user *entity.User) (*usecase.TokenPairOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	newGrant := srv.tokenService.MintRefreshToken(user.ID)
	if err := refreshRepo.Create(ctx, newGrant); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	srv.log(ctx).Debug("Issued token pair",
		slog.Any("userID", user.ID),
		slog.Duration("refreshTokenTTL", srv.tokenService.RefreshTokenDuration()),
	)

	return &usecase.TokenPairOutput{
		AccessToken:          accessToken,
		RefreshToken:         newGrant.Token,
		AccessTokenExpiresIn: srv.tokenService.AccessTokenTTL(),
	}, nil
}
