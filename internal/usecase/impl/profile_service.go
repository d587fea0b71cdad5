package impl

import (
	"context"
	"log/slog"

	deliverycontext "paygate/internal/delivery/context"
	"paygate/internal/domain/entity"
	domainerrors "paygate/internal/domain/errors"
	"paygate/internal/domain/repository"
	"paygate/internal/domain/service"
	"paygate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the UserUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.UserUsecase {
	return &profileService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the authenticated user's account details.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user profile")
	}

	return &usecase.ProfileOutput{User: user}, nil
}

// UpdateProfile applies partial changes to the user's own profile. A password
// change requires the current password; an email change must not collide with
// another account.
func (srv *profileService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("userID", input.UserID))

	var updatedUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load user for update")
		}

		if input.Email != nil && *input.Email != user.Email {
			if err := srv.checkEmailAvailable(ctx, userRepo, *input.Email, user.ID); err != nil {
				return err
			}
			user.Email = *input.Email
		}

		if input.FullName != nil {
			user.FullName = *input.FullName
		}

		if input.NewPassword != nil {
			if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
				return domainerrors.ErrCurrentPasswordIncorrect
			}

			hashed, err := srv.hasher.Hash(*input.NewPassword)
			if err != nil {
				return errors.Wrap(err, "failed to hash new password")
			}
			user.PasswordHash = hashed
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user profile")
		}

		updatedUser = user

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("userID", input.UserID))

	return &usecase.ProfileOutput{User: updatedUser}, nil
}

func (srv *profileService) checkEmailAvailable(ctx context.Context, userRepo repository.UserRepository, email string, selfID uuid.UUID) error {
	existing, err := userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to check email availability")
	}

	if existing.ID != selfID {
		return domainerrors.ErrEmailTaken
	}

	return nil
}
