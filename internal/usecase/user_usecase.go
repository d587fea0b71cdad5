package usecase

import (
	"context"

	"paygate/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpdateProfileInput defines the editable profile fields. Nil pointers mean
// "leave unchanged". Changing the password requires the current one.
type UpdateProfileInput struct {
	UserID          uuid.UUID
	Email           *string
	FullName        *string
	NewPassword     *string
	CurrentPassword string
}

// --- Output DTOs ---

// ProfileOutput returns a user's own account information.
type ProfileOutput struct {
	User *entity.User
}

// UserUsecase defines the interface for profile business operations.
type UserUsecase interface {
	// GetProfile returns the authenticated user's account details.
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)

	// UpdateProfile applies partial changes to the user's own profile.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error)
}
