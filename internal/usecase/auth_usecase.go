// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"paygate/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	FullName      string
	AccountNumber string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// RefreshInput carries the opaque refresh token presented for rotation.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token whose session should be ended.
type LogoutInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// TokenPairOutput returns a freshly issued credential pair. It is shared by
// login and refresh, which hand out identical shapes.
type TokenPairOutput struct {
	AccessToken          string
	RefreshToken         string
	AccessTokenExpiresIn int // Lifetime of the access token in seconds.
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	TokenPairOutput
	User *entity.User
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new user account. Username, email and account
	// number must each be unique.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and opens a new session.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh exchanges a valid refresh token for a brand new pair,
	// revoking the presented token. Each refresh token is usable once.
	Refresh(ctx context.Context, input *RefreshInput) (*TokenPairOutput, error)

	// Logout revokes the presented refresh token. Revoking a token that is
	// unknown or already revoked is an error, not a no-op.
	Logout(ctx context.Context, input *LogoutInput) error
}
