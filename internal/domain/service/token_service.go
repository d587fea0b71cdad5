package service

import (
	"errors"
	"time"

	"paygate/internal/domain/entity"

	"github.com/google/uuid"
)

// Token verification errors.
var (
	// ErrTokenInvalid is returned when a token fails signature or structural checks.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
)

// TokenService defines the interface for issuing and verifying credentials.
// Access tokens are self-contained signed JWTs; refresh tokens are opaque
// random values whose validity lives entirely in the session store.
type TokenService interface {
	// IssueAccessToken creates a short-lived signed token carrying the user ID.
	IssueAccessToken(userID uuid.UUID) (string, error)

	// VerifyAccessToken checks signature and expiry only; it never consults
	// the session store, so revocation before natural expiry is not
	// supported for access tokens.
	VerifyAccessToken(tokenString string) (uuid.UUID, error)

	// MintRefreshToken generates a new opaque refresh token for the user
	// with expiry computed from the configured duration. The caller is
	// responsible for persisting it.
	MintRefreshToken(userID uuid.UUID) *entity.RefreshToken

	// AccessTokenTTL returns the access-token lifetime in whole seconds,
	// reported to clients as accessTokenExpiresIn.
	AccessTokenTTL() int

	// RefreshTokenDuration returns the configured refresh-token lifetime.
	RefreshTokenDuration() time.Duration
}
