// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"paygate/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for refresh token persistence.
var (
	// ErrRefreshTokenNotFound is returned when a refresh token is not found.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrRefreshTokenRevoked is returned when a refresh token has already been consumed or logged out.
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	// ErrRefreshTokenExpired is returned when a refresh token has expired.
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
)

// RefreshTokenRepository is the single source of truth for session validity.
// Each row represents one refresh-token grant; a grant is consumed exactly
// once, either by rotation, by logout, or lazily when found expired.
type RefreshTokenRepository interface {
	// Create persists a new refresh token with IsRevoked=false. The token
	// column carries a unique constraint; a collision (astronomically
	// unlikely at 122 bits of entropy) surfaces as an integrity error
	// rather than silently overwriting the existing row.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindActive resolves an opaque token value to its record. It returns
	// ErrRefreshTokenNotFound for unknown tokens, ErrRefreshTokenRevoked
	// for consumed ones, and ErrRefreshTokenExpired for expired ones. A
	// read that discovers an expired but not-yet-revoked row marks it
	// revoked as a side effect, so the token cannot be replayed later.
	FindActive(ctx context.Context, token string) (*entity.RefreshToken, error)

	// Revoke marks the token revoked via a conditional update ("set
	// revoked where not revoked"). It reports false when the token is
	// unknown or was already revoked, which callers use both for
	// one-time-use enforcement and for logout failure reporting.
	Revoke(ctx context.Context, token string) (bool, error)
}
