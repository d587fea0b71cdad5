// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents a long-lived, authorized user session. The opaque
// token value is exchanged for a new access/refresh pair exactly once; the
// row is revoked on use (rotation), on logout, or lazily when found expired.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this specific refresh token record.
	Token     string    // The opaque random token value handed to the client.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	ExpiresAt time.Time // The exact time when this refresh token becomes invalid.
	IsRevoked bool      // Set once the token has been used, logged out, or found expired.
	CreatedAt time.Time // Timestamp of when this session was created.
}

// Active reports whether the token can still be exchanged at the given time.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.IsRevoked && now.Before(t.ExpiresAt)
}
