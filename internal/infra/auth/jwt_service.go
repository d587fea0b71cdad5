// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"paygate/config"
	"paygate/internal/domain/entity"
	"paygate/internal/domain/service"
)

// durationPattern matches expiry strings like "15m", "1h", "7d".
var durationPattern = regexp.MustCompile(`^(\d+)([dhms])$`)

// Fallbacks used when the configured expiry string does not match the pattern.
const (
	defaultAccessTTL  = 900 * time.Second
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// jwtService implements the TokenService interface. Access tokens are HS256
// JWTs; refresh tokens are opaque UUIDs whose state lives in the session store.
type jwtService struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:     cfg.JWT.Secret,
		accessTTL:  parseExpiry(cfg.JWT.AccessTokenExpiry, defaultAccessTTL),
		refreshTTL: parseExpiry(cfg.JWT.RefreshTokenExpiry, defaultRefreshTTL),
	}, nil
}

// IssueAccessToken creates a signed token carrying the user ID as subject.
func (s *jwtService) IssueAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),                // Subject (who the token is for)
		"iat": now.Unix(),                     // Issued At
		"exp": now.Add(s.accessTTL).Unix(),    // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// VerifyAccessToken checks signature and expiry, then extracts the user ID.
// Validity is purely self-contained; no store lookup is performed.
func (s *jwtService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, service.ErrTokenExpired
		}

		return uuid.Nil, service.ErrTokenInvalid
	}
	if !token.Valid {
		return uuid.Nil, service.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, service.ErrTokenInvalid
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, service.ErrTokenInvalid
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, service.ErrTokenInvalid
	}

	return userID, nil
}

// MintRefreshToken generates a new opaque refresh token. UUIDv4 carries 122
// bits of randomness, enough to make collisions an integrity error rather
// than a handled case.
func (s *jwtService) MintRefreshToken(userID uuid.UUID) *entity.RefreshToken {
	return &entity.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
}

// AccessTokenTTL returns the access-token lifetime in whole seconds.
func (s *jwtService) AccessTokenTTL() int {
	return int(s.accessTTL / time.Second)
}

// RefreshTokenDuration returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// parseExpiry converts a "<n><unit>" expiry string into a duration.
// Unmatched input falls back to the provided default.
func parseExpiry(expiry string, fallback time.Duration) time.Duration {
	match := durationPattern.FindStringSubmatch(expiry)
	if match == nil {
		return fallback
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return fallback
	}

	switch match[2] {
	case "d":
		return time.Duration(value) * 24 * time.Hour
	case "h":
		return time.Duration(value) * time.Hour
	case "m":
		return time.Duration(value) * time.Minute
	case "s":
		return time.Duration(value) * time.Second
	default:
		return fallback
	}
}
