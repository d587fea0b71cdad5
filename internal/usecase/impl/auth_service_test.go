package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"paygate/internal/domain/entity"
	domainerrors "paygate/internal/domain/errors"
	"paygate/internal/domain/repository"
	mockRepo "paygate/internal/mocks/repository"
	mockService "paygate/internal/mocks/service"
	"paygate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mockUserMatcher(username string) any {
	return mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == username
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type authServiceMocks struct {
	factory      *mockRepo.MockRepositoryFactory
	userRepo     *mockRepo.MockUserRepository
	refreshRepo  *mockRepo.MockRefreshTokenRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func newTestAuthService(t *testing.T) (usecase.AuthUsecase, *authServiceMocks) {
	t.Helper()

	m := &authServiceMocks{
		factory:      &mockRepo.MockRepositoryFactory{},
		userRepo:     &mockRepo.MockUserRepository{},
		refreshRepo:  &mockRepo.MockRefreshTokenRepository{},
		hasher:       &mockService.MockPasswordHasher{},
		tokenService: &mockService.MockTokenService{},
	}
	m.factory.On("UserRepo").Return(m.userRepo).Maybe()
	m.factory.On("RefreshTokenRepo").Return(m.refreshRepo).Maybe()
	// Logged with every issued pair.
	m.tokenService.On("RefreshTokenDuration").Return(7 * 24 * time.Hour).Maybe()

	svc := &authService{
		txManager:        &mockRepo.FakeTransactionManager{Factory: m.factory},
		userRepo:         m.userRepo,
		refreshTokenRepo: m.refreshRepo,
		hasher:           m.hasher,
		tokenService:     m.tokenService,
		logger:           discardLogger(),
	}

	return svc, m
}

func testUser() *entity.User {
	return &entity.User{
		ID:            uuid.New(),
		Username:      "john_doe",
		Email:         "john@example.com",
		PasswordHash:  "$hashed$",
		FullName:      "John Doe",
		AccountNumber: "1234567890",
		Role:          entity.RoleUser,
	}
}

func testGrant(userID uuid.UUID) *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:        uuid.New(),
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	user := testUser()
	grant := testGrant(user.ID)

	m.userRepo.On("FindByUsername", ctx, "john_doe").Return(user, nil)
	m.hasher.On("Check", "SecurePass123!", user.PasswordHash).Return(true)
	m.tokenService.On("IssueAccessToken", user.ID).Return("signed.access.token", nil)
	m.tokenService.On("MintRefreshToken", user.ID).Return(grant)
	m.tokenService.On("AccessTokenTTL").Return(900)
	m.refreshRepo.On("Create", ctx, grant).Return(nil)

	output, err := svc.Login(ctx, &usecase.LoginInput{Username: "john_doe", Password: "SecurePass123!"})

	require.NoError(t, err)
	assert.Equal(t, "signed.access.token", output.AccessToken)
	assert.Equal(t, grant.Token, output.RefreshToken)
	assert.Equal(t, 900, output.AccessTokenExpiresIn)
	assert.Equal(t, user, output.User)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.userRepo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "whatever"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	user := testUser()

	m.userRepo.On("FindByUsername", ctx, "john_doe").Return(user, nil)
	m.hasher.On("Check", "WrongPassword", user.PasswordHash).Return(false)

	_, err := svc.Login(ctx, &usecase.LoginInput{Username: "john_doe", Password: "WrongPassword"})

	// Wrong password and unknown username share one error shape.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	m.tokenService.AssertNotCalled(t, "IssueAccessToken")
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	user := testUser()
	oldGrant := testGrant(user.ID)
	newGrant := testGrant(user.ID)

	m.refreshRepo.On("FindActive", ctx, oldGrant.Token).Return(oldGrant, nil)
	m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	m.tokenService.On("IssueAccessToken", user.ID).Return("fresh.access.token", nil)
	m.tokenService.On("MintRefreshToken", user.ID).Return(newGrant)
	m.tokenService.On("AccessTokenTTL").Return(900)
	m.refreshRepo.On("Create", ctx, newGrant).Return(nil)
	m.refreshRepo.On("Revoke", ctx, oldGrant.Token).Return(true, nil)

	output, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: oldGrant.Token})

	require.NoError(t, err)
	assert.Equal(t, "fresh.access.token", output.AccessToken)
	assert.Equal(t, newGrant.Token, output.RefreshToken)
	assert.NotEqual(t, oldGrant.Token, output.RefreshToken)
	m.refreshRepo.AssertCalled(t, "Revoke", ctx, oldGrant.Token)
}

func TestAuthService_Refresh_RevokedToken(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.refreshRepo.On("FindActive", ctx, "used-token").Return(nil, repository.ErrRefreshTokenRevoked)

	_, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "used-token"})

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	m.tokenService.AssertNotCalled(t, "MintRefreshToken")
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.refreshRepo.On("FindActive", ctx, "stale-token").Return(nil, repository.ErrRefreshTokenExpired)

	_, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "stale-token"})

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Refresh_LosesRevocationRace(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	user := testUser()
	oldGrant := testGrant(user.ID)
	newGrant := testGrant(user.ID)

	m.refreshRepo.On("FindActive", ctx, oldGrant.Token).Return(oldGrant, nil)
	m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	m.tokenService.On("IssueAccessToken", user.ID).Return("fresh.access.token", nil)
	m.tokenService.On("MintRefreshToken", user.ID).Return(newGrant)
	m.tokenService.On("AccessTokenTTL").Return(900)
	m.refreshRepo.On("Create", ctx, newGrant).Return(nil)
	// Another request consumed the token first: conditional update hits no rows.
	m.refreshRepo.On("Revoke", ctx, oldGrant.Token).Return(false, nil)

	_, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: oldGrant.Token})

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Logout_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.refreshRepo.On("Revoke", ctx, "live-token").Return(true, nil)

	err := svc.Logout(ctx, &usecase.LogoutInput{RefreshToken: "live-token"})

	require.NoError(t, err)
}

func TestAuthService_Logout_NotIdempotent(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.refreshRepo.On("Revoke", ctx, "gone-token").Return(false, nil)

	err := svc.Logout(ctx, &usecase.LogoutInput{RefreshToken: "gone-token"})

	assert.ErrorIs(t, err, domainerrors.ErrLogoutTokenInvalid)
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.hasher.On("Hash", "SecurePass123!").Return("$hashed$", nil)
	m.userRepo.On("FindByUsername", ctx, "jane_doe").Return(nil, repository.ErrUserNotFound)
	m.userRepo.On("FindByEmail", ctx, "jane@example.com").Return(nil, repository.ErrUserNotFound)
	m.userRepo.On("FindByAccountNumber", ctx, "0987654321").Return(nil, repository.ErrUserNotFound)
	m.userRepo.On("Create", ctx, mockUserMatcher("jane_doe")).Return(nil)

	output, err := svc.Register(ctx, &usecase.RegisterInput{
		Username:      "jane_doe",
		Email:         "jane@example.com",
		Password:      "SecurePass123!",
		FullName:      "Jane Doe",
		AccountNumber: "0987654321",
	})

	require.NoError(t, err)
	assert.Equal(t, "jane_doe", output.User.Username)
	assert.Equal(t, "$hashed$", output.User.PasswordHash)
	assert.Equal(t, entity.RoleUser, output.User.Role)
}

func TestAuthService_Register_UsernameConflict(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.hasher.On("Hash", "SecurePass123!").Return("$hashed$", nil)
	m.userRepo.On("FindByUsername", ctx, "john_doe").Return(testUser(), nil)

	_, err := svc.Register(ctx, &usecase.RegisterInput{
		Username:      "john_doe",
		Email:         "new@example.com",
		Password:      "SecurePass123!",
		FullName:      "New User",
		AccountNumber: "1112223334",
	})

	assert.ErrorIs(t, err, domainerrors.ErrUsernameExists)
	m.userRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_AccountNumberConflict(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.hasher.On("Hash", "SecurePass123!").Return("$hashed$", nil)
	m.userRepo.On("FindByUsername", ctx, "jane_doe").Return(nil, repository.ErrUserNotFound)
	m.userRepo.On("FindByEmail", ctx, "jane@example.com").Return(nil, repository.ErrUserNotFound)
	m.userRepo.On("FindByAccountNumber", ctx, "1234567890").Return(testUser(), nil)

	_, err := svc.Register(ctx, &usecase.RegisterInput{
		Username:      "jane_doe",
		Email:         "jane@example.com",
		Password:      "SecurePass123!",
		FullName:      "Jane Doe",
		AccountNumber: "1234567890",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAccountNumberExists)
}
