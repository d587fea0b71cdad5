// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"time"

	"paygate/internal/domain/entity"
	"paygate/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a testify mock for service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenService is a testify mock for service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueAccessToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)

	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) MintRefreshToken(userID uuid.UUID) *entity.RefreshToken {
	args := m.Called(userID)

	return args.Get(0).(*entity.RefreshToken)
}

func (m *MockTokenService) AccessTokenTTL() int {
	args := m.Called()

	return args.Int(0)
}

func (m *MockTokenService) RefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// MockOutcomeSimulator is a testify mock for service.OutcomeSimulator.
type MockOutcomeSimulator struct {
	mock.Mock
}

func (m *MockOutcomeSimulator) GenerateReference() string {
	args := m.Called()

	return args.String(0)
}

func (m *MockOutcomeSimulator) SimulateOutcome() service.Outcome {
	args := m.Called()

	return args.Get(0).(service.Outcome)
}

func (m *MockOutcomeSimulator) Delay() {
	m.Called()
}

// MockQRCodeService is a testify mock for service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

func (m *MockQRCodeService) GenerateReceiptQR(reference string) ([]byte, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}
