package impl

import (
	"context"
	"testing"
	"time"

	"paygate/internal/domain/entity"
	domainerrors "paygate/internal/domain/errors"
	"paygate/internal/domain/repository"
	"paygate/internal/domain/service"
	mockRepo "paygate/internal/mocks/repository"
	mockService "paygate/internal/mocks/service"
	"paygate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentServiceMocks struct {
	userRepo        *mockRepo.MockUserRepository
	transactionRepo *mockRepo.MockTransactionRepository
	simulator       *mockService.MockOutcomeSimulator
	qrcodeService   *mockService.MockQRCodeService
}

func newTestPaymentService(t *testing.T) (usecase.PaymentUsecase, *paymentServiceMocks) {
	t.Helper()

	m := &paymentServiceMocks{
		userRepo:        &mockRepo.MockUserRepository{},
		transactionRepo: &mockRepo.MockTransactionRepository{},
		simulator:       &mockService.MockOutcomeSimulator{},
		qrcodeService:   &mockService.MockQRCodeService{},
	}

	svc := &paymentService{
		userRepo:        m.userRepo,
		transactionRepo: m.transactionRepo,
		simulator:       m.simulator,
		qrcodeService:   m.qrcodeService,
		logger:          discardLogger(),
	}

	return svc, m
}

func testPayer() *entity.User {
	return &entity.User{ID: uuid.New(), Username: "payer", AccountNumber: "1234567890"}
}

func testPayee() *entity.User {
	return &entity.User{ID: uuid.New(), Username: "payee", AccountNumber: "0987654321"}
}

func TestPaymentService_InitiatePayment_Success(t *testing.T) {
	svc, m := newTestPaymentService(t)
	ctx := context.Background()
	payer := testPayer()
	payee := testPayee()

	m.userRepo.On("FindByAccountNumber", ctx, payer.AccountNumber).Return(payer, nil)
	m.userRepo.On("FindByAccountNumber", ctx, payee.AccountNumber).Return(payee, nil)
	m.simulator.On("Delay").Return()
	m.simulator.On("SimulateOutcome").Return(service.Outcome{
		Status:     entity.StatusSuccessful,
		StatusCode: 200,
		Message:    "Transaction successfully processed",
	})
	m.simulator.On("GenerateReference").Return("TRX-1700000000000-deadbeef")
	m.transactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
		return tx.Reference == "TRX-1700000000000-deadbeef" &&
			tx.PayerID == payer.ID &&
			tx.PayeeID == payee.ID &&
			tx.PayerAccountNumber == payer.AccountNumber &&
			tx.PayeeAccountNumber == payee.AccountNumber &&
			tx.Status == entity.StatusSuccessful
	})).Return(nil)

	output, err := svc.InitiatePayment(ctx, &usecase.InitiatePaymentInput{
		PayerAccountNumber: payer.AccountNumber,
		PayeeAccountNumber: payee.AccountNumber,
		Amount:             100.00,
		Currency:           "USD",
		PayerReference:     "rent",
	})

	require.NoError(t, err)
	assert.Equal(t, "TRX-1700000000000-deadbeef", output.TransactionReference)
	assert.Equal(t, "SUCCESSFUL", output.Status)
	assert.Equal(t, 200, output.StatusCode)
	assert.Equal(t, "Transaction successfully processed", output.Message)
	m.simulator.AssertCalled(t, "Delay")
}

func TestPaymentService_InitiatePayment_UnknownPayee(t *testing.T) {
	svc, m := newTestPaymentService(t)
	ctx := context.Background()
	payer := testPayer()

	m.userRepo.On("FindByAccountNumber", ctx, payer.AccountNumber).Return(payer, nil)
	m.userRepo.On("FindByAccountNumber", ctx, "0000000000").Return(nil, repository.ErrUserNotFound)

	_, err := svc.InitiatePayment(ctx, &usecase.InitiatePaymentInput{
		PayerAccountNumber: payer.AccountNumber,
		PayeeAccountNumber: "0000000000",
		Amount:             100.00,
		Currency:           "USD",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidPayeeAccount)
	// Rejections skip both the settlement delay and persistence.
	m.simulator.AssertNotCalled(t, "Delay")
	m.transactionRepo.AssertNotCalled(t, "Create")
}

func TestPaymentService_InitiatePayment_UnknownPayer(t *testing.T) {
	svc, m := newTestPaymentService(t)
	ctx := context.Background()

	m.userRepo.On("FindByAccountNumber", ctx, "1111111111").Return(nil, repository.ErrUserNotFound)

	_, err := svc.InitiatePayment(ctx, &usecase.InitiatePaymentInput{
		PayerAccountNumber: "1111111111",
		PayeeAccountNumber: "0987654321",
		Amount:             50.00,
		Currency:           "USD",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidPayerAccount)
	// The payee is never looked up when the payer is unknown.
	m.userRepo.AssertNotCalled(t, "FindByAccountNumber", ctx, "0987654321")
	m.simulator.AssertNotCalled(t, "Delay")
	m.transactionRepo.AssertNotCalled(t, "Create")
}

func TestPaymentService_GetPaymentStatus_NotFound(t *testing.T) {
	svc, m := newTestPaymentService(t)
	ctx := context.Background()

	m.transactionRepo.On("FindByReference", ctx, "TRX-nonexistent").Return(nil, repository.ErrTransactionNotFound)

	_, err := svc.GetPaymentStatus(ctx, "TRX-nonexistent")

	assert.ErrorIs(t, err, domainerrors.ErrTransactionNotFound)
}

func TestPaymentService_GetHistory_Directions(t *testing.T) {
	svc, m := newTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	transactions := []*entity.Transaction{
		{Reference: "TRX-1-aaaaaaaa", PayerID: userID, PayeeID: otherID, CreatedAt: time.Now()},
		{Reference: "TRX-2-bbbbbbbb", PayerID: otherID, PayeeID: userID, CreatedAt: time.Now().Add(-time.Minute)},
	}
	m.transactionRepo.On("FindByParticipant", ctx, userID, repository.HistoryLimit).Return(transactions, nil)

	entries, err := svc.GetHistory(ctx, userID)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, usecase.DirectionSent, entries[0].Direction)
	assert.Equal(t, usecase.DirectionReceived, entries[1].Direction)
}

func TestPaymentService_GetReceiptQR(t *testing.T) {
	svc, m := newTestPaymentService(t)
	ctx := context.Background()
	transaction := &entity.Transaction{Reference: "TRX-1-aaaaaaaa"}

	m.transactionRepo.On("FindByReference", ctx, "TRX-1-aaaaaaaa").Return(transaction, nil)
	m.qrcodeService.On("GenerateReceiptQR", "TRX-1-aaaaaaaa").Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := svc.GetReceiptQR(ctx, "TRX-1-aaaaaaaa")

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestPaymentService_GetReceiptQR_UnknownReference(t *testing.T) {
	svc, m := newTestPaymentService(t)
	ctx := context.Background()

	m.transactionRepo.On("FindByReference", ctx, "TRX-nope").Return(nil, repository.ErrTransactionNotFound)

	_, err := svc.GetReceiptQR(ctx, "TRX-nope")

	assert.ErrorIs(t, err, domainerrors.ErrTransactionNotFound)
	m.qrcodeService.AssertNotCalled(t, "GenerateReceiptQR")
}
