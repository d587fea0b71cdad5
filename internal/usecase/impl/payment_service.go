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

// paymentService implements the PaymentUsecase interface.
// Every operation is a single repository call, so unlike the auth flows it
// does not go through the transaction manager.
type paymentService struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	simulator       service.OutcomeSimulator
	qrcodeService   service.QRCodeService
	logger          *slog.Logger
}

// PaymentServiceParams holds dependencies for paymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	UserRepo        repository.UserRepository
	TransactionRepo repository.TransactionRepository
	Simulator       service.OutcomeSimulator
	QRCodeService   service.QRCodeService
	Logger          *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		userRepo:        params.UserRepo,
		transactionRepo: params.TransactionRepo,
		simulator:       params.Simulator,
		qrcodeService:   params.QRCodeService,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// InitiatePayment submits a payment, simulates settlement and persists the
// transaction with its terminal outcome. The outcome is decided synchronously
// and never changes afterwards.
func (srv *paymentService) InitiatePayment(ctx context.Context, input *usecase.InitiatePaymentInput) (*usecase.PaymentOutput, error) {
	srv.log(ctx).Info("Initiating payment",
		slog.String("payerAccountNumber", input.PayerAccountNumber),
		slog.String("payeeAccountNumber", input.PayeeAccountNumber),
	)

	payer, err := srv.userRepo.FindByAccountNumber(ctx, input.PayerAccountNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Payment from unknown payer account",
				slog.String("payerAccountNumber", input.PayerAccountNumber),
			)

			return nil, domainerrors.ErrInvalidPayerAccount
		}

		return nil, errors.Wrap(err, "failed to load payer")
	}

	payee, err := srv.userRepo.FindByAccountNumber(ctx, input.PayeeAccountNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Payment to unknown payee account",
				slog.String("payeeAccountNumber", input.PayeeAccountNumber),
			)

			return nil, domainerrors.ErrInvalidPayeeAccount
		}

		return nil, errors.Wrap(err, "failed to load payee")
	}

	// Simulated settlement latency. Applied after validation so rejected
	// requests are not slowed down, and outside the transaction so no
	// database connection is held during the wait.
	srv.simulator.Delay()

	outcome := srv.simulator.SimulateOutcome()
	transaction := &entity.Transaction{
		Reference:          srv.simulator.GenerateReference(),
		Amount:             input.Amount,
		Currency:           input.Currency,
		PayerID:            payer.ID,
		PayeeID:            payee.ID,
		PayerAccountNumber: payer.AccountNumber,
		PayeeAccountNumber: payee.AccountNumber,
		PayerReference:     input.PayerReference,
		Status:             outcome.Status,
		StatusCode:         outcome.StatusCode,
		Message:            outcome.Message,
	}

	if err := srv.transactionRepo.Create(ctx, transaction); err != nil {
		srv.log(ctx).Error("Failed to persist transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist transaction")
	}

	srv.log(ctx).Info("Payment processed",
		slog.String("reference", transaction.Reference),
		slog.String("status", transaction.Status.String()),
	)

	return toPaymentOutput(transaction), nil
}

// GetPaymentStatus retrieves a transaction by its reference.
func (srv *paymentService) GetPaymentStatus(ctx context.Context, reference string) (*usecase.PaymentOutput, error) {
	transaction, err := srv.findByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	return toPaymentOutput(transaction), nil
}

// GetHistory lists the user's most recent transactions, as payer or payee,
// newest first, annotated with the direction of the money.
func (srv *paymentService) GetHistory(ctx context.Context, userID uuid.UUID) ([]*usecase.HistoryEntryOutput, error) {
	transactions, err := srv.transactionRepo.FindByParticipant(ctx, userID, repository.HistoryLimit)
	if err != nil {
		srv.log(ctx).Error("Failed to load transaction history", slog.Any("error", err), slog.Any("userID", userID))

		return nil, errors.Wrap(err, "failed to load transaction history")
	}

	entries := make([]*usecase.HistoryEntryOutput, 0, len(transactions))
	for _, transaction := range transactions {
		direction := usecase.DirectionReceived
		if transaction.PayerID == userID {
			direction = usecase.DirectionSent
		}

		entries = append(entries, &usecase.HistoryEntryOutput{
			PaymentOutput: *toPaymentOutput(transaction),
			Direction:     direction,
		})
	}

	return entries, nil
}

// GetReceiptQR renders a QR code image for an existing transaction's reference.
func (srv *paymentService) GetReceiptQR(ctx context.Context, reference string) ([]byte, error) {
	transaction, err := srv.findByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateReceiptQR(transaction.Reference)
	if err != nil {
		srv.log(ctx).Error("Failed to render receipt QR code", slog.Any("error", err), slog.String("reference", reference))

		return nil, errors.Wrap(err, "failed to render receipt QR code")
	}

	return png, nil
}

func (srv *paymentService) findByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	transaction, err := srv.transactionRepo.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, domainerrors.ErrTransactionNotFound
		}

		return nil, errors.Wrap(err, "failed to find transaction by reference")
	}

	return transaction, nil
}

func toPaymentOutput(transaction *entity.Transaction) *usecase.PaymentOutput {
	return &usecase.PaymentOutput{
		TransactionReference: transaction.Reference,
		Status:               transaction.Status.String(),
		StatusCode:           transaction.StatusCode,
		Message:              transaction.Message,
		Amount:               transaction.Amount,
		Currency:             transaction.Currency,
		PayerAccountNumber:   transaction.PayerAccountNumber,
		PayeeAccountNumber:   transaction.PayeeAccountNumber,
		PayerReference:       transaction.PayerReference,
		CreatedAt:            transaction.CreatedAt,
	}
}
