package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// HistoryDirection labels a transaction relative to the querying user.
type HistoryDirection string

const (
	// DirectionSent marks transactions where the user was the payer.
	DirectionSent HistoryDirection = "SENT"
	// DirectionReceived marks transactions where the user was the payee.
	DirectionReceived HistoryDirection = "RECEIVED"
)

// --- Input DTOs ---

// InitiatePaymentInput defines the data required to submit a payment. Both
// parties are identified by their 10-digit account numbers and resolved
// against the credential store before any settlement is simulated.
type InitiatePaymentInput struct {
	PayerAccountNumber string
	PayeeAccountNumber string
	Amount             float64
	Currency           string
	PayerReference     string
}

// --- Output DTOs ---

// PaymentOutput is the view of a transaction returned to clients.
type PaymentOutput struct {
	TransactionReference string
	Status               string
	StatusCode           int
	Message              string
	Amount               float64
	Currency             string
	PayerAccountNumber   string
	PayeeAccountNumber   string
	PayerReference       string
	CreatedAt            time.Time
}

// HistoryEntryOutput is one row of a user's transaction history, annotated
// with the direction of the money relative to that user.
type HistoryEntryOutput struct {
	PaymentOutput
	Direction HistoryDirection
}

// PaymentUsecase defines the interface for payment business operations.
type PaymentUsecase interface {
	// InitiatePayment validates the payee, simulates settlement and
	// persists the transaction with its terminal outcome.
	InitiatePayment(ctx context.Context, input *InitiatePaymentInput) (*PaymentOutput, error)

	// GetPaymentStatus retrieves a transaction by its reference.
	GetPaymentStatus(ctx context.Context, reference string) (*PaymentOutput, error)

	// GetHistory lists the user's most recent transactions, as payer or
	// payee, newest first.
	GetHistory(ctx context.Context, userID uuid.UUID) ([]*HistoryEntryOutput, error)

	// GetReceiptQR renders a QR code image for an existing transaction's
	// reference.
	GetReceiptQR(ctx context.Context, reference string) ([]byte, error)
}
