// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"paygate/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTransactionNotFound is returned when no transaction matches the given reference.
var ErrTransactionNotFound = errors.New("transaction not found")

// HistoryLimit caps transaction history queries to the most recent entries.
const HistoryLimit = 20

// TransactionRepository defines persistence for immutable payment records.
// Rows are written once with their terminal status and never updated.
type TransactionRepository interface {
	// Create persists a new transaction record.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByReference retrieves a single transaction by its unique reference.
	FindByReference(ctx context.Context, reference string) (*entity.Transaction, error)

	// FindByParticipant retrieves transactions where the user is payer or
	// payee, ordered by creation time descending, capped at limit rows.
	FindByParticipant(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error)
}
