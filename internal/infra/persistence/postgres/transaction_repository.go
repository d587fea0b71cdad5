// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"paygate/internal/domain/entity"
	domainerrors "paygate/internal/domain/errors"
	"paygate/internal/domain/repository"
	"paygate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// transactionRepository implements the domain.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create persists a new transaction record with its frozen outcome.
func (repo *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionM := fromTransactionDomain(transaction)

	if err := repo.db.WithContext(ctx).Create(transactionM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "transaction reference collision")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid participant reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create transaction")
	}

	// Update the entity with generated values
	transaction.ID = transactionM.ID
	transaction.CreatedAt = transactionM.CreatedAt

	return nil
}

// FindByReference retrieves a single transaction by its unique reference.
func (repo *transactionRepository) FindByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	var transactionM model.TransactionModel
	if err := repo.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&transactionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransactionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toTransactionDomain(&transactionM), nil
}

// FindByParticipant retrieves transactions where the user is payer or payee,
// most recent first, capped at limit rows.
func (repo *transactionRepository) FindByParticipant(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = repository.HistoryLimit
	}

	var transactionModels []*model.TransactionModel
	if err := repo.db.WithContext(ctx).
		Where("payer_id = ? OR payee_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactionModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for _, transactionM := range transactionModels {
		transactions = append(transactions, toTransactionDomain(transactionM))
	}

	return transactions, nil
}

// --- Mapper Functions ---

// toTransactionDomain converts a GORM TransactionModel to a domain Transaction entity.
func toTransactionDomain(data *model.TransactionModel) *entity.Transaction {
	if data == nil {
		return nil
	}

	return &entity.Transaction{
		ID:                 data.ID,
		Reference:          data.Reference,
		Amount:             data.Amount,
		Currency:           data.Currency,
		PayerID:            data.PayerID,
		PayeeID:            data.PayeeID,
		PayerAccountNumber: data.PayerAccountNumber,
		PayeeAccountNumber: data.PayeeAccountNumber,
		PayerReference:     data.PayerReference,
		Status:             entity.TransactionStatus(data.Status),
		StatusCode:         data.StatusCode,
		Message:            data.Message,
		CreatedAt:          data.CreatedAt,
	}
}

// fromTransactionDomain converts a domain Transaction entity to a GORM TransactionModel.
func fromTransactionDomain(data *entity.Transaction) *model.TransactionModel {
	if data == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:                 data.ID,
		Reference:          data.Reference,
		Amount:             data.Amount,
		Currency:           data.Currency,
		PayerID:            data.PayerID,
		PayeeID:            data.PayeeID,
		PayerAccountNumber: data.PayerAccountNumber,
		PayeeAccountNumber: data.PayeeAccountNumber,
		PayerReference:     data.PayerReference,
		Status:             data.Status.String(),
		Message:            data.Message,
		StatusCode:         data.StatusCode,
		CreatedAt:          data.CreatedAt,
	}
}
