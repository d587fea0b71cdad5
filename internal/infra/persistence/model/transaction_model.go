package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionModel mirrors the 'transactions' table. Outcomes are frozen at
// creation time, so the row never changes after insert.
type TransactionModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Reference          string    `gorm:"type:varchar(64);unique;not null"`
	Amount             float64   `gorm:"type:numeric(19,4);not null"`
	Currency           string    `gorm:"type:varchar(3);not null"`
	PayerID            uuid.UUID `gorm:"type:uuid;not null;index"`
	PayeeID            uuid.UUID `gorm:"type:uuid;not null;index"`
	PayerAccountNumber string    `gorm:"type:varchar(34);not null"`
	PayeeAccountNumber string    `gorm:"type:varchar(34);not null"`
	PayerReference     string    `gorm:"type:varchar(255)"`
	Status             string    `gorm:"type:varchar(20);not null"`
	StatusCode         int       `gorm:"not null"`
	Message            string    `gorm:"type:varchar(255);not null"`
	CreatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}
