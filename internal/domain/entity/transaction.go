// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is the terminal state of a simulated payment. The
// simulator decides the final status synchronously at creation time; rows
// never transition afterwards.
type TransactionStatus string

const (
	// StatusPending indicates the payment is still being processed.
	StatusPending TransactionStatus = "PENDING"
	// StatusSuccessful indicates the payment settled.
	StatusSuccessful TransactionStatus = "SUCCESSFUL"
	// StatusFailed indicates the payment was rejected.
	StatusFailed TransactionStatus = "FAILED"
)

// String returns the string representation of the status.
func (s TransactionStatus) String() string {
	return string(s)
}

// StatusCode returns the numeric code paired 1:1 with the status.
func (s TransactionStatus) StatusCode() int {
	switch s {
	case StatusPending:
		return 100
	case StatusSuccessful:
		return 200
	case StatusFailed:
		return 400
	default:
		return 0
	}
}

// IsValid checks if the TransactionStatus is a valid value.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccessful, StatusFailed:
		return true
	default:
		return false
	}
}

// Transaction represents a single payment record. Payer and payee are linked
// both by user ID and by a denormalized account-number snapshot, capturing
// the account numbers as they were at transaction time.
type Transaction struct {
	ID                 uuid.UUID         // The unique identifier for the record.
	Reference          string            // Unique generated reference, "TRX-<ms>-<hex>".
	Amount             float64           // Payment amount in major currency units.
	Currency           string            // 3-letter ISO currency code.
	PayerID            uuid.UUID         // The paying user.
	PayeeID            uuid.UUID         // The receiving user.
	PayerAccountNumber string            // Snapshot of the payer's account number.
	PayeeAccountNumber string            // Snapshot of the payee's account number.
	PayerReference     string            // Optional free-text reference supplied by the payer.
	Status             TransactionStatus // Terminal simulated status.
	StatusCode         int               // Numeric code paired with Status.
	Message            string            // Human-readable outcome message.
	CreatedAt          time.Time         // Timestamp of creation.
}
