// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single bank account
// holder. The account number is a unique 10-digit identifier used as the
// routing handle for payments.
type User struct {
	ID            uuid.UUID // The unique identifier for the user.
	Username      string    // Unique login name.
	Email         string    // Unique contact email.
	PasswordHash  string    // bcrypt hash of the login password; never exposed outward.
	FullName      string    // Display name used on transaction receipts.
	AccountNumber string    // Unique 10-digit account number.
	Role          Role      // Authorization role, USER or ADMIN.
	CreatedAt     time.Time // Timestamp of account creation.
	UpdatedAt     time.Time // Timestamp of the last profile modification.
}
