package service

import "paygate/internal/domain/entity"

// Outcome is the terminal result fabricated for a submitted payment.
type Outcome struct {
	Status     entity.TransactionStatus
	StatusCode int
	Message    string
}

// OutcomeSimulator fabricates plausible terminal payment statuses in place of
// a real settlement engine. The status distribution (10% pending, 85%
// successful, 5% failed) is a hard contract, statistically.
type OutcomeSimulator interface {
	// GenerateReference produces a transaction reference of the form
	// TRX-<millisecond timestamp>-<8 hex chars>. Uniqueness is
	// probabilistic; the store's unique constraint is the backstop.
	GenerateReference() string

	// SimulateOutcome draws the terminal status, its paired numeric code
	// and a human-readable message.
	SimulateOutcome() Outcome

	// Delay blocks for the configured minimum processing time. It is a
	// pure wait standing in for settlement latency and does not support
	// cancellation.
	Delay()
}
