// Package payment provides the transaction outcome simulator, which stands in
// for a real settlement engine in this demo gateway.
package payment

import (
	cryptorand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"time"

	"paygate/config"
	"paygate/internal/domain/entity"
	"paygate/internal/domain/service"
)

// Fixed catalog of failure reasons, picked uniformly for FAILED outcomes.
var failureMessages = []string{
	"Transaction failed: Invalid payer account number",
	"Transaction failed: Invalid payee account number",
	"Transaction failed: Insufficient funds",
	"Transaction failed: Invalid amount",
	"Transaction failed: Unsupported currency",
	"Transaction failed: System error",
	"Transaction failed: Duplicate transaction",
	"Transaction failed: Transaction timed out",
}

// simulator implements the OutcomeSimulator interface.
type simulator struct {
	delay time.Duration
}

// NewSimulator is the constructor for the outcome simulator. The minimum
// processing delay comes from configuration so tests can set it to zero.
func NewSimulator(cfg *config.Config) service.OutcomeSimulator {
	return &simulator{delay: cfg.Payment.ProcessingDelay}
}

// GenerateReference produces a reference of the form
// TRX-<millisecond timestamp>-<8 hex chars>. Two calls within the same
// millisecond still differ thanks to the random suffix; uniqueness is not
// checked against the store.
func (s *simulator) GenerateReference() string {
	var suffix [4]byte
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = cryptorand.Read(suffix[:])

	return fmt.Sprintf("TRX-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix[:]))
}

// SimulateOutcome draws one uniform integer in [0,100) and maps ranges to the
// contracted distribution: 10% PENDING, 85% SUCCESSFUL, 5% FAILED.
func (s *simulator) SimulateOutcome() service.Outcome {
	draw := rand.IntN(100)

	switch {
	case draw < 10:
		return service.Outcome{
			Status:     entity.StatusPending,
			StatusCode: 100,
			Message:    "Transaction Pending",
		}
	case draw < 95:
		return service.Outcome{
			Status:     entity.StatusSuccessful,
			StatusCode: 200,
			Message:    "Transaction successfully processed",
		}
	default:
		return service.Outcome{
			Status:     entity.StatusFailed,
			StatusCode: 400,
			Message:    failureMessages[rand.IntN(len(failureMessages))],
		}
	}
}

// Delay blocks for the configured minimum processing time. The wait is not
// tied to any real work and does not support cancellation.
func (s *simulator) Delay() {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
}
