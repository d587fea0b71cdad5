package payment

import (
	"regexp"
	"testing"
	"time"

	"paygate/config"
	"paygate/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(delay time.Duration) *simulator {
	cfg := &config.Config{}
	cfg.Payment.ProcessingDelay = delay

	return NewSimulator(cfg).(*simulator)
}

var referencePattern = regexp.MustCompile(`^TRX-\d+-[0-9a-f]{8}$`)

func TestSimulator_GenerateReference_Format(t *testing.T) {
	sim := newTestSimulator(0)

	for range 100 {
		ref := sim.GenerateReference()
		assert.Regexp(t, referencePattern, ref)
	}
}

func TestSimulator_GenerateReference_Uniqueness(t *testing.T) {
	sim := newTestSimulator(0)

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		ref := sim.GenerateReference()
		_, dup := seen[ref]
		require.False(t, dup, "duplicate reference %s", ref)
		seen[ref] = struct{}{}
	}
}

func TestSimulator_SimulateOutcome_PairsStatusAndCode(t *testing.T) {
	sim := newTestSimulator(0)

	for range 1000 {
		outcome := sim.SimulateOutcome()

		require.True(t, outcome.Status.IsValid())
		assert.Equal(t, outcome.Status.StatusCode(), outcome.StatusCode)

		switch outcome.Status {
		case entity.StatusPending:
			assert.Equal(t, "Transaction Pending", outcome.Message)
		case entity.StatusSuccessful:
			assert.Equal(t, "Transaction successfully processed", outcome.Message)
		case entity.StatusFailed:
			assert.Contains(t, failureMessages, outcome.Message)
		}
	}
}

// The 10/85/5 split is a statistical contract. With 100k draws the observed
// shares stay well within two percentage points of the expectation.
func TestSimulator_SimulateOutcome_Distribution(t *testing.T) {
	sim := newTestSimulator(0)

	const draws = 100_000
	counts := map[entity.TransactionStatus]int{}
	for range draws {
		counts[sim.SimulateOutcome().Status]++
	}

	assert.InDelta(t, 0.10, float64(counts[entity.StatusPending])/draws, 0.02)
	assert.InDelta(t, 0.85, float64(counts[entity.StatusSuccessful])/draws, 0.02)
	assert.InDelta(t, 0.05, float64(counts[entity.StatusFailed])/draws, 0.02)
}

func TestSimulator_Delay_Floor(t *testing.T) {
	sim := newTestSimulator(20 * time.Millisecond)

	start := time.Now()
	sim.Delay()
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSimulator_Delay_ZeroIsInstant(t *testing.T) {
	sim := newTestSimulator(0)

	start := time.Now()
	sim.Delay()
	assert.Less(t, time.Since(start), 5*time.Millisecond)
}

func TestFailureMessageCatalog(t *testing.T) {
	assert.Len(t, failureMessages, 8)
	for _, msg := range failureMessages {
		assert.Contains(t, msg, "Transaction failed: ")
	}
}
