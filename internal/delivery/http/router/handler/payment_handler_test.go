package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"paygate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPaymentUsecase lets each test pin exactly the flow it exercises.
type stubPaymentUsecase struct {
	initiateFn func(ctx context.Context, input *usecase.InitiatePaymentInput) (*usecase.PaymentOutput, error)
	statusFn   func(ctx context.Context, reference string) (*usecase.PaymentOutput, error)
	historyFn  func(ctx context.Context, userID uuid.UUID) ([]*usecase.HistoryEntryOutput, error)
	qrFn       func(ctx context.Context, reference string) ([]byte, error)
}

func (s *stubPaymentUsecase) InitiatePayment(ctx context.Context, input *usecase.InitiatePaymentInput) (*usecase.PaymentOutput, error) {
	return s.initiateFn(ctx, input)
}

func (s *stubPaymentUsecase) GetPaymentStatus(ctx context.Context, reference string) (*usecase.PaymentOutput, error) {
	return s.statusFn(ctx, reference)
}

func (s *stubPaymentUsecase) GetHistory(ctx context.Context, userID uuid.UUID) ([]*usecase.HistoryEntryOutput, error) {
	return s.historyFn(ctx, userID)
}

func (s *stubPaymentUsecase) GetReceiptQR(ctx context.Context, reference string) ([]byte, error) {
	return s.qrFn(ctx, reference)
}

func TestPaymentHandler_Initiate_Success(t *testing.T) {
	uc := &stubPaymentUsecase{
		initiateFn: func(_ context.Context, input *usecase.InitiatePaymentInput) (*usecase.PaymentOutput, error) {
			assert.Equal(t, "1234567890", input.PayerAccountNumber)
			assert.Equal(t, "0987654321", input.PayeeAccountNumber)
			assert.Equal(t, 100.00, input.Amount)
			assert.Equal(t, "USD", input.Currency)

			return &usecase.PaymentOutput{
				TransactionReference: "TRX-1700000000000-deadbeef",
				Status:               "SUCCESSFUL",
				StatusCode:           200,
				Message:              "Transaction successfully processed",
				Amount:               input.Amount,
				Currency:             input.Currency,
				PayerAccountNumber:   input.PayerAccountNumber,
				PayeeAccountNumber:   input.PayeeAccountNumber,
				CreatedAt:            time.Now(),
			}, nil
		},
	}

	e := newTestEcho()
	h := NewPaymentHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/payments/initiate", h.Initiate)

	rec := doRequest(e, http.MethodPost, "/payments/initiate",
		`{"payer":"1234567890","payee":"0987654321","amount":100.00,"currency":"USD"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Transaction successfully processed", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "TRX-1700000000000-deadbeef", data["transactionReference"])
	assert.Equal(t, "SUCCESSFUL", data["status"])
}

func TestPaymentHandler_Initiate_ValidationFailure(t *testing.T) {
	uc := &stubPaymentUsecase{
		initiateFn: func(context.Context, *usecase.InitiatePaymentInput) (*usecase.PaymentOutput, error) {
			t.Fatal("usecase must not be reached on validation failure")

			return nil, nil
		},
	}

	e := newTestEcho()
	h := NewPaymentHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.POST("/payments/initiate", h.Initiate)

	cases := map[string]string{
		"missing payer":      `{"payee":"0987654321","amount":100.00,"currency":"USD"}`,
		"short payer":        `{"payer":"123","payee":"0987654321","amount":100.00,"currency":"USD"}`,
		"lowercase currency": `{"payer":"1234567890","payee":"0987654321","amount":100.00,"currency":"usd"}`,
		"zero amount":        `{"payer":"1234567890","payee":"0987654321","amount":0,"currency":"USD"}`,
		"long reference": `{"payer":"1234567890","payee":"0987654321","amount":100.00,"currency":"USD","payerReference":"` +
			strings.Repeat("x", 101) + `"}`,
	}

	for name, payload := range cases {
		rec := doRequest(e, http.MethodPost, "/payments/initiate", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "case %q", name)
	}
}
