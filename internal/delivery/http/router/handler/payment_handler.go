package handler

import (
	"log/slog"
	"net/http"
	"time"

	"paygate/internal/delivery/http/middleware"
	"paygate/internal/delivery/http/response"
	"paygate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler holds dependencies for payment handlers.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		uc:     uc,
		logger: logger,
	}
}

// initiatePaymentRequest carries both endpoints of the transfer as account
// numbers. The payer is resolved by account number like the payee, not taken
// from the access token.
type initiatePaymentRequest struct {
	Payer          string  `json:"payer" validate:"required,numeric,len=10"`
	Payee          string  `json:"payee" validate:"required,numeric,len=10"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Currency       string  `json:"currency" validate:"required,len=3,alpha,uppercase"`
	PayerReference string  `json:"payerReference" validate:"omitempty,max=100"`
}

type paymentView struct {
	TransactionReference string    `json:"transactionReference"`
	Status               string    `json:"status"`
	StatusCode           int       `json:"statusCode"`
	Message              string    `json:"message"`
	Amount               float64   `json:"amount"`
	Currency             string    `json:"currency"`
	PayerAccountNumber   string    `json:"payerAccountNumber"`
	PayeeAccountNumber   string    `json:"payeeAccountNumber"`
	PayerReference       string    `json:"payerReference,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

type historyEntryView struct {
	paymentView
	Direction string `json:"direction"`
}

func toPaymentView(output *usecase.PaymentOutput) paymentView {
	return paymentView{
		TransactionReference: output.TransactionReference,
		Status:               output.Status,
		StatusCode:           output.StatusCode,
		Message:              output.Message,
		Amount:               output.Amount,
		Currency:             output.Currency,
		PayerAccountNumber:   output.PayerAccountNumber,
		PayeeAccountNumber:   output.PayeeAccountNumber,
		PayerReference:       output.PayerReference,
		CreatedAt:            output.CreatedAt,
	}
}

// Initiate handles payment submission. Accepted payments always answer 200
// with the simulated outcome in the payload; only validation and unknown
// account errors change the HTTP status.
func (h *PaymentHandler) Initiate(c echo.Context) error {
	var req initiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.InitiatePayment(c.Request().Context(), &usecase.InitiatePaymentInput{
		PayerAccountNumber: req.Payer,
		PayeeAccountNumber: req.Payee,
		Amount:             req.Amount,
		Currency:           req.Currency,
		PayerReference:     req.PayerReference,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPaymentView(output), output.Message)
}

// GetStatus handles transaction status lookup by reference.
func (h *PaymentHandler) GetStatus(c echo.Context) error {
	reference := c.Param("transactionReference")

	output, err := h.uc.GetPaymentStatus(c.Request().Context(), reference)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPaymentView(output), "Transaction retrieved successfully")
}

// GetHistory lists the authenticated user's recent transactions.
func (h *PaymentHandler) GetHistory(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	entries, err := h.uc.GetHistory(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]historyEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, historyEntryView{
			paymentView: toPaymentView(&entry.PaymentOutput),
			Direction:   string(entry.Direction),
		})
	}

	return response.Success(c, http.StatusOK, views, "Transaction history retrieved successfully")
}

// GetReceiptQR streams a PNG QR code for an existing transaction.
func (h *PaymentHandler) GetReceiptQR(c echo.Context) error {
	reference := c.Param("transactionReference")

	png, err := h.uc.GetReceiptQR(c.Request().Context(), reference)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
