package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/coreshare/rental-service/internal/delivery/http/dto"
	"github.com/coreshare/rental-service/internal/delivery/http/mpesa"
	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/usecase"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	Usecase usecase.PaymentUsecase
	V       *validator.Validate
	Log     *slog.Logger
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, v *validator.Validate, log *slog.Logger) *PaymentHandler {
	return &PaymentHandler{Usecase: paymentUsecase, V: v, Log: log}
}

// POST /v1/payments/callback
//
// Generic hook for providers that already speak the normalized event shape.
// Replays of an applied transaction return the stored result with 200, so
// provider retry loops terminate.
func (h *PaymentHandler) HandleCallback(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable body"})
	}

	var req dto.PaymentCallbackRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	result, err := h.Usecase.Reconcile(c.Request().Context(), &domain.PaymentEvent{
		TransactionID: req.TransactionID,
		RentalID:      req.RentalID,
		Amount:        req.Amount,
		PhoneNumber:   req.PhoneNumber,
		Success:       *req.Success,
		ReceivedAt:    time.Now(),
		Raw:           raw,
	})
	if err != nil {
		h.Log.Error("payment callback", "transaction_id", req.TransactionID, "err", err)
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, dto.FromDomainSettlement(result))
}

// POST /v1/payments/mpesa/:rentalId
//
// Daraja STK push result hook. The per-rental URL is what ties a callback to
// its rental. Once the envelope parses we always ack 0 so Safaricom stops
// redelivering; the reconciler and the callback log keep the real outcome.
func (h *PaymentHandler) HandleMpesa(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable body"})
	}

	event, err := mpesa.Normalize(c.Param("rentalId"), raw)
	if err != nil {
		h.Log.Error("mpesa callback rejected", "rental_id", c.Param("rentalId"), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"ResultCode": 1,
			"ResultDesc": "Rejected",
		})
	}

	if _, err := h.Usecase.Reconcile(c.Request().Context(), event); err != nil {
		h.Log.Error("mpesa callback not applied",
			"rental_id", event.RentalID, "transaction_id", event.TransactionID, "err", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ResultCode": 0,
		"ResultDesc": "Accepted",
	})
}

// GET /v1/rentals/:id/payments
func (h *PaymentHandler) ListRentalPayments(c echo.Context) error {
	records, err := h.Usecase.ListRentalPayments(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("rental payments list", "rental_id", c.Param("id"), "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	out := make([]dto.PaymentRecordResponse, len(records))
	for i, record := range records {
		out[i] = dto.FromDomainPaymentRecord(record)
	}

	return c.JSON(http.StatusOK, echo.Map{"payments": out})
}
