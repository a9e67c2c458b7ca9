package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gotaagota/collections-api/internal/api/metrics"
	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// PaymentHandler handles HTTP requests for the payment log.
type PaymentHandler struct {
	service ports.LoanService
}

func NewPaymentHandler(service ports.LoanService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type applyPaymentRequest struct {
	LoanID string  `json:"loan_id" validate:"required"`
	Amount float64 `json:"amount"  validate:"required,gt=0"`
	Notes  string  `json:"notes"`
}

// Apply handles POST /v1/payments. A client-supplied Idempotency-Key
// header makes retries of the same submission replay the first result.
//
// @Summary      Apply a payment to a loan
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string               false  "Deduplication key"
// @Param        body             body      applyPaymentRequest  true   "Payment"
// @Success      201  {object}  ports.PaymentResult
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/payments [post]
func (h *PaymentHandler) Apply(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req applyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.ApplyPayment(c.Request().Context(), actor, ports.ApplyPaymentInput{
		LoanID:         req.LoanID,
		Amount:         req.Amount,
		Notes:          req.Notes,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	if result.AlreadyApplied {
		metrics.PaymentsAppliedTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, result)
	}
	metrics.PaymentsAppliedTotal.WithLabelValues("applied").Inc()
	metrics.PaymentAmountCollected.Add(result.Amount)
	if result.LoanStatus == domain.LoanCompleted {
		metrics.LoansCompletedTotal.Inc()
	}
	return c.JSON(http.StatusCreated, result)
}

// List handles GET /v1/payments?loan_id=. The loan id is mandatory; the
// log is only ever read per loan.
//
// @Summary      List payments for a loan
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        loan_id  query     string  true  "Loan id"
// @Success      200  {array}   domain.Payment
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	loanID := c.QueryParam("loan_id")
	if loanID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loan_id is required")
	}
	payments, err := h.service.ListPayments(c.Request().Context(), actor, loanID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}
