package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gotaagota/collections-api/internal/api/metrics"
	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// LoanHandler handles HTTP requests for the loan ledger.
type LoanHandler struct {
	service ports.LoanService
}

func NewLoanHandler(service ports.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

type createLoanRequest struct {
	ClientID     string  `json:"client_id"     validate:"required"`
	CollectorID  string  `json:"collector_id"`
	Amount       float64 `json:"amount"        validate:"required,gt=0"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0"`
	Installments int     `json:"installments"  validate:"required,gt=0"`
}

type overrideLoanStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active completed defaulted"`
}

// List handles GET /v1/loans. Admins may filter by ?collector_id= and
// ?client_id=; collectors always see their own book only.
//
// @Summary      List loans
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        collector_id  query     string  false  "Filter by collector (admin only)"
// @Param        client_id     query     string  false  "Filter by client"
// @Success      200  {array}   domain.Loan
// @Router       /v1/loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	loans, err := h.service.List(c.Request().Context(), actor, ports.ListLoansFilter{
		CollectorID: c.QueryParam("collector_id"),
		ClientID:    c.QueryParam("client_id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loans)
}

// Get handles GET /v1/loans/:id.
//
// @Summary      Get a loan
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Loan id"
// @Success      200  {object}  domain.Loan
// @Failure      404  {object}  errorResponse
// @Router       /v1/loans/{id} [get]
func (h *LoanHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	loan, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loan)
}

// Create handles POST /v1/loans. The total, the per-installment amount
// and the end date are derived server-side from the submitted terms.
//
// @Summary      Originate a loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLoanRequest  true  "Loan terms"
// @Success      201   {object}  domain.Loan
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/loans [post]
func (h *LoanHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	loan, err := h.service.Create(c.Request().Context(), actor, ports.CreateLoanInput{
		ClientID:     req.ClientID,
		CollectorID:  req.CollectorID,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		Installments: req.Installments,
	})
	if err != nil {
		return err
	}
	metrics.LoansCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, loan)
}

// OverrideStatus handles PUT /v1/loans/:id/status. Admin-only; this is
// the only route through which a loan can become defaulted.
//
// @Summary      Override a loan status
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Loan id"
// @Param        body  body      overrideLoanStatusRequest  true  "New status"
// @Success      200   {object}  domain.Loan
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/loans/{id}/status [put]
func (h *LoanHandler) OverrideStatus(c echo.Context) error {
	var req overrideLoanStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	loan, err := h.service.OverrideStatus(c.Request().Context(), c.Param("id"), domain.LoanStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loan)
}
