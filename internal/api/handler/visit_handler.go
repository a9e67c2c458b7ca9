package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gotaagota/collections-api/internal/core/ports"
)

// VisitHandler handles HTTP requests for the visit schedule.
type VisitHandler struct {
	service ports.VisitService
}

func NewVisitHandler(service ports.VisitService) *VisitHandler {
	return &VisitHandler{service: service}
}

type createVisitRequest struct {
	ClientID      string    `json:"client_id"      validate:"required"`
	CollectorID   string    `json:"collector_id"   validate:"required"`
	LoanID        string    `json:"loan_id"`
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
	Notes         string    `json:"notes"`
}

type updateVisitRequest struct {
	ScheduledDate *time.Time `json:"scheduled_date"`
	Status        *string    `json:"status" validate:"omitempty,oneof=pending completed missed"`
	Notes         *string    `json:"notes"`
}

// List handles GET /v1/visits. Admins may filter by ?collector_id=;
// collectors always see their own schedule only.
//
// @Summary      List visits
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        collector_id  query     string  false  "Filter by collector (admin only)"
// @Success      200  {array}   domain.Visit
// @Router       /v1/visits [get]
func (h *VisitHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	visits, err := h.service.List(c.Request().Context(), actor, c.QueryParam("collector_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, visits)
}

// Get handles GET /v1/visits/:id.
//
// @Summary      Get a visit
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Visit id"
// @Success      200  {object}  domain.Visit
// @Failure      404  {object}  errorResponse
// @Router       /v1/visits/{id} [get]
func (h *VisitHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	visit, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, visit)
}

// Create handles POST /v1/visits. New visits start out pending.
//
// @Summary      Schedule a visit
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVisitRequest  true  "Visit details"
// @Success      201   {object}  domain.Visit
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/visits [post]
func (h *VisitHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	visit, err := h.service.Create(c.Request().Context(), actor, ports.CreateVisitInput{
		ClientID:      req.ClientID,
		CollectorID:   req.CollectorID,
		LoanID:        req.LoanID,
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, visit)
}

// Update handles PUT /v1/visits/:id. Covers rescheduling and marking a
// visit completed or missed.
//
// @Summary      Update a visit
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Visit id"
// @Param        body  body      updateVisitRequest  true  "Fields to update"
// @Success      200   {object}  domain.Visit
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/visits/{id} [put]
func (h *VisitHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	visit, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateVisitInput{
		ScheduledDate: req.ScheduledDate,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, visit)
}

// Delete handles DELETE /v1/visits/:id.
//
// @Summary      Delete a visit
// @Tags         visits
// @Security     BearerAuth
// @Param        id  path  string  true  "Visit id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/visits/{id} [delete]
func (h *VisitHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
