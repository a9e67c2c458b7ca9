package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gotaagota/collections-api/internal/core/ports"
)

// CollectorHandler handles HTTP requests for collector administration.
// All routes behind it are admin-only (RBAC at the router).
type CollectorHandler struct {
	service ports.CollectorService
}

func NewCollectorHandler(service ports.CollectorService) *CollectorHandler {
	return &CollectorHandler{service: service}
}

type createCollectorRequest struct {
	Name     string `json:"name"     validate:"required"`
	Phone    string `json:"phone"    validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Cedula   string `json:"cedula"   validate:"required"`
	Zone     string `json:"zone"     validate:"required"`
}

type updateCollectorRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Cedula   *string `json:"cedula"`
	Zone     *string `json:"zone"`
	Status   *string `json:"status"   validate:"omitempty,oneof=active inactive"`
}

// List handles GET /v1/collectors.
//
// @Summary      List collectors
// @Tags         collectors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Collector
// @Failure      403  {object}  errorResponse
// @Router       /v1/collectors [get]
func (h *CollectorHandler) List(c echo.Context) error {
	collectors, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, collectors)
}

// Get handles GET /v1/collectors/:id.
//
// @Summary      Get a collector
// @Tags         collectors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Collector id"
// @Success      200  {object}  domain.Collector
// @Failure      404  {object}  errorResponse
// @Router       /v1/collectors/{id} [get]
func (h *CollectorHandler) Get(c echo.Context) error {
	collector, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, collector)
}

// Create handles POST /v1/collectors. The password is hashed before it
// is stored; the response never carries it.
//
// @Summary      Register a collector
// @Tags         collectors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCollectorRequest  true  "Collector details"
// @Success      201   {object}  domain.Collector
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/collectors [post]
func (h *CollectorHandler) Create(c echo.Context) error {
	var req createCollectorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	collector, err := h.service.Create(c.Request().Context(), ports.CreateCollectorInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Cedula:   req.Cedula,
		Zone:     req.Zone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, collector)
}

// Update handles PUT /v1/collectors/:id.
//
// @Summary      Update a collector
// @Tags         collectors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Collector id"
// @Param        body  body      updateCollectorRequest  true  "Fields to update"
// @Success      200   {object}  domain.Collector
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/collectors/{id} [put]
func (h *CollectorHandler) Update(c echo.Context) error {
	var req updateCollectorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	collector, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateCollectorInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Cedula:   req.Cedula,
		Zone:     req.Zone,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, collector)
}

// Delete handles DELETE /v1/collectors/:id. Deletion is rejected with
// 409 while any client still references the collector.
//
// @Summary      Delete a collector
// @Tags         collectors
// @Security     BearerAuth
// @Param        id  path  string  true  "Collector id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/collectors/{id} [delete]
func (h *CollectorHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
