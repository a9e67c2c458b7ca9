package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gotaagota/collections-api/internal/core/ports"
)

// InventoryHandler handles HTTP requests for equipment assignments.
// Writes are admin-only; collectors can list their own gear.
type InventoryHandler struct {
	service ports.InventoryService
}

func NewInventoryHandler(service ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type createItemRequest struct {
	CollectorID  string    `json:"collector_id"  validate:"required"`
	ItemType     string    `json:"item_type"     validate:"required,oneof=tablet phone motorcycle cash documents other"`
	Description  string    `json:"description"   validate:"required"`
	SerialNumber string    `json:"serial_number"`
	AssignedDate time.Time `json:"assigned_date"`
	Notes        string    `json:"notes"`
}

type updateItemRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=assigned returned lost"`
	Notes  *string `json:"notes"`
}

// List handles GET /v1/inventory. Admins may filter by ?collector_id=;
// collectors always see their own assignments only.
//
// @Summary      List inventory items
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        collector_id  query     string  false  "Filter by collector (admin only)"
// @Success      200  {array}   domain.InventoryItem
// @Router       /v1/inventory [get]
func (h *InventoryHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), actor, c.QueryParam("collector_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/inventory/:id.
//
// @Summary      Get an inventory item
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Item id"
// @Success      200  {object}  domain.InventoryItem
// @Failure      404  {object}  errorResponse
// @Router       /v1/inventory/{id} [get]
func (h *InventoryHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /v1/inventory.
//
// @Summary      Assign an item to a collector
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createItemRequest  true  "Item details"
// @Success      201   {object}  domain.InventoryItem
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/inventory [post]
func (h *InventoryHandler) Create(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.Create(c.Request().Context(), ports.CreateItemInput{
		CollectorID:  req.CollectorID,
		ItemType:     req.ItemType,
		Description:  req.Description,
		SerialNumber: req.SerialNumber,
		AssignedDate: req.AssignedDate,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /v1/inventory/:id.
//
// @Summary      Update an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Item id"
// @Param        body  body      updateItemRequest  true  "Fields to update"
// @Success      200   {object}  domain.InventoryItem
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/inventory/{id} [put]
func (h *InventoryHandler) Update(c echo.Context) error {
	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateItemInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /v1/inventory/:id.
//
// @Summary      Delete an inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
