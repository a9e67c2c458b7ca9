package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gotaagota/collections-api/internal/core/ports"
)

// PortfolioHandler serves the dashboard summary.
type PortfolioHandler struct {
	service ports.PortfolioService
}

func NewPortfolioHandler(service ports.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// Summary handles GET /v1/portfolio/summary.
//
// @Summary      Portfolio dashboard figures
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.PortfolioSummary
// @Router       /v1/portfolio/summary [get]
func (h *PortfolioHandler) Summary(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	summary, err := h.service.Summary(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
