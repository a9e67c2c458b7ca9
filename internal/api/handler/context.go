package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/ports"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - collector role requires a non-empty collector_id; without it the
//     JWT is structurally valid but operationally unusable, so 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	collectorID, _ := c.Get("collector_id").(string)
	if role == domain.RoleCollector && collectorID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing collector identity")
	}

	return ports.Actor{Role: role, CollectorID: collectorID}, nil
}
