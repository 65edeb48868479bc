package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/sahanmw/hostel-inventory/internal/handler"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently that is only the health check used by load balancers and
// monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
