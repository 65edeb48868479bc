package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/sahanmw/hostel-inventory/internal/handler"
)

// RegisterInventory registers the room, asset, damage report and dashboard
// endpoints under /api. These carry no session enforcement; access control
// in this system applies to the account endpoints only.
func RegisterInventory(e *echo.Echo, rooms *handler.RoomHandler,
	assets *handler.AssetHandler, reports *handler.DamageReportHandler,
	dash *handler.DashboardHandler) {

	r := e.Group("/api/rooms")
	r.GET("", rooms.List)
	r.POST("", rooms.Create)
	r.GET("/:id", rooms.Get)
	r.PUT("/:id", rooms.Update)
	r.DELETE("/:id", rooms.Delete)

	a := e.Group("/api/assets")
	a.GET("", assets.List)
	a.POST("", assets.Create)
	a.GET("/:id", assets.Get)
	a.PUT("/:id", assets.Update)
	a.DELETE("/:id", assets.Delete)

	d := e.Group("/api/damage-reports")
	d.GET("", reports.List)
	d.POST("", reports.Create)
	d.GET("/:id", reports.Get)
	d.PUT("/:id", reports.Update)
	d.DELETE("/:id", reports.Delete)

	e.GET("/api/dashboard/summary", dash.Summary)
}
