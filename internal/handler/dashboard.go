package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sahanmw/hostel-inventory/internal/model"
)

// Counter counts the rows of one table.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// StatusCounter counts damage reports in a given status.
type StatusCounter interface {
	CountByStatus(ctx context.Context, status string) (int, error)
}

// DashboardHandler serves the aggregate summary shown on the frontend
// landing page.
type DashboardHandler struct {
	Users   Counter
	Rooms   Counter
	Assets  Counter
	Reports StatusCounter
}

func NewDashboardHandler(users, rooms, assets Counter, reports StatusCounter) *DashboardHandler {
	return &DashboardHandler{Users: users, Rooms: rooms, Assets: assets, Reports: reports}
}

// Summary returns the headline counts. The damage report figure counts
// only open (Not Fixed) reports; fixed and replaced ones are excluded.
func (h *DashboardHandler) Summary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	totalAssets, err := h.Assets.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load summary failed"})
	}
	openReports, err := h.Reports.CountByStatus(ctx, model.StatusNotFixed)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load summary failed"})
	}
	totalRooms, err := h.Rooms.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load summary failed"})
	}
	totalUsers, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load summary failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_assets":   totalAssets,
		"damage_reports": openReports,
		"total_rooms":    totalRooms,
		"total_users":    totalUsers,
	})
}
