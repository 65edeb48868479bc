package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sahanmw/hostel-inventory/internal/model"
	"github.com/sahanmw/hostel-inventory/internal/repository"
)

// DamageReportStore is the slice of the damage report repository the
// report handlers need. *repository.DamageReportRepo satisfies it.
type DamageReportStore interface {
	List(ctx context.Context) ([]repository.DamageReportDetail, error)
	Get(ctx context.Context, id uint64) (repository.DamageReportDetail, error)
	Create(ctx context.Context, rep *model.DamageReport) (repository.DamageReportDetail, error)
	Update(ctx context.Context, id uint64, rep *model.DamageReport) (repository.DamageReportDetail, error)
	Delete(ctx context.Context, id uint64) error
}

// DamageReportHandler serves the /api/damage-reports endpoints.
type DamageReportHandler struct {
	Reports DamageReportStore
	Rooms   RoomChecker
}

func NewDamageReportHandler(reports DamageReportStore, rooms RoomChecker) *DamageReportHandler {
	return &DamageReportHandler{Reports: reports, Rooms: rooms}
}

type damageReportReq struct {
	RoomID      *uint64 `json:"room"`
	AssetType   string  `json:"asset_type"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

// validate checks the request and converts it into a model. Status
// defaults to Not Fixed. The room reference is checked by the caller.
func (r *damageReportReq) validate() (model.DamageReport, string) {
	if r.RoomID == nil {
		return model.DamageReport{}, "Room is required"
	}
	if !model.ValidAssetType(r.AssetType) {
		return model.DamageReport{}, "Invalid asset type"
	}
	if strings.TrimSpace(r.Description) == "" {
		return model.DamageReport{}, "Description is required"
	}
	status := model.StatusNotFixed
	if r.Status != "" {
		if !model.ValidReportStatus(r.Status) {
			return model.DamageReport{}, "Invalid status"
		}
		status = r.Status
	}
	return model.DamageReport{
		RoomID:      *r.RoomID,
		AssetType:   r.AssetType,
		Description: r.Description,
		Status:      status,
	}, ""
}

// List returns every damage report, newest first.
func (h *DamageReportHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reports, err := h.Reports.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list damage reports failed"})
	}
	if reports == nil {
		reports = []repository.DamageReportDetail{}
	}
	return c.JSON(http.StatusOK, reports)
}

func (h *DamageReportHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid damage report id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rep, err := h.Reports.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Damage report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load damage report failed"})
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *DamageReportHandler) Create(c echo.Context) error {
	var req damageReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rep, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ok, err := h.Rooms.Exists(ctx, rep.RoomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create damage report failed"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Room not found"})
	}

	out, err := h.Reports.Create(ctx, &rep)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create damage report failed"})
	}
	return c.JSON(http.StatusCreated, out)
}

// Update fully replaces the writable fields of a report; the common case
// is staff moving the status to Fixed or Replaced.
func (h *DamageReportHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid damage report id"})
	}
	var req damageReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rep, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ok, err := h.Rooms.Exists(ctx, rep.RoomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update damage report failed"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Room not found"})
	}

	out, err := h.Reports.Update(ctx, id, &rep)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Damage report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update damage report failed"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DamageReportHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid damage report id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Reports.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Damage report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete damage report failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
