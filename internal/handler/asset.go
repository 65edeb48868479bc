package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sahanmw/hostel-inventory/internal/model"
	"github.com/sahanmw/hostel-inventory/internal/repository"
)

// AssetStore is the slice of the asset repository the asset handlers
// need. *repository.AssetRepo satisfies it.
type AssetStore interface {
	List(ctx context.Context) ([]repository.AssetDetail, error)
	Get(ctx context.Context, id uint64) (repository.AssetDetail, error)
	Create(ctx context.Context, a *model.Asset) (repository.AssetDetail, error)
	Update(ctx context.Context, id uint64, a *model.Asset) (repository.AssetDetail, error)
	Delete(ctx context.Context, id uint64) error
}

// AssetHandler serves the /api/assets endpoints. Room references are
// validated against the room store before writing.
type AssetHandler struct {
	Assets AssetStore
	Rooms  RoomChecker
}

func NewAssetHandler(assets AssetStore, rooms RoomChecker) *AssetHandler {
	return &AssetHandler{Assets: assets, Rooms: rooms}
}

type assetReq struct {
	Name          string  `json:"name"`
	AssetType     string  `json:"asset_type"`
	TotalQuantity *int    `json:"total_quantity"`
	Condition     string  `json:"condition"`
	RoomID        *uint64 `json:"room"`
}

// validate checks the request and converts it into a model. Quantity
// defaults to 1 and condition to Good, both on create and on full-replace
// update. The room reference is checked by the caller.
func (r *assetReq) validate() (model.Asset, string) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return model.Asset{}, "Name is required"
	}
	if !model.ValidAssetType(r.AssetType) {
		return model.Asset{}, "Invalid asset type"
	}
	quantity := 1
	if r.TotalQuantity != nil {
		if *r.TotalQuantity < 1 {
			return model.Asset{}, "Quantity must be at least 1"
		}
		quantity = *r.TotalQuantity
	}
	condition := model.ConditionGood
	if r.Condition != "" {
		if !model.ValidCondition(r.Condition) {
			return model.Asset{}, "Invalid condition"
		}
		condition = r.Condition
	}
	return model.Asset{
		Name:          r.Name,
		AssetType:     r.AssetType,
		TotalQuantity: quantity,
		Condition:     condition,
		RoomID:        r.RoomID,
	}, ""
}

// checkRoom validates an optional room reference.
func (h *AssetHandler) checkRoom(ctx context.Context, roomID *uint64) (string, error) {
	if roomID == nil {
		return "", nil
	}
	ok, err := h.Rooms.Exists(ctx, *roomID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "Room not found", nil
	}
	return "", nil
}

// List returns every asset, newest first.
func (h *AssetHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	assets, err := h.Assets.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list assets failed"})
	}
	if assets == nil {
		assets = []repository.AssetDetail{}
	}
	return c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid asset id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	asset, err := h.Assets.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Asset not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load asset failed"})
	}
	return c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) Create(c echo.Context) error {
	var req assetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	asset, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if msg, err := h.checkRoom(ctx, asset.RoomID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create asset failed"})
	} else if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	out, err := h.Assets.Create(ctx, &asset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create asset failed"})
	}
	return c.JSON(http.StatusCreated, out)
}

// Update fully replaces the writable fields of an asset. Omitting the room
// detaches the asset from its room.
func (h *AssetHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid asset id"})
	}
	var req assetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	asset, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if msg, err := h.checkRoom(ctx, asset.RoomID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update asset failed"})
	} else if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	out, err := h.Assets.Update(ctx, id, &asset)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Asset not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update asset failed"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AssetHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid asset id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Assets.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Asset not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete asset failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
