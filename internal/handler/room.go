package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sahanmw/hostel-inventory/internal/model"
	"github.com/sahanmw/hostel-inventory/internal/repository"
)

// RoomStore is the slice of the room repository the room handlers need.
// *repository.RoomRepo satisfies it.
type RoomStore interface {
	List(ctx context.Context) ([]repository.RoomDetail, error)
	Get(ctx context.Context, id uint64) (repository.RoomDetail, error)
	Create(ctx context.Context, room *model.Room) (repository.RoomDetail, error)
	Update(ctx context.Context, id uint64, room *model.Room) (repository.RoomDetail, error)
	Delete(ctx context.Context, id uint64) error
}

// RoomChecker validates room references on assets and damage reports.
type RoomChecker interface {
	Exists(ctx context.Context, id uint64) (bool, error)
}

// RoomHandler serves the /api/rooms endpoints.
type RoomHandler struct {
	Rooms RoomStore
}

func NewRoomHandler(rooms RoomStore) *RoomHandler {
	return &RoomHandler{Rooms: rooms}
}

type roomReq struct {
	RoomNumber string `json:"room_number"`
	HostelName string `json:"hostel_name"`
	Floor      *int   `json:"floor"`
	Capacity   *int   `json:"capacity"`
}

// validate checks the request and converts it into a model. Capacity
// defaults to 2 when omitted, both on create and on full-replace update.
func (r *roomReq) validate() (model.Room, string) {
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
	r.HostelName = strings.TrimSpace(r.HostelName)
	if r.RoomNumber == "" || r.HostelName == "" {
		return model.Room{}, "Room number and hostel name are required"
	}
	capacity := 2
	if r.Capacity != nil {
		if *r.Capacity < 1 {
			return model.Room{}, "Capacity must be at least 1"
		}
		capacity = *r.Capacity
	}
	return model.Room{
		RoomNumber: r.RoomNumber,
		HostelName: r.HostelName,
		Floor:      r.Floor,
		Capacity:   capacity,
	}, ""
}

// List returns every room ordered by hostel then room number.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	if rooms == nil {
		rooms = []repository.RoomDetail{}
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	room, err := h.Rooms.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	room, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Rooms.Create(ctx, &room)
	if err != nil {
		if err == repository.ErrRoomNumberExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, out)
}

// Update fully replaces the writable fields of a room.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	room, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Rooms.Update(ctx, id, &room)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
		case repository.ErrRoomNumberExists:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Delete removes a room. The database cascades the deletion to the room's
// damage reports and detaches its assets.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
