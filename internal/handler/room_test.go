package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventoryFixture struct {
	inv     *fakeInventory
	rooms   *RoomHandler
	assets  *AssetHandler
	reports *DamageReportHandler
}

func newInventoryFixture() *inventoryFixture {
	inv := newFakeInventory()
	roomStore := &fakeRoomStore{inv: inv}
	return &inventoryFixture{
		inv:     inv,
		rooms:   NewRoomHandler(roomStore),
		assets:  NewAssetHandler(&fakeAssetStore{inv: inv}, roomStore),
		reports: NewDamageReportHandler(&fakeReportStore{inv: inv}, roomStore),
	}
}

func withID(id string) func(c echo.Context) {
	return func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
}

func TestRoomCreateAndDefaults(t *testing.T) {
	f := newInventoryFixture()

	rec := do(t, f.rooms.Create, http.MethodPost, "/api/rooms", map[string]any{
		"room_number": "101", "hostel_name": "North Wing",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["capacity"]) // default
	assert.Nil(t, body["floor"])
	assert.Equal(t, float64(0), body["asset_count"])

	rec = do(t, f.rooms.Create, http.MethodPost, "/api/rooms", map[string]any{
		"room_number": "101", "hostel_name": "South Wing",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Room number already exists", decode(t, rec)["error"])

	rec = do(t, f.rooms.Create, http.MethodPost, "/api/rooms", map[string]any{
		"hostel_name": "North Wing",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Room number and hostel name are required", decode(t, rec)["error"])
}

func TestRoomGetUpdateDelete(t *testing.T) {
	f := newInventoryFixture()

	rec := do(t, f.rooms.Create, http.MethodPost, "/api/rooms", map[string]any{
		"room_number": "101", "hostel_name": "North Wing", "floor": 1, "capacity": 4,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, f.rooms.Get, http.MethodGet, "/api/rooms/1", nil, withID("1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "101", decode(t, rec)["room_number"])

	rec = do(t, f.rooms.Get, http.MethodGet, "/api/rooms/9", nil, withID("9"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Room not found", decode(t, rec)["error"])

	rec = do(t, f.rooms.Get, http.MethodGet, "/api/rooms/abc", nil, withID("abc"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, f.rooms.Update, http.MethodPut, "/api/rooms/1", map[string]any{
		"room_number": "101A", "hostel_name": "North Wing", "capacity": 3,
	}, withID("1"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "101A", body["room_number"])
	assert.Equal(t, float64(3), body["capacity"])

	rec = do(t, f.rooms.Delete, http.MethodDelete, "/api/rooms/1", nil, withID("1"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, f.rooms.Delete, http.MethodDelete, "/api/rooms/1", nil, withID("1"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoomListOrderingAndAssetCount(t *testing.T) {
	f := newInventoryFixture()

	for _, r := range []map[string]any{
		{"room_number": "101", "hostel_name": "North Wing"},
		{"room_number": "102", "hostel_name": "North Wing"},
	} {
		rec := do(t, f.rooms.Create, http.MethodPost, "/api/rooms", r, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := do(t, f.assets.Create, http.MethodPost, "/api/assets", map[string]any{
		"name": "Bunk bed", "asset_type": "Bed", "room": 1,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, f.rooms.List, http.MethodGet, "/api/rooms", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rooms []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rooms))
	require.Len(t, rooms, 2)
	assert.Equal(t, float64(1), rooms[0]["asset_count"])
	assert.Equal(t, float64(0), rooms[1]["asset_count"])
}

func TestRoomListEmptyIsArray(t *testing.T) {
	f := newInventoryFixture()
	rec := do(t, f.rooms.List, http.MethodGet, "/api/rooms", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
