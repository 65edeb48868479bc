// Package handler defines the HTTP handlers of the inventory API. Each
// handler struct bundles the stores it reads and writes; the stores are
// small interfaces satisfied by the repository types so tests can swap in
// in-memory fakes.
package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sahanmw/hostel-inventory/internal/model"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// parseID reads the numeric :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// userResp is the wire representation of a user profile. The credential
// hash and the reset-code columns are deliberately absent.
type userResp struct {
	ID          uint64    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role"`
	PhoneNumber *string   `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserResp(u model.UserProfile) userResp {
	return userResp{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
