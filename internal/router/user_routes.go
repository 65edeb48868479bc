package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/sahanmw/hostel-inventory/internal/config"
	"github.com/sahanmw/hostel-inventory/internal/handler"
	"github.com/sahanmw/hostel-inventory/internal/middleware"
	"github.com/sahanmw/hostel-inventory/internal/model"
	"github.com/sahanmw/hostel-inventory/internal/session"
)

// RegisterUsers registers the account endpoints under /api/users.
//
// The credential endpoints (register, login and the reset flow) take no
// session but pass through the rate limiter so password and reset-code
// guessing stays slow. The profile endpoints require a session, and the
// four management endpoints additionally require the Warden role, each
// with its own 403 wording. Authentication always runs before the role
// check.
func RegisterUsers(e *echo.Echo, cfg config.Config, h *handler.UserHandler,
	sessions session.Store, users middleware.UserGetter, limit echo.MiddlewareFunc) {

	g := e.Group("/api/users")

	// Open endpoints, rate limited.
	g.POST("/register", h.Register, limit)
	g.POST("/login", h.Login, limit)
	g.POST("/request-reset", h.RequestReset, limit)
	g.POST("/verify-code", h.VerifyCode, limit)
	g.POST("/reset-password-with-code", h.ResetPassword, limit)

	// Logout works with or without a live session.
	g.POST("/logout", h.Logout)

	auth := middleware.RequireAuth(cfg, sessions, users)

	// Session-only endpoints.
	g.GET("/me", h.Me, auth)
	g.PUT("/profile/update", h.UpdateProfile, auth)

	// Warden-only endpoints.
	g.POST("/create-user", h.AdminCreateUser, auth,
		middleware.RequireRole("Only Warden can create users", model.RoleWarden))
	g.GET("/list", h.AdminListUsers, auth,
		middleware.RequireRole("Only Warden can view all users", model.RoleWarden))
	g.PUT("/update-user/:id", h.AdminUpdateUser, auth,
		middleware.RequireRole("Only Warden can update other users", model.RoleWarden))
	g.DELETE("/delete-user/:id", h.AdminDeleteUser, auth,
		middleware.RequireRole("Only Warden can delete users", model.RoleWarden))
}
