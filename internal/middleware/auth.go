package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sahanmw/hostel-inventory/internal/config"
	"github.com/sahanmw/hostel-inventory/internal/model"
	"github.com/sahanmw/hostel-inventory/internal/repository"
	"github.com/sahanmw/hostel-inventory/internal/session"
)

// UserGetter is the slice of the user repository RequireAuth needs to
// resolve a session's user id into a live profile.
type UserGetter interface {
	GetByID(ctx context.Context, id uint64) (model.UserProfile, error)
}

// RequireAuth returns a middleware that authenticates requests from the
// session cookie. On success the full profile is stored in the context
// under "user" and its id under "user_id", and the session TTL is
// refreshed (sliding expiration) together with the cookie. Requests
// without a live session get 401 "Not logged in"; a session whose user row
// was deleted gets 401 "User not found" and the stale session is
// destroyed.
func RequireAuth(cfg config.Config, sessions session.Store, users UserGetter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cfg.SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not logged in"})
			}
			token := cookie.Value

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			data, err := sessions.Get(ctx, token)
			if err != nil {
				if err == session.ErrSessionNotFound {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not logged in"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
			}

			u, err := users.GetByID(ctx, data.UserID)
			if err != nil {
				if err == repository.ErrNotFound {
					// The account was deleted after login; the session is dead.
					_ = sessions.Delete(ctx, token)
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "User not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
			}

			// Slide the session lifetime forward on every authenticated
			// request and re-issue the cookie so the browser expiry tracks.
			_ = sessions.Refresh(ctx, token, cfg.SessionTTL)
			c.SetCookie(session.Cookie(cfg.SessionCookie, token, cfg.SessionTTL, cfg.SecureCookies()))

			c.Set("user", u)
			c.Set("user_id", u.ID)
			c.Set("session_token", token)
			return next(c)
		}
	}
}
