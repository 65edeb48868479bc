package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahanmw/hostel-inventory/internal/config"
	"github.com/sahanmw/hostel-inventory/internal/model"
	"github.com/sahanmw/hostel-inventory/internal/repository"
	"github.com/sahanmw/hostel-inventory/internal/session"
)

type fakeUserGetter struct {
	users map[uint64]model.UserProfile
}

func (f *fakeUserGetter) GetByID(ctx context.Context, id uint64) (model.UserProfile, error) {
	u, ok := f.users[id]
	if !ok {
		return model.UserProfile{}, repository.ErrNotFound
	}
	return u, nil
}

func testCfg() config.Config {
	return config.Config{
		Env:           "test",
		SessionCookie: "sessionid",
		SessionTTL:    time.Hour,
	}
}

func runAuth(t *testing.T, cfg config.Config, sessions session.Store, users UserGetter, cookie *http.Cookie) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := RequireAuth(cfg, sessions, users)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called
}

func errMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestRequireAuthNoCookie(t *testing.T) {
	rec, called := runAuth(t, testCfg(), session.NewMemoryStore(), &fakeUserGetter{}, nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not logged in", errMsg(t, rec))
}

func TestRequireAuthUnknownToken(t *testing.T) {
	cookie := &http.Cookie{Name: "sessionid", Value: "nope"}
	rec, called := runAuth(t, testCfg(), session.NewMemoryStore(), &fakeUserGetter{}, cookie)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not logged in", errMsg(t, rec))
}

func TestRequireAuthStaleUser(t *testing.T) {
	cfg := testCfg()
	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.Create(context.Background(), "tok", session.Data{UserID: 9}, time.Hour))

	cookie := &http.Cookie{Name: "sessionid", Value: "tok"}
	rec, called := runAuth(t, cfg, sessions, &fakeUserGetter{}, cookie)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not found", errMsg(t, rec))

	// The dead session was destroyed, not left behind.
	_, err := sessions.Get(context.Background(), "tok")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRequireAuthSuccess(t *testing.T) {
	cfg := testCfg()
	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.Create(context.Background(), "tok", session.Data{UserID: 9}, time.Hour))
	users := &fakeUserGetter{users: map[uint64]model.UserProfile{
		9: {ID: 9, Username: "warden", Role: model.RoleWarden},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: "tok"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireAuth(cfg, sessions, users)(func(c echo.Context) error {
		u, ok := c.Get("user").(model.UserProfile)
		require.True(t, ok)
		assert.Equal(t, "warden", u.Username)
		assert.Equal(t, uint64(9), c.Get("user_id"))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The sliding refresh re-issues the cookie.
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "sessionid=tok")
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(user any) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/list", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if user != nil {
			c.Set("user", user)
		}
		called := false
		h := RequireRole("Only Warden can view all users", model.RoleWarden)(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		return rec, called
	}

	rec, called := run(model.UserProfile{Role: model.RoleWarden})
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, called = run(model.UserProfile{Role: model.RoleInventoryStaff})
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only Warden can view all users", errMsg(t, rec))

	rec, called = run(nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
