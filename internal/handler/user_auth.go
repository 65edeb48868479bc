package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sahanmw/hostel-inventory/internal/config"
	"github.com/sahanmw/hostel-inventory/internal/mail"
	"github.com/sahanmw/hostel-inventory/internal/model"
	"github.com/sahanmw/hostel-inventory/internal/repository"
	"github.com/sahanmw/hostel-inventory/internal/session"
	"github.com/sahanmw/hostel-inventory/internal/utils"
)

// UserStore is the slice of the user repository the user handlers need.
// *repository.UserRepo satisfies it.
type UserStore interface {
	Register(ctx context.Context, u *model.UserProfile) error
	Create(ctx context.Context, u *model.UserProfile) error
	GetByID(ctx context.Context, id uint64) (model.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (model.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (model.UserProfile, error)
	List(ctx context.Context) ([]model.UserProfile, error)
	Update(ctx context.Context, u *model.UserProfile) error
	Delete(ctx context.Context, id uint64) error
	SetResetCode(ctx context.Context, id uint64, code string, expires time.Time) error
	ConsumeResetCode(ctx context.Context, id uint64, code, passwordHash string) error
}

// UserHandler bundles dependencies for the account endpoints: self
// registration and login (user_auth.go), Warden user management
// (user_admin.go) and the password-reset flow (user_reset.go).
type UserHandler struct {
	Cfg      config.Config
	Users    UserStore
	Sessions session.Store
	Mail     mail.Sender
	Log      *zap.Logger
}

func NewUserHandler(cfg config.Config, users UserStore, sessions session.Store, sender mail.Sender, log *zap.Logger) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Sessions: sessions, Mail: sender, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type profileUpdateReq struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

// Register creates a self-registered account. The very first account in
// the system becomes the Warden; everyone after that starts as Pending and
// cannot log in until a Warden assigns a role. Registration does not log
// the user in.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username, password and email are required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u := model.UserProfile{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := h.Users.Register(ctx, &u); err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username already exists"})
		}
		h.Log.Error("register failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":    toUserResp(u),
		"message": "User registered successfully as " + u.Role,
	})
}

// Login verifies credentials and establishes a session. Unknown username
// and wrong password produce the same response so callers cannot probe for
// accounts; the Pending check runs only after the password verified.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Username or password is wrong"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Username or password is wrong"})
	}
	if u.Role == model.RolePending {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Your account is pending approval by the Warden. Please wait for role assignment."})
	}

	token, err := utils.NewSessionToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}
	if err := h.Sessions.Create(ctx, token, session.Data{UserID: u.ID}, h.Cfg.SessionTTL); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}
	c.SetCookie(session.Cookie(h.Cfg.SessionCookie, token, h.Cfg.SessionTTL, h.Cfg.SecureCookies()))

	return c.JSON(http.StatusOK, echo.Map{
		"user":    toUserResp(u),
		"message": "Login successful",
	})
}

// Logout destroys the session named by the cookie, if any, and expires the
// cookie. It succeeds no matter what state the session was in.
func (h *UserHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.Cfg.SessionCookie); err == nil && cookie.Value != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
		defer cancel()
		_ = h.Sessions.Delete(ctx, cookie.Value)
	}
	c.SetCookie(session.ExpiredCookie(h.Cfg.SessionCookie, h.Cfg.SecureCookies()))
	return c.JSON(http.StatusOK, echo.Map{"message": "Logout successful"})
}

// Me returns the authenticated user's profile. RequireAuth already loaded
// the row, so no further lookup is needed.
func (h *UserHandler) Me(c echo.Context) error {
	u, ok := c.Get("user").(model.UserProfile)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not logged in"})
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// UpdateProfile lets a user change their own name and phone number. A
// field absent from the body is untouched; a present field replaces the
// stored value, including present-but-empty. Username, email and role
// cannot be changed here.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	u, ok := c.Get("user").(model.UserProfile)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not logged in"})
	}

	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = req.PhoneNumber
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.Update(ctx, &u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":    toUserResp(u),
		"message": "Profile updated successfully",
	})
}
