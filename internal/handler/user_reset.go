package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sahanmw/hostel-inventory/internal/repository"
	"github.com/sahanmw/hostel-inventory/internal/utils"
)

// Password reset runs in three phases: request a code by email, optionally
// verify it, then set a new password with it. The server keeps no state
// beyond the code and expiry on the profile row; the final phase clears
// both in the same statement that checks them, so a code can never be
// spent twice.

// resetCodeTTL is the validity window of a reset code.
const resetCodeTTL = 15 * time.Minute

type requestResetReq struct {
	Email string `json:"email"`
}

type verifyCodeReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resetPasswordReq struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// RequestReset generates a reset code for the account behind the given
// email and dispatches it. Unknown emails get the same 200 as known ones
// so the endpoint cannot be used to enumerate accounts. A failed dispatch
// only changes the response message; the code stays persisted and usable.
func (h *UserHandler) RequestReset(c echo.Context) error {
	var req requestResetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusOK, echo.Map{"message": "If email exists, reset code has been sent"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	code, err := utils.NewResetCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not generate reset code"})
	}
	expires := time.Now().UTC().Add(resetCodeTTL)
	if err := h.Users.SetResetCode(ctx, u.ID, code, expires); err != nil {
		h.Log.Error("persist reset code failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not generate reset code"})
	}

	if err := h.Mail.SendResetCode(ctx, u.Email, code); err != nil {
		h.Log.Warn("reset code dispatch failed", zap.Uint64("user_id", u.ID), zap.Error(err))
		return c.JSON(http.StatusOK, echo.Map{"message": "Reset code generated (check server logs)"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Reset code sent to your email"})
}

// VerifyCode checks a code without consuming it, a convenience for
// frontends that validate before showing the new-password form. Unlike
// RequestReset this step reveals whether the email exists.
func (h *UserHandler) VerifyCode(c echo.Context) error {
	var req verifyCodeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and code are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	// One generic answer for no code set, wrong code and expired code.
	if u.ResetCode == nil || u.ResetCodeExpires == nil ||
		*u.ResetCode != req.Code || time.Now().UTC().After(*u.ResetCodeExpires) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired code"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Code verified successfully"})
}

// ResetPassword sets a new password if the code is valid at this very
// moment; a VerifyCode success earlier proves nothing here. The check and
// the clearing of the code happen in one guarded update, so of two racing
// calls with the same code exactly one succeeds.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email, code and new password are required"})
	}
	if len(req.NewPassword) < 4 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password must be at least 4 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset password failed"})
	}
	if err := h.Users.ConsumeResetCode(ctx, u.ID, req.Code, hash); err != nil {
		if err == repository.ErrResetCodeInvalid {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid or expired code"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset password failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password reset successfully"})
}
