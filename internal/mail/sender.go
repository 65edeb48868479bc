// Package mail delivers password-reset codes. The API core only ever sees
// the Sender interface; the concrete transport (direct SMTP, the broker
// queue consumed by cmd/mailer, or a log-only fallback) is chosen once at
// startup from configuration. Delivery is best-effort: a Sender error
// downgrades the API response message but never fails the request.
package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sahanmw/hostel-inventory/internal/config"
)

// Sender delivers a password-reset code to a recipient address.
type Sender interface {
	SendResetCode(ctx context.Context, to, code string) error
}

// resetSubject is the subject line on every reset-code email.
const resetSubject = "Password Reset Code - Hostel Inventory"

// resetBody renders the plain-text body of a reset-code email.
func resetBody(code string) string {
	return fmt.Sprintf("Your password reset code is: %s\n\n"+
		"This code will expire in 15 minutes.\n\n"+
		"If you did not request this reset, please ignore this email.\n", code)
}

// New selects a Sender from the mail configuration. An explicit
// MAIL_TRANSPORT wins; otherwise SMTP is used when credentials are
// configured and the log fallback when nothing is.
func New(cfg config.MailConfig, log *zap.Logger) Sender {
	switch cfg.Transport {
	case "amqp":
		return NewQueueSender(log)
	case "smtp":
		return NewSMTPSender(cfg)
	case "log":
		return NewLogSender(log)
	}
	if cfg.SMTPUser != "" {
		return NewSMTPSender(cfg)
	}
	return NewLogSender(log)
}

// LogSender writes the code to the server log instead of sending mail.
// This is the only place in the system allowed to log a reset code; it
// exists so local operators without SMTP can still complete the flow.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendResetCode(ctx context.Context, to, code string) error {
	s.log.Info("email not configured; password reset code",
		zap.String("to", to),
		zap.String("code", code))
	return nil
}
