package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/sahanmw/hostel-inventory/internal/config"
)

// SMTPSender delivers mail directly over SMTP with PLAIN auth, which
// matches the STARTTLS submission setup of the default smtp.gmail.com:587
// endpoint. It is used both by the API process (MAIL_TRANSPORT=smtp) and
// by cmd/mailer when draining the broker queue.
type SMTPSender struct {
	cfg config.MailConfig
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendResetCode(ctx context.Context, to, code string) error {
	return s.Send(to, resetSubject, resetBody(code))
}

// Send delivers an already rendered message.
func (s *SMTPSender) Send(to, subject, body string) error {
	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.cfg.From, to, subject, body))

	if err := smtp.SendMail(addr, auth, s.cfg.SMTPUser, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
