package config

// MailConfig holds settings for outbound password-reset email. Delivery can
// go directly over SMTP, be handed to the broker queue for the mailer
// daemon, or fall back to logging the code so local operators can read it.
type MailConfig struct {
	Transport string // "smtp", "amqp" or "log"; empty picks smtp when SMTP_USER is set, else log
	From      string // From header on outgoing mail
	SMTPHost  string // SMTP server host
	SMTPPort  string // SMTP server port (587 for STARTTLS)
	SMTPUser  string // SMTP username; empty means SMTP is not configured
	SMTPPass  string // SMTP password or app password
}

// LoadMailConfig reads mail settings from the environment, applying
// defaults suitable for a Gmail app-password setup.
func LoadMailConfig() MailConfig {
	return MailConfig{
		Transport: envStr("MAIL_TRANSPORT", ""),
		From:      envStr("MAIL_FROM", "Hostel Inventory <no-reply@localhost>"),
		SMTPHost:  envStr("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  envStr("SMTP_PORT", "587"),
		SMTPUser:  envStr("SMTP_USER", ""),
		SMTPPass:  envStr("SMTP_PASS", ""),
	}
}
