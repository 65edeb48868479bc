// Command mailer is the outbound email daemon. It drains the durable
// email.send queue and delivers each message over SMTP, so the API process
// never blocks on or retries mail delivery. Run it only when
// MAIL_TRANSPORT=amqp; the other transports deliver inline.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/sahanmw/hostel-inventory/internal/config"
	"github.com/sahanmw/hostel-inventory/internal/logger"
	"github.com/sahanmw/hostel-inventory/internal/mail"
	"github.com/sahanmw/hostel-inventory/internal/queue"
)

func main() {
	_ = godotenv.Load() // best effort; a missing .env file is fine

	zlog := logger.New(os.Getenv("APP_ENV"))
	defer func() { _ = zlog.Sync() }()

	mailCfg := config.LoadMailConfig()
	if mailCfg.SMTPUser == "" {
		log.Fatal("mailer requires SMTP_USER and SMTP_PASS to deliver queued mail")
	}
	smtp := mail.NewSMTPSender(mailCfg)

	zlog.Info("mailer consuming " + queue.EmailQueueName)
	if err := queue.StartEmailConsumer(mail.BrokerURL(), zlog, func(msg queue.EmailMessage) error {
		return smtp.Send(msg.To, msg.Subject, msg.Body)
	}); err != nil {
		log.Fatal(err)
	}
}
