// Package queue defines the message payload exchanged over the broker and
// the consumer loop run by the mailer daemon. The API process publishes
// reset-code emails to a durable queue; cmd/mailer drains it and delivers
// over SMTP, keeping all retry policy out of the request path.
package queue

// EmailQueueName is the durable queue carrying outbound email messages.
const EmailQueueName = "email.send"

// EmailMessage is a fully rendered email waiting for delivery. The
// producer renders subject and body so the consumer needs no knowledge of
// message templates.
type EmailMessage struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	QueuedAt string `json:"queued_at"` // RFC3339, UTC
}
