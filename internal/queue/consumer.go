package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Deliver handles one dequeued email message.
type Deliver func(msg EmailMessage) error

// StartEmailConsumer connects to the broker, declares the email.send queue
// (durable) and consumes messages, handing each to deliver. The function
// runs a reconnect loop with exponential backoff and never returns in
// normal operation. Delivery failures are logged and the message is
// rejected without requeue so a permanently broken payload cannot spin the
// loop.
func StartEmailConsumer(url string, log *zap.Logger, deliver Deliver) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("broker dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, log, deliver); err != nil {
			log.Warn("consume loop ended, reconnecting", zap.Error(err))
			_ = conn.Close()
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection, log *zap.Logger, deliver Deliver) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Warn("set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(EmailQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(EmailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		var msg EmailMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			log.Warn("bad email payload, dropping", zap.Error(err))
			_ = d.Nack(false, false) // do not requeue malformed messages
			continue
		}
		if err := deliver(msg); err != nil {
			log.Warn("email delivery failed", zap.String("to", msg.To), zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		log.Info("email delivered", zap.String("to", msg.To), zap.String("subject", msg.Subject))
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}
