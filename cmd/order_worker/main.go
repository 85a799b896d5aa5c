package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/config"
	"github.com/oksasatya/gadget-store-api/pkg/helpers"
	"github.com/oksasatya/gadget-store-api/pkg/mailer"
)

// order_worker consumes order email jobs and delivers them through Mailgun.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-order-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; order worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQOrderQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQOrderQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQOrderQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			entry := logger.WithFields(logrus.Fields{"type": msg.Type, "message_id": msg.MessageId})

			var job mailer.EmailJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				entry.WithError(err).Warn("bad message")
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := mailer.Deliver(c, mg, job)
			cancel()
			switch {
			case errors.Is(err, mailer.ErrUndeliverable):
				entry.WithError(err).Warn("dropping job")
				_ = msg.Nack(false, false)
			case err != nil:
				entry.WithError(err).Error("send failed")
				_ = msg.Nack(false, true)
			default:
				entry.WithField("to", job.To).Info("email sent")
				_ = msg.Ack(false)
			}
		}
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQOrderQueue).Info("order worker listening")
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
