package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"happyhour-console/internal/pkg/config"
	"happyhour-console/internal/usecase/commands"
)

// Consumes verification codes off the delivery queue and emails them.
// Runs as its own process so SMTP hiccups never slow down the API.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	client, err := mail.NewClient(cfg.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.SMTP.Port),
		mail.WithUsername(cfg.SMTP.Username),
		mail.WithPassword(cfg.SMTP.Password),
	)
	if err != nil {
		logger.Error("failed to create mail client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer client.Close()

	dialCtx, cancelDial := context.WithTimeout(context.Background(), cfg.SMTP.DialTimeout)
	defer cancelDial()
	if err := client.DialWithContext(dialCtx); err != nil {
		logger.Error("failed to reach mail server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(cfg.RabbitMQ.Queue, true, false, false, false, nil)
	if err != nil {
		logger.Error("failed to declare queue", slog.String("error", err.Error()))
		os.Exit(1)
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		logger.Error("failed to start consuming", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				handleMessage(logger, client, cfg.SMTP.From, msg)
			}
		}
	}()

	logger.Info("mailer started", slog.String("queue", q.Name))
	<-sigChan
	logger.Info("mailer shutting down")
	cancel()
	wg.Wait()
}

func handleMessage(logger *slog.Logger, client *mail.Client, from string, msg amqp.Delivery) {
	var vm commands.VerificationMessage
	if err := json.Unmarshal(msg.Body, &vm); err != nil {
		logger.Error("failed to decode message", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		logger.Error("failed to set sender", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	if err := m.To(vm.Email); err != nil {
		logger.Error("failed to set recipient", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	m.Subject("Your happy hour console verification code")
	m.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Your verification code is %s.\n\nIt expires in a few minutes. If you did not try to sign in, ignore this email.\n",
		vm.Code,
	))

	if err := client.DialAndSend(m); err != nil {
		logger.Error("failed to send verification email", slog.String("error", err.Error()))
		// requeue so a transient SMTP failure doesn't eat the code
		_ = msg.Nack(false, true)
		return
	}

	logger.Info("verification code sent", slog.String("to", vm.Email))
	_ = msg.Ack(false)
}
