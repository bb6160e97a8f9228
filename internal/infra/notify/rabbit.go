package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"happyhour-console/internal/pkg/config"
	"happyhour-console/internal/pkg/errs"
	"happyhour-console/internal/usecase/commands"
)

// CodePublisher pushes verification codes onto the delivery queue. The
// mail worker consumes them; the API never talks SMTP itself, so a slow
// mail server can't hold a login request hostage.
type CodePublisher struct {
	ch      *amqp.Channel
	queue   string
	timeout time.Duration
}

func NewCodePublisher(conn *amqp.Connection, cfg config.RabbitMQConfig) (*CodePublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, errs.Wrap(err, "failed to open channel")
	}

	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		return nil, errs.Wrap(err, "failed to declare queue")
	}

	return &CodePublisher{
		ch:      ch,
		queue:   cfg.Queue,
		timeout: cfg.PublishTimeout,
	}, nil
}

func (p *CodePublisher) PublishCode(ctx context.Context, msg commands.VerificationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errs.Wrap(err, "failed to encode verification message")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish verification message")
	}
	return nil
}

func (p *CodePublisher) Close() error {
	return p.ch.Close()
}
