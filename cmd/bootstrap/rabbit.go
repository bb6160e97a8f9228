package bootstrap

import (
	"context"

	"happyhour-console/internal/pkg/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

var RabbitModule = fx.Module("rabbit",
	fx.Provide(
		NewRabbitConnection,
	),
)

func NewRabbitConnection(lc fx.Lifecycle, cfg config.Config) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return conn.Close()
		},
	})

	return conn, nil
}
