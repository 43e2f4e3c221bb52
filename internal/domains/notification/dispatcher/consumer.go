package dispatcher

import (
	"booktable/config"
	"booktable/infras/kafka"
	"booktable/infras/rabbitmq"
	"booktable/internal/domains/notification/model"
	"booktable/shared/constant"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrNothingToConsume = errors.New("direct notification broker has no queue to consume")

// Consumer feeds events from the configured broker into a Dispatcher.
type Consumer struct {
	cfg        *config.Config
	kafka      kafka.Client
	rabbit     rabbitmq.Client
	dispatcher Dispatcher
}

func NewConsumer(cfg *config.Config, kafka kafka.Client, rabbit rabbitmq.Client, dispatcher Dispatcher) *Consumer {
	return &Consumer{
		cfg:        cfg,
		kafka:      kafka,
		rabbit:     rabbit,
		dispatcher: dispatcher,
	}
}

// Run blocks until ctx is cancelled or the broker client gives up.
func (c *Consumer) Run(ctx context.Context) error {
	topic := c.cfg.Notification.Topic

	log.Info().Str("broker", c.cfg.Notification.Broker).Str("topic", topic).Msg("Starting notification consumer")

	switch c.cfg.Notification.Broker {
	case constant.BrokerKafka:
		return c.kafka.Consume(ctx, topic, func(ctx context.Context, _ string, value []byte) error { //nolint:wrapcheck
			return c.handle(ctx, value)
		})
	case constant.BrokerRabbitMQ:
		return c.rabbit.Consume(ctx, topic, c.handle) //nolint:wrapcheck
	case constant.BrokerDirect:
		return ErrNothingToConsume
	default:
		return fmt.Errorf("unknown notification broker %q", c.cfg.Notification.Broker)
	}
}

func (c *Consumer) handle(ctx context.Context, raw []byte) error {
	event, err := model.Decode(raw)
	if err != nil {
		log.Error().Err(err).Msg("dropping undecodable booking event")

		// Redelivery cannot fix a malformed payload.
		return nil
	}

	return c.dispatcher.Dispatch(ctx, event)
}
