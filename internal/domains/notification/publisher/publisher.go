package publisher

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"booktable/config"
	"booktable/infras/kafka"
	"booktable/infras/otel"
	"booktable/infras/rabbitmq"
	"booktable/internal/domains/notification/dispatcher"
	"booktable/internal/domains/notification/model"
	"booktable/shared/constant"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrUnknownBroker = errors.New("unknown notification broker")

type Publisher interface {
	Publish(ctx context.Context, event model.BookingConfirmed) error
}

type publisherImpl struct {
	cfg        *config.Config
	kafka      kafka.Client
	rabbit     rabbitmq.Client
	dispatcher dispatcher.Dispatcher
	otel       otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, rabbit rabbitmq.Client, dispatcher dispatcher.Dispatcher, otel otel.Otel) Publisher {
	return &publisherImpl{
		cfg:        cfg,
		kafka:      kafka,
		rabbit:     rabbit,
		dispatcher: dispatcher,
		otel:       otel,
	}
}

// Publish hands the event to the configured broker. The direct broker sends
// the email in-process.
func (p *publisherImpl) Publish(ctx context.Context, event model.BookingConfirmed) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	broker := p.cfg.Notification.Broker
	topic := p.cfg.Notification.Topic

	scope.SetAttribute("broker", broker)

	switch broker {
	case constant.BrokerKafka:
		err = p.kafka.SendMessages(ctx, topic, kafka.Message{Key: event.BookingID, Value: event})
	case constant.BrokerRabbitMQ:
		var body []byte

		body, err = json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to encode booking event: %w", err)
		}

		err = p.rabbit.Publish(ctx, topic, body)
	case constant.BrokerDirect, constant.Empty:
		err = p.dispatcher.Dispatch(ctx, event)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownBroker, broker)
	}

	if err != nil {
		log.Error().Err(err).Str("broker", broker).Str("booking_id", event.BookingID).Msg("failed to publish booking event")

		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	return nil
}
