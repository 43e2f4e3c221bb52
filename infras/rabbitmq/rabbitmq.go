package rabbitmq

//go:generate go run go.uber.org/mock/mockgen -source=./rabbitmq.go -destination=./mocks/rabbitmq_mock.go -package=mocks

import (
	"booktable/config"
	"booktable/infras/otel"
	"booktable/shared/constant"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	prefetchCount     = 50
	initialBackoff    = time.Second
	maxBackoff        = 30 * time.Second
	contentTypeJSON   = "application/json"
	defaultExchange   = ""
	consumerTagPrefix = "booktable-"
)

var ErrNoURL = errors.New("rabbitmq url is not configured")

// Handler processes one delivery. An error nacks the delivery without requeue.
type Handler func(ctx context.Context, body []byte) error

type Client interface {
	Publish(ctx context.Context, queue string, body []byte) (err error)
	Consume(ctx context.Context, queue string, handler Handler) error
	Close() error
}

type rabbitClientImpl struct {
	url  string
	otel otel.Otel

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// New does not dial; the connection is opened on first publish.
func New(cfg *config.Config, otl otel.Otel) Client {
	return &rabbitClientImpl{
		url:  cfg.RabbitMQ.URL,
		otel: otl,
	}
}

func (r *rabbitClientImpl) publishChannel() (*amqp.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.channel != nil && !r.channel.IsClosed() {
		return r.channel, nil
	}

	if r.url == "" {
		return nil, ErrNoURL
	}

	if r.conn == nil || r.conn.IsClosed() {
		conn, err := amqp.Dial(r.url)
		if err != nil {
			return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
		}

		r.conn = conn
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	r.channel = ch

	return ch, nil
}

func declare(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return nil
}

func (r *rabbitClientImpl) Publish(ctx context.Context, queue string, body []byte) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelBrokerScopeName, constant.OtelBrokerScopeName+".rabbitmq.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("queue", queue)

	ch, err := r.publishChannel()
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("RabbitMQ channel unavailable.")

		return err
	}

	if err = declare(ch, queue); err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, defaultExchange, queue, false, false, amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("Failed to publish to RabbitMQ.")

		return fmt.Errorf("failed to publish to rabbitmq: %w", err)
	}

	log.Info().Str("queue", queue).Msg("Published message to RabbitMQ.")

	return nil
}

// Consume keeps a dedicated connection open and reconnects with exponential
// backoff until ctx is cancelled.
func (r *rabbitClientImpl) Consume(ctx context.Context, queue string, handler Handler) error {
	if r.url == "" {
		return ErrNoURL
	}

	backoff := initialBackoff

	for {
		err := r.consumeOnce(ctx, queue, handler)
		if ctx.Err() != nil {
			log.Info().Str("queue", queue).Msg("RabbitMQ consumer stopped.")

			return nil
		}

		log.Error().Err(err).Dur("retry_in", backoff).Str("queue", queue).Msg("RabbitMQ consumer disconnected.")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (r *rabbitClientImpl) consumeOnce(ctx context.Context, queue string, handler Handler) error {
	conn, err := amqp.Dial(r.url)
	if err != nil {
		return fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	if err := declare(ch, queue); err != nil {
		return err
	}

	deliveries, err := ch.Consume(queue, consumerTagPrefix+queue, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", queue, err)
	}

	log.Info().Str("queue", queue).Msg("RabbitMQ consumer started.")

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-closed:
			return fmt.Errorf("rabbitmq connection closed: %v", amqpErr)
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}

			if err := handler(ctx, d.Body); err != nil {
				log.Error().Err(err).Str("queue", queue).Msg("Failed to handle RabbitMQ delivery.")

				if nackErr := d.Nack(false, false); nackErr != nil {
					log.Error().Err(nackErr).Msg("Failed to nack delivery.")
				}

				continue
			}

			if ackErr := d.Ack(false); ackErr != nil {
				log.Error().Err(ackErr).Msg("Failed to ack delivery.")
			}
		}
	}
}

func (r *rabbitClientImpl) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error

	if r.channel != nil && !r.channel.IsClosed() {
		errs = append(errs, r.channel.Close())
	}

	if r.conn != nil && !r.conn.IsClosed() {
		errs = append(errs, r.conn.Close())
	}

	r.channel, r.conn = nil, nil

	return errors.Join(errs...)
}
