package messaging

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer reads profile events from a durable queue bound to a topic
// exchange and settles each delivery manually.
type Consumer struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *zap.Logger
}

func NewConsumer(amqpURL string, logger *zap.Logger) (*Consumer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &Consumer{conn: conn, ch: ch, logger: logger.Named("consumer")}, nil
}

// Consume declares the exchange and queue, binds every routing key and
// dispatches deliveries to route until ctx is done or the channel closes.
func (c *Consumer) Consume(ctx context.Context, exchange, queue string, keys []string, route func(ctx context.Context, routingKey string, body []byte) Outcome) error {
	if err := c.ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	q, err := c.ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	for _, key := range keys {
		if err := c.ch.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	msgs, err := c.ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	c.logger.Info("consuming", zap.String("exchange", exchange), zap.String("queue", q.Name), zap.Strings("keys", keys))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.settle(d, route(ctx, d.RoutingKey, d.Body))
		}
	}
}

func (c *Consumer) settle(d amqp.Delivery, outcome Outcome) {
	var err error
	if outcome == Requeue {
		err = d.Nack(false, true)
	} else {
		err = d.Ack(false)
	}
	if err != nil {
		c.logger.Warn("settle delivery failed", zap.String("routing_key", d.RoutingKey), zap.Error(err))
	}
}

func (c *Consumer) Close() error {
	var errs []error
	if c.ch != nil {
		errs = append(errs, c.ch.Close())
	}
	if c.conn != nil {
		errs = append(errs, c.conn.Close())
	}
	return errors.Join(errs...)
}
