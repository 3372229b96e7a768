package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

const publishTimeout = 5 * time.Second

// requeueDelay is how long a failed delivery waits before it is requeued.
var requeueDelay = 2 * time.Second

// channelPublisher is the part of *amqp091.Channel used to publish.
type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// EventHandler processes one ledger event. A returned error requeues the
// message once; a redelivered message that fails again is dropped.
type EventHandler func(ctx context.Context, event adapter.LedgerEvent) error

// Client publishes ledger events to a durable direct exchange and consumes
// them from a queue bound with the queue name as routing key.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	publisher    channelPublisher
	exchangeName string
	queueName    string
}

// NewClient dials the broker and declares the exchange and queue.
func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		publisher:    channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.queueName,    // queue name
		c.queueName,    // routing key
		c.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Publish implements adapter.EventPublisher.
func (c *Client) Publish(ctx context.Context, event adapter.LedgerEvent) error {
	body, err := EncodeEvent(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.publisher.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         string(event.EntityType) + "." + string(event.Event),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	slog.DebugContext(ctx, "Published ledger event",
		"event", event.Event,
		"entityType", event.EntityType,
		"entityID", event.EntityID)
	return nil
}

// Consume delivers events to handler until ctx is done or the channel closes.
func (c *Client) Consume(ctx context.Context, handler EventHandler) error {
	deliveries, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming ledger events", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping event consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			handleDelivery(ctx, delivery, handler)
		}
	}
}

// handleDelivery acks processed messages and drops malformed ones. A message
// the handler failed on is requeued after requeueDelay, unless it already was
// redelivered, in which case it is dropped.
func handleDelivery(ctx context.Context, delivery amqp091.Delivery, handler EventHandler) {
	event, err := DecodeEvent(delivery.Body)
	if err != nil {
		slog.ErrorContext(ctx, "Dropping malformed ledger event", "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	if err := handler(ctx, event); err != nil {
		if delivery.Redelivered {
			slog.ErrorContext(ctx, "Dropping ledger event after repeated failures",
				"error", err,
				"entityType", event.EntityType,
				"entityID", event.EntityID)
			_ = delivery.Nack(false, false)
			return
		}

		slog.ErrorContext(ctx, "Failed to handle ledger event, requeueing",
			"error", err,
			"entityType", event.EntityType,
			"entityID", event.EntityID,
			"delay", requeueDelay)
		select {
		case <-ctx.Done():
		case <-time.After(requeueDelay):
		}
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// ConsumeWithReconnect keeps a consumer running across broker restarts,
// waiting exponentially longer between failed connection attempts.
func ConsumeWithReconnect(ctx context.Context, url, exchangeName, queueName string, handler EventHandler) error {
	for attempt := 0; ; attempt++ {
		client, err := NewClient(url, exchangeName, queueName)
		if err == nil {
			attempt = 0
			err = client.Consume(ctx, handler)
			client.Close()
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !isConnectionError(err) {
			return err
		}

		wait := exponentialBackoff(attempt)
		slog.WarnContext(ctx, "AMQP connection lost, reconnecting", "error", err, "wait", wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// exponentialBackoff doubles from one second up to thirty.
func exponentialBackoff(attempt int) time.Duration {
	const maxBackoff = 30 * time.Second
	if attempt >= 5 {
		return maxBackoff
	}
	d := time.Second << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"connection", "eof", "broken pipe", "channel closed", "dial"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
