package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Bridge publishes invalidation events to a fanout exchange and consumes them
// through an exclusive queue, one per instance.
type Bridge struct {
	conn     *amqp091.Connection
	pubCh    *amqp091.Channel
	subCh    *amqp091.Channel
	exchange string
	queue    string
	log      *zap.Logger
	pubMu    sync.Mutex
}

func DialBridge(url, exchange string, log *zap.Logger) (*Bridge, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	b := &Bridge{conn: conn, exchange: exchange, log: log}
	if err := b.setup(); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return b, nil
}

func (b *Bridge) setup() error {
	var err error
	if b.pubCh, err = b.conn.Channel(); err != nil {
		return fmt.Errorf("open publish channel: %w", err)
	}
	if b.subCh, err = b.conn.Channel(); err != nil {
		return fmt.Errorf("open consume channel: %w", err)
	}

	err = b.pubCh.ExchangeDeclare(
		b.exchange, // name
		"fanout",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	q, err := b.subCh.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	b.queue = q.Name

	if err := b.subCh.QueueBind(b.queue, "", b.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (b *Bridge) Publish(ctx context.Context, e Event) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	b.pubMu.Lock()
	defer b.pubMu.Unlock()

	err = b.pubCh.PublishWithContext(
		ctx,
		b.exchange, // exchange
		"",         // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			MessageId:   e.ID,
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Consume delivers events to handler until ctx is done or the channel closes.
func (b *Bridge) Consume(ctx context.Context, handler func(*Event) error) error {
	msgs, err := b.subCh.Consume(
		b.queue, // queue
		"",      // consumer
		false,   // auto-ack
		true,    // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	b.log.Info("consuming invalidation events", zap.String("exchange", b.exchange), zap.String("queue", b.queue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			e, err := EventFromJSON(delivery.Body)
			if err != nil {
				b.log.Warn("dropping malformed event", zap.Error(err))
				_ = delivery.Nack(false, false)
				continue
			}

			if err := handler(e); err != nil {
				b.log.Error("handle event failed", zap.Error(err), zap.String("event_id", e.ID))
				_ = delivery.Nack(false, false)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

func (b *Bridge) Close() error {
	if b.subCh != nil {
		_ = b.subCh.Close()
	}
	if b.pubCh != nil {
		_ = b.pubCh.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
