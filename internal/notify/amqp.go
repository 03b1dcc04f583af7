package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultQueue = "storefront.whatsapp.v1"

// AMQPSink queues notifications for a WhatsApp relay worker.
type AMQPSink struct {
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

func NewAMQPSink(conn *amqp.Connection, queue string) (*AMQPSink, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", queue, err)
	}
	return &AMQPSink{ch: ch, queue: queue}, nil
}

func (s *AMQPSink) Send(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch.PublishWithContext(
		pubCtx,
		"",
		s.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    n.OrderID,
			Timestamp:    n.CreatedAt,
			Body:         body,
		},
	)
}

func (s *AMQPSink) Close() error {
	return s.ch.Close()
}
