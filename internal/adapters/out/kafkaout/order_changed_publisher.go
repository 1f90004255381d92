// Package kafkaout publishes integration events to Kafka.
package kafkaout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// orderChangedEvent is the wire payload for order change notifications.
// It carries only the order identity: consumers refetch the current
// state instead of trusting a possibly stale snapshot.
type orderChangedEvent struct {
	OrderID    string    `json:"order_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderChangedPublisher writes order change events to a Kafka topic.
type OrderChangedPublisher struct {
	writer *kafka.Writer
}

var _ ports.OrderChangedPublisher = (*OrderChangedPublisher)(nil)

// NewOrderChangedPublisher creates a publisher writing to the given topic.
func NewOrderChangedPublisher(brokers []string, topic string) *OrderChangedPublisher {
	return &OrderChangedPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// PublishOrderChanged sends a single order change event. Events for the
// same order share a message key, so per-order ordering is preserved.
func (p *OrderChangedPublisher) PublishOrderChanged(ctx context.Context, orderID kernel.UUID) error {
	payload, err := json.Marshal(orderChangedEvent{
		OrderID:    orderID.String(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order changed event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(orderID.String()),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("failed to publish order changed event: %w", err)
	}

	return nil
}

// Close flushes pending messages and releases the underlying writer.
func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}
