package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/credit-schedule-service/internal/domain/event"
	"github.com/bibbank/credit-schedule-service/pkg/events"
	pkgkafka "github.com/bibbank/credit-schedule-service/pkg/kafka"
)

// MessageWriter is the subset of pkgkafka.Producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// KafkaEventPublisher implements port.EventPublisher by writing events to Kafka.
type KafkaEventPublisher struct {
	writer MessageWriter
	topic  string
	logger *slog.Logger
}

// NewKafkaEventPublisher creates a publisher targeting the given writer and topic.
func NewKafkaEventPublisher(writer MessageWriter, topic string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// Publish wraps each event in an envelope and sends the batch keyed by
// credit ID, so events for one credit keep their order.
func (p *KafkaEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := events.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"tenant_id", evt.TenantID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID(),
				"tenant_id":  evt.TenantID(),
			},
		})
	}

	if err := p.writer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
