package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-schedule-service/internal/domain/event"
	"github.com/bibbank/credit-schedule-service/internal/infrastructure/kafka"
	"github.com/bibbank/credit-schedule-service/pkg/events"
	pkgkafka "github.com/bibbank/credit-schedule-service/pkg/kafka"
)

type recordingWriter struct {
	err      error
	topic    string
	messages []pkgkafka.Message
	calls    int
}

func (w *recordingWriter) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	w.calls++
	w.topic = topic
	w.messages = append(w.messages, messages...)
	return w.err
}

func newPublisher(w *recordingWriter) *kafka.KafkaEventPublisher {
	return kafka.NewKafkaEventPublisher(w, "credit.schedule.events", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestKafkaEventPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	evt := event.NewScheduleRecomputed("credit-1", "tenant-1", 3, decimal.RequireFromString("106618.53"), decimal.RequireFromString("6618.53"))

	require.NoError(t, newPublisher(w).Publish(context.Background(), evt))

	assert.Equal(t, "credit.schedule.events", w.topic)
	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, []byte("credit-1"), msg.Key)
	assert.Equal(t, "credit.schedule.recomputed", msg.Headers["event_type"])
	assert.Equal(t, "tenant-1", msg.Headers["tenant_id"])
	assert.Equal(t, evt.EventID(), msg.Headers["event_id"])

	var env events.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "Credit", env.AggregateType)
	assert.Contains(t, string(env.Payload), `"settled_periods":3`)
}

func TestKafkaEventPublisher_NoEvents(t *testing.T) {
	w := &recordingWriter{}
	require.NoError(t, newPublisher(w).Publish(context.Background()))
	assert.Zero(t, w.calls)
}

func TestKafkaEventPublisher_WriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("leader not available")}
	evt := event.NewPaymentsBulkCreated("credit-1", "tenant-1", 2, 2, []int{4, 5})

	err := newPublisher(w).Publish(context.Background(), evt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credit.schedule.events")
}
