package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/application/scheduling"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

type fakeWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestProducer(w writerInterface) *Producer {
	return &Producer{writer: w, log: logging.NewNop()}
}

func TestProducer_PublishWritesEnvelope(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := newTestProducer(w)

	envelope := EventEnvelope{
		ID:            common.NewID(),
		Type:          "pm_due",
		ScopeID:       "plant-a",
		RecipientRule: "maintenance_team",
		Payload:       common.Metadata{"work_order_id": "wo-1"},
		OccurredAt:    time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), TopicPMDue, envelope))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, TopicPMDue, msg.Topic)
	assert.Equal(t, []byte("plant-a"), msg.Key, "messages are keyed by scope for per-scope ordering")

	var decoded EventEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, envelope, decoded)
}

func TestProducer_PublishAfterClose(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := newTestProducer(w)
	require.NoError(t, p.Close())
	assert.True(t, w.closed)

	err := p.Publish(context.Background(), TopicPMDue, EventEnvelope{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}

func TestProducer_WriteFailure(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{err: assert.AnError}
	p := newTestProducer(w)

	err := p.Publish(context.Background(), TopicPMDue, EventEnvelope{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotificationFailure))
}

func TestNotifier_RoutesByType(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	n := NewNotifier(newTestProducer(w))

	require.NoError(t, n.Notify(context.Background(), scheduling.Notification{
		Type:    scheduling.NotificationPMDue,
		ScopeID: "plant-a",
	}))
	require.NoError(t, n.Notify(context.Background(), scheduling.Notification{
		Type:    scheduling.NotificationPMEscalation,
		ScopeID: "plant-a",
	}))

	require.Len(t, w.messages, 2)
	assert.Equal(t, TopicPMDue, w.messages[0].Topic)
	assert.Equal(t, TopicPMEscalation, w.messages[1].Topic)
}
