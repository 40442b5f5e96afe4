package kafka

import (
	"context"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/application/scheduling"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// Notifier adapts the Producer to the engine's Notifier contract, routing
// each notification type to its topic.
type Notifier struct {
	producer *Producer
}

// NewNotifier builds a kafka-backed notifier.
func NewNotifier(producer *Producer) *Notifier {
	return &Notifier{producer: producer}
}

func (n *Notifier) Notify(ctx context.Context, msg scheduling.Notification) error {
	topic := TopicPMDue
	if msg.Type == scheduling.NotificationPMEscalation {
		topic = TopicPMEscalation
	}
	return n.producer.Publish(ctx, topic, EventEnvelope{
		ID:            common.NewID(),
		Type:          string(msg.Type),
		ScopeID:       msg.ScopeID,
		RecipientRule: msg.RecipientRule,
		Payload:       msg.Payload,
		OccurredAt:    time.Now().UTC(),
	})
}
