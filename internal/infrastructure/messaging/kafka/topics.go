// Package kafka publishes the engine's notification events.
package kafka

import (
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// Topics carrying the engine's events. One topic per notification type keeps
// consumer routing trivial.
const (
	TopicPMDue        = "maintainpro.pm.due"
	TopicPMEscalation = "maintainpro.pm.escalation"
)

// EventEnvelope is the wire format of every published event.
type EventEnvelope struct {
	ID            common.ID       `json:"id"`
	Type          string          `json:"type"`
	ScopeID       common.ScopeID  `json:"scope_id"`
	RecipientRule string          `json:"recipient_rule"`
	Payload       common.Metadata `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
