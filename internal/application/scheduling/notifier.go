// Package scheduling implements the preventive-maintenance engine use cases:
// work-order generation, escalation, and compliance reporting. The package is
// stateless; all per-run state lives in locals so runs for distinct scopes
// may execute concurrently.
package scheduling

import (
	"context"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// NotificationType labels the outbound notification events the engine emits.
type NotificationType string

const (
	// NotificationPMDue is emitted once per created work order.
	NotificationPMDue NotificationType = "pm_due"

	// NotificationPMEscalation is emitted once per escalation level advance.
	NotificationPMEscalation NotificationType = "pm_escalation"
)

// Notification is the engine's outbound event. RecipientRule is an opaque
// routing expression resolved by the notification service downstream.
type Notification struct {
	Type          NotificationType `json:"type"`
	ScopeID       common.ScopeID   `json:"scope_id"`
	RecipientRule string           `json:"recipient_rule"`
	Payload       common.Metadata  `json:"payload"`
}

// Notifier is the fire-and-forget notification collaborator. A publish
// failure must never abort work-order creation or escalation; callers log
// the error and continue.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// RunLocker serializes scheduling runs per scope. TryAcquire returns an
// ErrCodeScopeLocked error when another run holds the scope; on success the
// returned release function must be called when the run finishes.
type RunLocker interface {
	TryAcquire(ctx context.Context, scopeID common.ScopeID) (release func(context.Context), err error)
}

// Metrics receives engine-level counters. Implementations must be safe for
// concurrent use; NopMetrics is the default when monitoring is disabled.
type Metrics interface {
	WorkOrdersGenerated(scopeID common.ScopeID, n int)
	DraftsSkipped(scopeID common.ScopeID, reason string, n int)
	EscalationsRaised(scopeID common.ScopeID, n int)
	NotificationFailures(n int)
	GenerationDuration(scopeID common.ScopeID, d time.Duration)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) WorkOrdersGenerated(common.ScopeID, int)          {}
func (NopMetrics) DraftsSkipped(common.ScopeID, string, int)        {}
func (NopMetrics) EscalationsRaised(common.ScopeID, int)            {}
func (NopMetrics) NotificationFailures(int)                         {}
func (NopMetrics) GenerationDuration(common.ScopeID, time.Duration) {}
