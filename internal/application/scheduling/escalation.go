package scheduling

import (
	"context"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/schedule"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/workorder"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// Monitor re-evaluates open preventive work orders that have gone overdue
// and advances their escalation level. Levels only move upward and are
// clamped at the number of configured thresholds, so repeated runs at the
// same instant are idempotent.
type Monitor struct {
	workorders workorder.Repository
	notifier   Notifier
	clock      schedule.Clock
	metrics    Metrics
	log        logging.Logger

	grace time.Duration
	// thresholds[i] is the overdue duration past grace that moves an order
	// from level i to level i+1. len(thresholds) is the maximum level.
	thresholds []time.Duration
}

// MonitorDeps collects the Monitor's collaborators. WorkOrders and at least
// one threshold are required; thresholds must be strictly increasing.
type MonitorDeps struct {
	WorkOrders workorder.Repository
	Notifier   Notifier
	Clock      schedule.Clock
	Metrics    Metrics
	Logger     logging.Logger

	Grace      time.Duration
	Thresholds []time.Duration
}

// NewMonitor wires an escalation monitor from its dependencies.
func NewMonitor(deps MonitorDeps) (*Monitor, error) {
	if deps.WorkOrders == nil {
		return nil, errors.InvalidParam("monitor requires a work-order repository")
	}
	if len(deps.Thresholds) == 0 {
		return nil, errors.InvalidParam("monitor requires at least one escalation threshold")
	}
	for i := 1; i < len(deps.Thresholds); i++ {
		if deps.Thresholds[i] <= deps.Thresholds[i-1] {
			return nil, errors.InvalidParam("escalation thresholds must be strictly increasing")
		}
	}
	if deps.Clock == nil {
		deps.Clock = schedule.SystemClock{}
	}
	if deps.Metrics == nil {
		deps.Metrics = NopMetrics{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	return &Monitor{
		workorders: deps.WorkOrders,
		notifier:   deps.Notifier,
		clock:      deps.Clock,
		metrics:    deps.Metrics,
		log:        deps.Logger.Named("escalation"),
		grace:      deps.Grace,
		thresholds: deps.Thresholds,
	}, nil
}

// targetLevel returns the escalation level warranted by how far past its due
// date an order is. Overdue time inside the grace window counts for nothing;
// beyond it, each threshold crossed adds a level, clamped at the maximum.
func (m *Monitor) targetLevel(overdue time.Duration) int {
	effective := overdue - m.grace
	level := 0
	for _, th := range m.thresholds {
		if effective <= th {
			break
		}
		level++
	}
	return level
}

// EscalateOverdue runs one escalation pass over the scope's overdue open
// preventive work orders. An order at level N advances only once its overdue
// time (beyond the grace window) exceeds the threshold for level N+1; each
// level crossed emits one pm_escalation notification. Orders already at the
// warranted level are untouched, which makes the pass idempotent.
//
// A failed load aborts the pass; a failed update of one order is logged and
// skipped so the rest still advance. The method returns the orders it
// escalated.
func (m *Monitor) EscalateOverdue(ctx context.Context, scopeID common.ScopeID) ([]*workorder.WorkOrder, error) {
	if scopeID.IsZero() {
		return nil, errors.InvalidParam("scope ID must not be empty")
	}

	log := m.log.With(logging.String("scope_id", scopeID.String()))
	now := m.clock.Now()

	overdue, err := m.workorders.ListOverdue(ctx, scopeID, now.Add(-m.grace))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageReadFailure, "load overdue work orders")
	}

	var escalated []*workorder.WorkOrder
	advances := 0
	for _, wo := range overdue {
		if err := ctx.Err(); err != nil {
			return escalated, errors.Wrap(err, errors.ErrCodeTimeout, "escalation pass cancelled")
		}

		target := m.targetLevel(wo.OverdueBy(now))
		if target <= wo.EscalationLevel {
			continue
		}

		from := wo.EscalationLevel
		if err := wo.EscalateTo(target); err != nil {
			log.Warn("escalation rejected",
				logging.String("work_order_id", wo.ID.String()),
				logging.Err(err),
			)
			continue
		}

		updated, err := m.workorders.Update(ctx, wo.ID, workorder.Patch{
			EscalationLevel: &wo.EscalationLevel,
			Escalated:       &wo.Escalated,
		})
		if err != nil {
			log.Error("persisting escalation failed",
				logging.String("work_order_id", wo.ID.String()),
				logging.Int("target_level", target),
				logging.Err(err),
			)
			continue
		}

		escalated = append(escalated, updated)
		advances += target - from
		for level := from + 1; level <= target; level++ {
			m.notifyEscalation(ctx, updated, level-1, level)
		}
		log.Info("work order escalated",
			logging.String("work_order_id", updated.ID.String()),
			logging.Int("from_level", from),
			logging.Int("to_level", target),
			logging.Duration("overdue", updated.OverdueBy(now)),
		)
	}

	if advances > 0 {
		m.metrics.EscalationsRaised(scopeID, advances)
	}
	return escalated, nil
}

func (m *Monitor) notifyEscalation(ctx context.Context, wo *workorder.WorkOrder, from, to int) {
	if m.notifier == nil {
		return
	}
	payload := levelPayload(from, to)
	payload["work_order_id"] = wo.ID.String()
	payload["equipment_id"] = wo.EquipmentID.String()
	payload["due_date"] = wo.DueDate.UTC().Format(time.RFC3339)

	n := Notification{
		Type:          NotificationPMEscalation,
		ScopeID:       wo.ScopeID,
		RecipientRule: escalationRecipient(to),
		Payload:       payload,
	}
	if err := m.notifier.Notify(ctx, n); err != nil {
		m.log.Warn("pm_escalation notification failed",
			logging.String("work_order_id", wo.ID.String()),
			logging.Err(err),
		)
		m.metrics.NotificationFailures(1)
	}
}

// escalationRecipient widens the audience as the level climbs.
func escalationRecipient(level int) string {
	switch {
	case level >= 3:
		return "site_management"
	case level == 2:
		return "maintenance_manager"
	default:
		return "maintenance_supervisor"
	}
}
