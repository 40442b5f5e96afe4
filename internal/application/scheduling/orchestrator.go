package scheduling

import (
	"context"
	"strconv"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/equipment"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/schedule"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/template"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/workorder"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// Engine is the scheduling orchestrator. One Engine serves every scope;
// per-scope serialization is delegated to the RunLocker.
type Engine struct {
	templates  template.Repository
	assets     equipment.Repository
	workorders workorder.Repository
	synth      *Synthesizer
	notifier   Notifier
	locks      RunLocker
	clock      schedule.Clock
	metrics    Metrics
	log        logging.Logger
}

// EngineDeps collects the Engine's collaborators. Templates, Assets,
// WorkOrders and Synth are required; Notifier, Locks, Clock and Metrics
// are optional and default to no-ops (SystemClock for the clock).
type EngineDeps struct {
	Templates  template.Repository
	Assets     equipment.Repository
	WorkOrders workorder.Repository
	Synth      *Synthesizer
	Notifier   Notifier
	Locks      RunLocker
	Clock      schedule.Clock
	Metrics    Metrics
	Logger     logging.Logger
}

// NewEngine wires a scheduling engine from its dependencies.
func NewEngine(deps EngineDeps) (*Engine, error) {
	if deps.Templates == nil || deps.Assets == nil || deps.WorkOrders == nil {
		return nil, errors.InvalidParam("engine requires template, equipment and work-order repositories")
	}
	if deps.Synth == nil {
		return nil, errors.InvalidParam("engine requires a synthesizer")
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
	return &Engine{
		templates:  deps.Templates,
		assets:     deps.Assets,
		workorders: deps.WorkOrders,
		synth:      deps.Synth,
		notifier:   deps.Notifier,
		locks:      deps.Locks,
		clock:      deps.Clock,
		metrics:    deps.Metrics,
		log:        deps.Logger.Named("engine"),
	}, nil
}

// GenerateWorkOrders runs one scheduling batch for the scope: load the
// scope's templates, assets, open orders and completion history, synthesize
// the drafts due at the current instant, persist them, and emit one pm_due
// notification per created order.
//
// A storage read failure aborts the batch with an ErrCodeStorageReadFailure
// error. A failure to persist a single draft is logged and skipped so the
// rest of the batch still lands; a duplicate-open conflict from a concurrent
// run is treated as an ordinary skip. Notification failures never affect the
// outcome. The method returns the orders actually created.
func (e *Engine) GenerateWorkOrders(ctx context.Context, scopeID common.ScopeID) ([]*workorder.WorkOrder, error) {
	if scopeID.IsZero() {
		return nil, errors.InvalidParam("scope ID must not be empty")
	}

	if e.locks != nil {
		release, err := e.locks.TryAcquire(ctx, scopeID)
		if err != nil {
			return nil, err
		}
		defer release(ctx)
	}

	log := e.log.With(logging.String("scope_id", scopeID.String()))
	now := e.clock.Now()
	// wall clock for the duration metric; e.clock only anchors scheduling math
	started := time.Now()
	defer func() {
		e.metrics.GenerationDuration(scopeID, time.Since(started))
	}()

	templates, err := e.templates.ListActiveByScope(ctx, scopeID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageReadFailure, "load active templates")
	}
	assets, err := e.assets.ListActiveByScope(ctx, scopeID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageReadFailure, "load active equipment")
	}
	open, err := e.workorders.ListOpenByScope(ctx, scopeID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageReadFailure, "load open work orders")
	}
	completions, err := e.workorders.LastCompletions(ctx, scopeID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageReadFailure, "load completion history")
	}

	drafts, warnings := e.synth.Synthesize(templates, assets, open, completions, now)
	for _, w := range warnings {
		log.Warn("skipping malformed template/equipment pair",
			logging.String("template_id", w.TemplateID.String()),
			logging.String("equipment_id", w.EquipmentID.String()),
			logging.String("reason", w.Reason),
		)
	}
	if len(warnings) > 0 {
		e.metrics.DraftsSkipped(scopeID, "malformed_pair", len(warnings))
	}

	created := make([]*workorder.WorkOrder, 0, len(drafts))
	for _, draft := range drafts {
		if err := ctx.Err(); err != nil {
			log.Warn("batch cancelled mid-run",
				logging.Int("created", len(created)),
				logging.Int("pending", len(drafts)-len(created)),
			)
			e.metrics.WorkOrdersGenerated(scopeID, len(created))
			return created, errors.Wrap(err, errors.ErrCodeTimeout, "scheduling batch cancelled")
		}

		wo, err := e.workorders.Create(ctx, draft)
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeDuplicateOpenWorkOrder) {
				log.Debug("concurrent run already created this pair's order",
					logging.String("template_id", draft.TemplateID.String()),
					logging.String("equipment_id", draft.EquipmentID.String()),
				)
				e.metrics.DraftsSkipped(scopeID, "duplicate_open", 1)
				continue
			}
			log.Error("persisting draft failed",
				logging.String("template_id", draft.TemplateID.String()),
				logging.String("equipment_id", draft.EquipmentID.String()),
				logging.Err(err),
			)
			e.metrics.DraftsSkipped(scopeID, "write_failure", 1)
			continue
		}

		created = append(created, wo)
		e.notifyDue(ctx, wo)
	}

	log.Info("scheduling batch complete",
		logging.Int("templates", len(templates)),
		logging.Int("equipment", len(assets)),
		logging.Int("drafts", len(drafts)),
		logging.Int("created", len(created)),
	)
	e.metrics.WorkOrdersGenerated(scopeID, len(created))
	return created, nil
}

func (e *Engine) notifyDue(ctx context.Context, wo *workorder.WorkOrder) {
	if e.notifier == nil {
		return
	}
	n := Notification{
		Type:          NotificationPMDue,
		ScopeID:       wo.ScopeID,
		RecipientRule: "maintenance_team",
		Payload: common.Metadata{
			"work_order_id": wo.ID.String(),
			"equipment_id":  wo.EquipmentID.String(),
			"template_id":   wo.TemplateID.String(),
			"priority":      string(wo.Priority),
			"due_date":      wo.DueDate.UTC().Format(time.RFC3339),
		},
	}
	if err := e.notifier.Notify(ctx, n); err != nil {
		e.log.Warn("pm_due notification failed",
			logging.String("work_order_id", wo.ID.String()),
			logging.Err(err),
		)
		e.metrics.NotificationFailures(1)
	}
}

func levelPayload(old, next int) common.Metadata {
	return common.Metadata{
		"previous_level": strconv.Itoa(old),
		"new_level":      strconv.Itoa(next),
	}
}
