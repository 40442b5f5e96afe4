package scheduling

import (
	"fmt"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/equipment"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/schedule"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/template"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/workorder"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// Warning records a (template, equipment) pair the synthesizer skipped
// because its data was malformed. Warnings never abort a batch; the engine
// logs them and moves on to the next pair.
type Warning struct {
	TemplateID  common.ID
	EquipmentID common.ID
	Reason      string
}

// Synthesizer turns the scope's templates and equipment into work-order
// drafts. It is pure apart from logging: it never touches storage, so its
// behaviour is fully determined by its inputs and the provided instant.
type Synthesizer struct {
	priority workorder.PriorityPolicy
	grace    time.Duration
	log      logging.Logger
}

// NewSynthesizer builds a Synthesizer. A nil policy falls back to
// DefaultPriorityPolicy; grace is the due-window half-width from
// configuration.
func NewSynthesizer(policy workorder.PriorityPolicy, grace time.Duration, log logging.Logger) *Synthesizer {
	if policy == nil {
		policy = workorder.DefaultPriorityPolicy
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Synthesizer{
		priority: policy,
		grace:    grace,
		log:      log.Named("synthesizer"),
	}
}

// Synthesize computes the drafts that are due or overdue at now.
//
// For every active template crossed with every PM-eligible asset whose model
// matches the template exactly, the pair's next due date is derived from its
// recurrence anchor: the completion time of the most recent completed
// preventive work order for the pair, or the asset's install date when the
// pair has no history. Pairs with an open preventive work order are skipped
// so that at most one open order exists per pair; pairs whose next due date
// is still in the future produce nothing.
//
// A malformed pair (unknown frequency, zero anchor) yields a Warning instead
// of failing the batch.
func (s *Synthesizer) Synthesize(
	templates []*template.PMTemplate,
	assets []*equipment.Equipment,
	open []*workorder.WorkOrder,
	completions map[workorder.PairKey]time.Time,
	now time.Time,
) ([]*workorder.Draft, []Warning) {
	openPairs := make(map[workorder.PairKey]struct{}, len(open))
	for _, wo := range open {
		if wo.Type != workorder.TypePreventive || !wo.IsOpen() {
			continue
		}
		openPairs[workorder.PairKey{EquipmentID: wo.EquipmentID, TemplateID: wo.TemplateID}] = struct{}{}
	}

	var (
		drafts   []*workorder.Draft
		warnings []Warning
	)
	for _, tpl := range templates {
		if !tpl.Active {
			continue
		}
		for _, asset := range assets {
			if !asset.IsPMEligible() || !tpl.Matches(asset.Model) {
				continue
			}

			key := workorder.PairKey{EquipmentID: asset.ID, TemplateID: tpl.ID}
			if _, held := openPairs[key]; held {
				s.log.Debug("pair has an open work order, skipping",
					logging.String("template_id", tpl.ID.String()),
					logging.String("equipment_id", asset.ID.String()),
				)
				continue
			}

			anchor, ok := completions[key]
			if !ok {
				anchor = asset.InstallDate
			}
			if anchor.IsZero() {
				warnings = append(warnings, Warning{
					TemplateID:  tpl.ID,
					EquipmentID: asset.ID,
					Reason:      "no recurrence anchor: pair has no completed history and the asset has no install date",
				})
				continue
			}

			nextDue, err := schedule.NextDueDate(anchor, tpl.Frequency)
			if err != nil {
				warnings = append(warnings, Warning{
					TemplateID:  tpl.ID,
					EquipmentID: asset.ID,
					Reason:      err.Error(),
				})
				continue
			}

			if !schedule.ShouldGenerate(schedule.Classify(nextDue, now, s.grace)) {
				continue
			}

			drafts = append(drafts, &workorder.Draft{
				ScopeID:     tpl.ScopeID,
				EquipmentID: asset.ID,
				TemplateID:  tpl.ID,
				Description: draftDescription(tpl, asset),
				Priority:    s.priority(asset.Criticality),
				DueDate:     nextDue,
				Checklist: []workorder.ChecklistItem{
					{Component: tpl.Component, Action: tpl.Action},
				},
			})
		}
	}
	return drafts, warnings
}

func draftDescription(tpl *template.PMTemplate, asset *equipment.Equipment) string {
	if tpl.Description != "" {
		return fmt.Sprintf("%s (%s)", tpl.Description, asset.Name)
	}
	return fmt.Sprintf("%s %s (%s)", tpl.Action, tpl.Component, asset.Name)
}
